package user

import (
	"context"
)

// Repository is the store contract for user records. Fetch methods return
// (nil, nil) when no record matches.
type Repository interface {
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUserByCPF(ctx context.Context, cpf string) (*User, error)
	FetchUserByEmailAnyState(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CPFExists(ctx context.Context, cpf string) (bool, error)
	FetchUsers(ctx context.Context, page, limit int) (Users, int64, error)
	FetchDeletedUsers(ctx context.Context, page, limit int) (Users, int64, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, id ID, ch Changes) (*User, error)
	SoftDeleteUser(ctx context.Context, id, actor ID) (*User, error)
	RestoreUser(ctx context.Context, id ID) (*User, error)
}
