package ports

import (
	"context"

	"hotel-users-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByCPF(ctx context.Context, cpf string) (*user.User, error)
	IsEmailAvailable(ctx context.Context, email string) (bool, error)
	IsCPFAvailable(ctx context.Context, cpf string) (bool, error)
	FindUsers(ctx context.Context, page, limit int) (*user.Page, error)
	FindDeletedUsers(ctx context.Context, page, limit int) (*user.Page, error)
	SearchUsers(ctx context.Context, q string, page, limit int) (user.Users, error)
	CreateUser(ctx context.Context, nu user.NewUser) (*user.User, error)
	UpdateUser(ctx context.Context, id user.ID, p user.Patch) (*user.User, error)
	DeleteUser(ctx context.Context, id, actor user.ID) (*user.User, error)
	RestoreUser(ctx context.Context, id, actor user.ID) (*user.User, error)
}
