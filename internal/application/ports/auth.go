package ports

import (
	"context"

	"hotel-users-api/internal/domain/user"
)

type Auth interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)
	IssueToken(u *user.User) (string, error)
}

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// LoginThrottle tracks failed logins per email.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
