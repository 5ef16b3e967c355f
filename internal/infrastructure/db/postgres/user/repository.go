package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, query, args...).Scan(u.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) fetchPage(ctx context.Context, countQuery, selectQuery string, page, limit int) (user.Users, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.Query(ctx, selectQuery, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	us := make(Users, 0, limit)
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanTargets()...); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return fromDBModels(us), total, nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	u, err := r.fetchOne(ctx, SelectUserByID, id)
	if err != nil {
		return nil, fmt.Errorf("fetch user by id: %w", err)
	}
	return u, nil
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := r.fetchOne(ctx, SelectUserByEmail, email)
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) FetchUserByCPF(ctx context.Context, cpf string) (*user.User, error) {
	u, err := r.fetchOne(ctx, SelectUserByCPF, cpf)
	if err != nil {
		return nil, fmt.Errorf("fetch user by cpf: %w", err)
	}
	return u, nil
}

func (r *Repository) FetchUserByEmailAnyState(ctx context.Context, email string) (*user.User, error) {
	u, err := r.fetchOne(ctx, SelectUserByEmailAnyState, email)
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectEmailExists, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe email: %w", err)
	}
	return exists, nil
}

func (r *Repository) CPFExists(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectCPFExists, cpf).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe cpf: %w", err)
	}
	return exists, nil
}

func (r *Repository) FetchUsers(ctx context.Context, page, limit int) (user.Users, int64, error) {
	return r.fetchPage(ctx, CountActiveUsers, SelectActiveUsers, page, limit)
}

func (r *Repository) FetchDeletedUsers(ctx context.Context, page, limit int) (user.Users, int64, error) {
	return r.fetchPage(ctx, CountDeletedUsers, SelectDeletedUsers, page, limit)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Email, req.CPF, req.Phone, req.Address, req.PasswordHash,
	).Scan(u.scanTargets()...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, id user.ID, ch user.Changes) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, UpdateUserByID,
		id, ch.Name, ch.Email, ch.CPF, ch.Phone, ch.Address, ch.PasswordHash,
	).Scan(u.scanTargets()...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return fromDBModel(u), nil
}

// SoftDeleteUser deactivates an active record. When the guard matches no
// row it reports ErrNotFound or ErrAlreadyDeleted.
func (r *Repository) SoftDeleteUser(ctx context.Context, id, actor user.ID) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, SoftDeleteUserByID, id, actor).Scan(u.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.transitionMiss(ctx, id, user.ErrAlreadyDeleted)
		}
		return nil, fmt.Errorf("soft delete user: %w", err)
	}

	return fromDBModel(u), nil
}

// RestoreUser reactivates a soft-deleted record. When the guard matches no
// row it reports ErrNotFound or ErrAlreadyActive.
func (r *Repository) RestoreUser(ctx context.Context, id user.ID) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(ctx, RestoreUserByID, id).Scan(u.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.transitionMiss(ctx, id, user.ErrAlreadyActive)
		}
		return nil, fmt.Errorf("restore user: %w", err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) transitionMiss(ctx context.Context, id user.ID, inState error) error {
	var active bool
	if err := r.db.QueryRow(ctx, SelectUserStateByID, id).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrNotFound
		}
		return fmt.Errorf("probe user state: %w", err)
	}
	return inState
}

func mapUniqueViolation(err error) error {
	constraint, ok := postgres.IsPgUniqueViolation(err)
	if !ok {
		return nil
	}
	switch constraint {
	case postgres.EmailUniqueIndex:
		return user.ErrEmailAlreadyExists
	case postgres.CPFUniqueConstraint:
		return user.ErrCPFAlreadyExists
	default:
		return fmt.Errorf("unique violation on %s: %w", constraint, err)
	}
}
