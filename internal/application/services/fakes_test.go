package services

import (
	"context"
	"errors"
	"strings"

	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/mq"
)

type FakeRepository struct {
	FetchUserByIDFunc            func(ctx context.Context, id user.ID) (*user.User, error)
	FetchUserByEmailFunc         func(ctx context.Context, email string) (*user.User, error)
	FetchUserByCPFFunc           func(ctx context.Context, cpf string) (*user.User, error)
	FetchUserByEmailAnyStateFunc func(ctx context.Context, email string) (*user.User, error)
	EmailExistsFunc              func(ctx context.Context, email string) (bool, error)
	CPFExistsFunc                func(ctx context.Context, cpf string) (bool, error)
	FetchUsersFunc               func(ctx context.Context, page, limit int) (user.Users, int64, error)
	FetchDeletedUsersFunc        func(ctx context.Context, page, limit int) (user.Users, int64, error)
	CreateUserFunc               func(ctx context.Context, u user.User) (*user.User, error)
	UpdateUserFunc               func(ctx context.Context, id user.ID, ch user.Changes) (*user.User, error)
	SoftDeleteUserFunc           func(ctx context.Context, id, actor user.ID) (*user.User, error)
	RestoreUserFunc              func(ctx context.Context, id user.ID) (*user.User, error)
}

var errNotUsed = errors.New("not used")

func (f *FakeRepository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	if f.FetchUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByIDFunc(ctx, id)
}
func (f *FakeRepository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.FetchUserByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByEmailFunc(ctx, email)
}
func (f *FakeRepository) FetchUserByCPF(ctx context.Context, cpf string) (*user.User, error) {
	if f.FetchUserByCPFFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByCPFFunc(ctx, cpf)
}
func (f *FakeRepository) FetchUserByEmailAnyState(ctx context.Context, email string) (*user.User, error) {
	if f.FetchUserByEmailAnyStateFunc == nil {
		return nil, errNotUsed
	}
	return f.FetchUserByEmailAnyStateFunc(ctx, email)
}
func (f *FakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if f.EmailExistsFunc == nil {
		return false, errNotUsed
	}
	return f.EmailExistsFunc(ctx, email)
}
func (f *FakeRepository) CPFExists(ctx context.Context, cpf string) (bool, error) {
	if f.CPFExistsFunc == nil {
		return false, errNotUsed
	}
	return f.CPFExistsFunc(ctx, cpf)
}
func (f *FakeRepository) FetchUsers(ctx context.Context, page, limit int) (user.Users, int64, error) {
	if f.FetchUsersFunc == nil {
		return nil, 0, errNotUsed
	}
	return f.FetchUsersFunc(ctx, page, limit)
}
func (f *FakeRepository) FetchDeletedUsers(ctx context.Context, page, limit int) (user.Users, int64, error) {
	if f.FetchDeletedUsersFunc == nil {
		return nil, 0, errNotUsed
	}
	return f.FetchDeletedUsersFunc(ctx, page, limit)
}
func (f *FakeRepository) CreateUser(ctx context.Context, u user.User) (*user.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateUserFunc(ctx, u)
}
func (f *FakeRepository) UpdateUser(ctx context.Context, id user.ID, ch user.Changes) (*user.User, error) {
	if f.UpdateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateUserFunc(ctx, id, ch)
}
func (f *FakeRepository) SoftDeleteUser(ctx context.Context, id, actor user.ID) (*user.User, error) {
	if f.SoftDeleteUserFunc == nil {
		return nil, errNotUsed
	}
	return f.SoftDeleteUserFunc(ctx, id, actor)
}
func (f *FakeRepository) RestoreUser(ctx context.Context, id user.ID) (*user.User, error) {
	if f.RestoreUserFunc == nil {
		return nil, errNotUsed
	}
	return f.RestoreUserFunc(ctx, id)
}

// fakeHasher prefixes instead of hashing so tests stay fast.
type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) Verify(password, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == password && strings.HasPrefix(hash, "hashed:")
}

type fakePublisher struct {
	in chan mq.Event
}

func newFakePublisher(size int) *fakePublisher {
	return &fakePublisher{in: make(chan mq.Event, size)}
}

func (p *fakePublisher) PublisherWorker(context.Context) {}
func (p *fakePublisher) GetInputChan() chan mq.Event     { return p.in }

type fakeThrottle struct {
	blocked  bool
	failures map[string]int
	resets   int
	err      error
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{failures: map[string]int{}}
}

func (t *fakeThrottle) Allowed(context.Context, string) (bool, error) {
	return !t.blocked, t.err
}
func (t *fakeThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}
func (t *fakeThrottle) Reset(context.Context, string) error {
	t.resets++
	return nil
}
