package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/metrics"
	"hotel-users-api/internal/infrastructure/mq"
)

func newCounter() *prometheus.CounterVec {
	return metrics.New(prometheus.NewRegistry()).Counter
}

func activeUser(name, email string) *user.User {
	return &user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		CPF:          "52998224725",
		Phone:        "11987654321",
		Address:      "Rua das Flores, 100",
		PasswordHash: "hashed:secret1",
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}
}

func ptr(s string) *string { return &s }

func TestUserService_CreateUser_HashesAndPublishes(t *testing.T) {
	pub := newFakePublisher(1)
	var stored user.User
	repo := &FakeRepository{
		CreateUserFunc: func(_ context.Context, u user.User) (*user.User, error) {
			stored = u
			out := u
			out.ID = uuid.New()
			out.Active = true
			return &out, nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, pub, newCounter())

	u, err := svc.CreateUser(context.Background(), user.NewUser{
		Name: "Maria Silva", Email: "maria@hotel.com", CPF: "52998224725",
		Phone: "11987654321", Address: "Rua das Flores, 100", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "hashed:secret1", stored.PasswordHash)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	select {
	case e := <-pub.in:
		assert.Equal(t, mq.ActionCreated, e.Action)
		assert.Equal(t, u.ID.String(), e.UserID)
		assert.Empty(t, e.ActorID)
	default:
		t.Fatal("expected a lifecycle event")
	}
}

func TestUserService_CreateUser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		hasher  fakeHasher
		repoErr error
		wantErr error
	}{
		{"hash failure", fakeHasher{err: errors.New("boom")}, nil, nil},
		{"email conflict", fakeHasher{}, user.ErrEmailAlreadyExists, user.ErrEmailAlreadyExists},
		{"cpf conflict", fakeHasher{}, user.ErrCPFAlreadyExists, user.ErrCPFAlreadyExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pub := newFakePublisher(1)
			repo := &FakeRepository{
				CreateUserFunc: func(context.Context, user.User) (*user.User, error) {
					return nil, tt.repoErr
				},
			}
			svc := NewUserService(repo, tt.hasher, pub, newCounter())

			u, err := svc.CreateUser(context.Background(), user.NewUser{Password: "secret1"})
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Nil(t, u)
			assert.Empty(t, pub.in)
		})
	}
}

func TestUserService_UpdateUser_RehashesPresentPassword(t *testing.T) {
	id := uuid.New()
	var got user.Changes
	repo := &FakeRepository{
		UpdateUserFunc: func(_ context.Context, gotID user.ID, ch user.Changes) (*user.User, error) {
			require.Equal(t, id, gotID)
			got = ch
			return activeUser("Maria", "maria@hotel.com"), nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, newFakePublisher(1), newCounter())

	_, err := svc.UpdateUser(context.Background(), id, user.Patch{Phone: ptr("11900001111"), Password: ptr("novasenha")})
	require.NoError(t, err)

	require.NotNil(t, got.PasswordHash)
	assert.Equal(t, "hashed:novasenha", *got.PasswordHash)
	assert.Equal(t, "11900001111", *got.Phone)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Email)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	pub := newFakePublisher(1)
	repo := &FakeRepository{
		UpdateUserFunc: func(context.Context, user.ID, user.Changes) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	svc := NewUserService(repo, fakeHasher{}, pub, newCounter())

	_, err := svc.UpdateUser(context.Background(), uuid.New(), user.Patch{Name: ptr("Novo Nome")})
	require.ErrorIs(t, err, user.ErrNotFound)
	assert.Empty(t, pub.in)
}

func TestUserService_DeleteUser(t *testing.T) {
	id, actor := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		repoErr   error
		wantEvent bool
	}{
		{"deleted", nil, true},
		{"already deleted", user.ErrAlreadyDeleted, false},
		{"missing", user.ErrNotFound, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pub := newFakePublisher(1)
			repo := &FakeRepository{
				SoftDeleteUserFunc: func(_ context.Context, gotID, gotActor user.ID) (*user.User, error) {
					assert.Equal(t, id, gotID)
					assert.Equal(t, actor, gotActor)
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					now := time.Now()
					return &user.User{ID: id, DeletedAt: &now, DeletedBy: &actor}, nil
				},
			}
			svc := NewUserService(repo, fakeHasher{}, pub, newCounter())

			u, err := svc.DeleteUser(context.Background(), id, actor)
			if tt.repoErr != nil {
				require.ErrorIs(t, err, tt.repoErr)
				assert.Nil(t, u)
				assert.Empty(t, pub.in)
				return
			}
			require.NoError(t, err)
			assert.False(t, u.IsActive())
			e := <-pub.in
			assert.Equal(t, mq.ActionDeleted, e.Action)
			assert.Equal(t, actor.String(), e.ActorID)
		})
	}
}

func TestUserService_RestoreUser(t *testing.T) {
	id, actor := uuid.New(), uuid.New()
	pub := newFakePublisher(1)
	repo := &FakeRepository{
		RestoreUserFunc: func(_ context.Context, gotID user.ID) (*user.User, error) {
			assert.Equal(t, id, gotID)
			return &user.User{ID: id, Active: true}, nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, pub, newCounter())

	u, err := svc.RestoreUser(context.Background(), id, actor)
	require.NoError(t, err)
	assert.True(t, u.IsActive())
	e := <-pub.in
	assert.Equal(t, mq.ActionRestored, e.Action)
	assert.Equal(t, actor.String(), e.ActorID)

	repo.RestoreUserFunc = func(context.Context, user.ID) (*user.User, error) { return nil, user.ErrAlreadyActive }
	_, err = svc.RestoreUser(context.Background(), id, actor)
	require.ErrorIs(t, err, user.ErrAlreadyActive)
}

func TestUserService_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	pub := newFakePublisher(0)
	repo := &FakeRepository{
		RestoreUserFunc: func(_ context.Context, id user.ID) (*user.User, error) {
			return &user.User{ID: id, Active: true}, nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, pub, newCounter())

	done := make(chan struct{})
	go func() {
		_, _ = svc.RestoreUser(context.Background(), uuid.New(), uuid.New())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("restore blocked on the event buffer")
	}
}

func TestUserService_FindUsers_Page(t *testing.T) {
	repo := &FakeRepository{
		FetchUsersFunc: func(_ context.Context, page, limit int) (user.Users, int64, error) {
			assert.Equal(t, 3, page)
			assert.Equal(t, 10, limit)
			return user.Users{activeUser("A", "a@h.com")}, 25, nil
		},
		FetchDeletedUsersFunc: func(context.Context, int, int) (user.Users, int64, error) {
			return nil, 0, nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, newFakePublisher(1), newCounter())

	p, err := svc.FindUsers(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.Total)
	assert.Len(t, p.Users, 1)

	p, err = svc.FindDeletedUsers(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, p.Users)
	assert.Equal(t, 0, p.TotalPages)
}

func TestUserService_SearchUsers(t *testing.T) {
	users := user.Users{
		activeUser("João Araújo", "joao@hotel.com"),
		activeUser("Maria Silva", "MARIA@hotel.com"),
		activeUser("Straße Müller", "mueller@hotel.com"),
	}
	repo := &FakeRepository{
		FetchUsersFunc: func(context.Context, int, int) (user.Users, int64, error) {
			return users, int64(len(users)), nil
		},
	}
	svc := NewUserService(repo, fakeHasher{}, newFakePublisher(1), newCounter())

	tests := []struct {
		q    string
		want []string
	}{
		{"maria", []string{"Maria Silva"}},
		{"ARAÚJO", []string{"João Araújo"}},
		{"strasse", []string{"Straße Müller"}},
		{"hotel.com", []string{"João Araújo", "Maria Silva", "Straße Müller"}},
		{"zz", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.q, func(t *testing.T) {
			found, err := svc.SearchUsers(context.Background(), tt.q, 1, 10)
			require.NoError(t, err)
			names := make([]string, 0, len(found))
			for _, u := range found {
				names = append(names, u.Name)
			}
			if tt.want == nil {
				assert.Empty(t, names)
				return
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUserService_Availability(t *testing.T) {
	repo := &FakeRepository{
		EmailExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
		CPFExistsFunc:   func(context.Context, string) (bool, error) { return false, nil },
	}
	svc := NewUserService(repo, fakeHasher{}, newFakePublisher(1), newCounter())

	ok, err := svc.IsEmailAvailable(context.Background(), "maria@hotel.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsCPFAvailable(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.True(t, ok)
}
