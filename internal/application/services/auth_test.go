package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/jwt"
)

func TestAuthService_Login(t *testing.T) {
	active := activeUser("Maria Silva", "maria@hotel.com")
	deleted := activeUser("Ana Souza", "ana@hotel.com")
	deleted.Active = false
	now := time.Now()
	deleted.DeletedAt = &now
	deleted.DeletedBy = &deleted.ID

	byEmail := map[string]*user.User{
		active.Email:  active,
		deleted.Email: deleted,
	}

	tests := []struct {
		name         string
		email        string
		password     string
		blocked      bool
		wantErr      error
		wantFailures int
		wantResets   int
	}{
		{name: "success", email: "maria@hotel.com", password: "secret1", wantResets: 1},
		{name: "wrong password", email: "maria@hotel.com", password: "nope", wantErr: ErrInvalidCredentials, wantFailures: 1},
		{name: "unknown email", email: "ghost@hotel.com", password: "secret1", wantErr: ErrInvalidCredentials, wantFailures: 1},
		{name: "deactivated with right password", email: "ana@hotel.com", password: "secret1", wantErr: ErrAccountDeactivated},
		{name: "deactivated with wrong password", email: "ana@hotel.com", password: "nope", wantErr: ErrInvalidCredentials, wantFailures: 1},
		{name: "throttled", email: "maria@hotel.com", password: "secret1", blocked: true, wantErr: ErrTooManyAttempts},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := &FakeRepository{
				FetchUserByEmailAnyStateFunc: func(_ context.Context, email string) (*user.User, error) {
					return byEmail[email], nil
				},
			}
			th := newFakeThrottle()
			th.blocked = tt.blocked
			j := jwt.New("test-secret", time.Hour)
			svc := NewAuthService(repo, fakeHasher{}, th, j, newCounter())

			u, token, err := svc.Login(context.Background(), tt.email, tt.password)
			assert.Equal(t, tt.wantFailures, th.failures[tt.email])
			assert.Equal(t, tt.wantResets, th.resets)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, active.ID, u.ID)

			claims, err := j.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, active.ID.String(), claims.Subject)
			assert.Equal(t, active.Email, claims.Email)
		})
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &FakeRepository{
		FetchUserByEmailAnyStateFunc: func(context.Context, string) (*user.User, error) {
			return nil, storeErr
		},
	}
	th := newFakeThrottle()
	svc := NewAuthService(repo, fakeHasher{}, th, jwt.New("s", time.Hour), newCounter())

	_, _, err := svc.Login(context.Background(), "maria@hotel.com", "secret1")
	require.ErrorIs(t, err, storeErr)
	assert.Zero(t, th.failures["maria@hotel.com"])
}

func TestAuthService_IssueToken(t *testing.T) {
	j := jwt.New("test-secret", 2*time.Hour)
	svc := NewAuthService(&FakeRepository{}, fakeHasher{}, newFakeThrottle(), j, newCounter())
	u := activeUser("Maria Silva", "maria@hotel.com")

	token, err := svc.IssueToken(u)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
