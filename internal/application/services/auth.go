package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"hotel-users-api/internal/application/ports"
	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDeactivated    = errors.New("account deactivated")
	ErrTooManyAttempts       = errors.New("too many failed login attempts")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	userRepository user.Repository
	hasher         ports.Hasher
	throttle       ports.LoginThrottle
	jwtService     *jwt.Service
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository user.Repository,
	hasher ports.Hasher,
	throttle ports.LoginThrottle,
	jwtService *jwt.Service,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		throttle:       throttle,
		jwtService:     jwtService,
		mCounter:       mCounter,
	}
}

// Login checks credentials against records in any state. A deactivated
// account is only reported once the password has matched.
func (as *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	ok, err := as.throttle.Allowed(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		as.mCounter.WithLabelValues("login_throttled_total").Inc()
		return nil, "", ErrTooManyAttempts
	}

	u, err := as.userRepository.FetchUserByEmailAnyState(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !as.hasher.Verify(password, u.PasswordHash) {
		if err = as.throttle.RecordFailure(ctx, email); err != nil {
			return nil, "", err
		}
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, "", ErrAccountDeactivated
	}

	if err = as.throttle.Reset(ctx, email); err != nil {
		return nil, "", err
	}

	token, err := as.IssueToken(u)
	if err != nil {
		return nil, "", err
	}

	as.mCounter.WithLabelValues("login_success_total").Inc()

	return u, token, nil
}

func (as *AuthService) IssueToken(u *user.User) (string, error) {
	token, err := as.jwtService.GenerateJWT(u.ID.String(), u.Email, as.jwtService.TTL())
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
