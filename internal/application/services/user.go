package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/cases"

	"hotel-users-api/internal/application/ports"
	domain "hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/infrastructure/mq"
)

type UserService struct {
	userRepository domain.Repository
	hasher         ports.Hasher
	mq             ports.EventPublisher
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	hasher ports.Hasher,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchUserByID(ctx, id)
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return us.userRepository.FetchUserByEmail(ctx, email)
}

func (us *UserService) FindByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	return us.userRepository.FetchUserByCPF(ctx, cpf)
}

// IsEmailAvailable also counts soft-deleted records, which still hold
// their email.
func (us *UserService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := us.userRepository.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (us *UserService) IsCPFAvailable(ctx context.Context, cpf string) (bool, error) {
	exists, err := us.userRepository.CPFExists(ctx, cpf)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (us *UserService) FindUsers(ctx context.Context, page, limit int) (*domain.Page, error) {
	users, total, err := us.userRepository.FetchUsers(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return domain.NewPage(users, page, limit, total), nil
}

func (us *UserService) FindDeletedUsers(ctx context.Context, page, limit int) (*domain.Page, error) {
	users, total, err := us.userRepository.FetchDeletedUsers(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return domain.NewPage(users, page, limit, total), nil
}

// SearchUsers filters one page of active records by name or email.
// Matches outside the requested page are not found.
func (us *UserService) SearchUsers(ctx context.Context, q string, page, limit int) (domain.Users, error) {
	users, _, err := us.userRepository.FetchUsers(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q))

	found := make(domain.Users, 0, len(users))
	for _, u := range users {
		if strings.Contains(fold.String(u.Name), needle) ||
			strings.Contains(fold.String(u.Email), needle) {
			found = append(found, u)
		}
	}

	return found, nil
}

func (us *UserService) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	hash, err := us.hasher.Hash(nu.Password)
	if err != nil {
		return nil, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Name:         nu.Name,
		Email:        nu.Email,
		CPF:          nu.CPF,
		Phone:        nu.Phone,
		Address:      nu.Address,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	us.publish(mq.NewEvent(mq.ActionCreated, uRet, nil))
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return uRet, nil
}

func (us *UserService) UpdateUser(ctx context.Context, id domain.ID, p domain.Patch) (*domain.User, error) {
	ch := domain.Changes{
		Name:    p.Name,
		Email:   p.Email,
		CPF:     p.CPF,
		Phone:   p.Phone,
		Address: p.Address,
	}
	if p.Password != nil {
		hash, err := us.hasher.Hash(*p.Password)
		if err != nil {
			return nil, err
		}
		ch.PasswordHash = &hash
	}

	uRet, err := us.userRepository.UpdateUser(ctx, id, ch)
	if err != nil {
		return nil, err
	}

	us.publish(mq.NewEvent(mq.ActionUpdated, uRet, nil))
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return uRet, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id, actor domain.ID) (*domain.User, error) {
	uRet, err := us.userRepository.SoftDeleteUser(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	us.publish(mq.NewEvent(mq.ActionDeleted, uRet, &actor))
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return uRet, nil
}

func (us *UserService) RestoreUser(ctx context.Context, id, actor domain.ID) (*domain.User, error) {
	uRet, err := us.userRepository.RestoreUser(ctx, id)
	if err != nil {
		return nil, err
	}

	us.publish(mq.NewEvent(mq.ActionRestored, uRet, &actor))
	us.mCounter.WithLabelValues("user_restored_total").Inc()

	return uRet, nil
}

// publish never blocks a request on a full event buffer; dropped events
// are counted instead.
func (us *UserService) publish(e mq.Event) {
	select {
	case us.mq.GetInputChan() <- e:
	default:
		us.mCounter.WithLabelValues("event_dropped_total").Inc()
	}
}
