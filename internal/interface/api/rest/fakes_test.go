package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "hotel-users-api/internal/domain/user"
	jwtSvc "hotel-users-api/internal/infrastructure/jwt"
	"hotel-users-api/internal/interface/api/rest/middleware"
)

var errNotUsed = errors.New("not used")

type FakeUserService struct {
	FindUserByIDFunc     func(ctx context.Context, id domain.ID) (*domain.User, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	FindByCPFFunc        func(ctx context.Context, cpf string) (*domain.User, error)
	IsEmailAvailableFunc func(ctx context.Context, email string) (bool, error)
	IsCPFAvailableFunc   func(ctx context.Context, cpf string) (bool, error)
	FindUsersFunc        func(ctx context.Context, page, limit int) (*domain.Page, error)
	FindDeletedUsersFunc func(ctx context.Context, page, limit int) (*domain.Page, error)
	SearchUsersFunc      func(ctx context.Context, q string, page, limit int) (domain.Users, error)
	CreateUserFunc       func(ctx context.Context, nu domain.NewUser) (*domain.User, error)
	UpdateUserFunc       func(ctx context.Context, id domain.ID, p domain.Patch) (*domain.User, error)
	DeleteUserFunc       func(ctx context.Context, id, actor domain.ID) (*domain.User, error)
	RestoreUserFunc      func(ctx context.Context, id, actor domain.ID) (*domain.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) FindByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	if f.FindByCPFFunc == nil {
		return nil, errNotUsed
	}
	return f.FindByCPFFunc(ctx, cpf)
}
func (f *FakeUserService) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	if f.IsEmailAvailableFunc == nil {
		return false, errNotUsed
	}
	return f.IsEmailAvailableFunc(ctx, email)
}
func (f *FakeUserService) IsCPFAvailable(ctx context.Context, cpf string) (bool, error) {
	if f.IsCPFAvailableFunc == nil {
		return false, errNotUsed
	}
	return f.IsCPFAvailableFunc(ctx, cpf)
}
func (f *FakeUserService) FindUsers(ctx context.Context, page, limit int) (*domain.Page, error) {
	if f.FindUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.FindUsersFunc(ctx, page, limit)
}
func (f *FakeUserService) FindDeletedUsers(ctx context.Context, page, limit int) (*domain.Page, error) {
	if f.FindDeletedUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.FindDeletedUsersFunc(ctx, page, limit)
}
func (f *FakeUserService) SearchUsers(ctx context.Context, q string, page, limit int) (domain.Users, error) {
	if f.SearchUsersFunc == nil {
		return nil, errNotUsed
	}
	return f.SearchUsersFunc(ctx, q, page, limit)
}
func (f *FakeUserService) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.CreateUserFunc(ctx, nu)
}
func (f *FakeUserService) UpdateUser(ctx context.Context, id domain.ID, p domain.Patch) (*domain.User, error) {
	if f.UpdateUserFunc == nil {
		return nil, errNotUsed
	}
	return f.UpdateUserFunc(ctx, id, p)
}
func (f *FakeUserService) DeleteUser(ctx context.Context, id, actor domain.ID) (*domain.User, error) {
	if f.DeleteUserFunc == nil {
		return nil, errNotUsed
	}
	return f.DeleteUserFunc(ctx, id, actor)
}
func (f *FakeUserService) RestoreUser(ctx context.Context, id, actor domain.ID) (*domain.User, error) {
	if f.RestoreUserFunc == nil {
		return nil, errNotUsed
	}
	return f.RestoreUserFunc(ctx, id, actor)
}

type FakeAuth struct {
	LoginFunc      func(ctx context.Context, email, password string) (*domain.User, string, error)
	IssueTokenFunc func(u *domain.User) (string, error)
}

func (f *FakeAuth) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if f.LoginFunc == nil {
		return nil, "", errNotUsed
	}
	return f.LoginFunc(ctx, email, password)
}
func (f *FakeAuth) IssueToken(u *domain.User) (string, error) {
	if f.IssueTokenFunc == nil {
		return "", errNotUsed
	}
	return f.IssueTokenFunc(u)
}

const testSecret = "test-secret"

// setupRouter wires both controllers the way the app does. With
// authRequired the user write routes demand a bearer token.
func setupRouter(t *testing.T, us *FakeUserService, as *FakeAuth, authRequired bool) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	logger := zap.NewNop()
	j := jwtSvc.New(testSecret, time.Hour)

	writeAuth := middleware.OptionalAuth(j)
	if authRequired {
		writeAuth = middleware.AuthMiddleware(j)
	}

	NewAuthController(r, logger, us, as)
	NewUserController(r, us, logger, writeAuth)

	return r, j
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope decodes a response body generically so tests can look at the
// exact wire keys.
func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}
