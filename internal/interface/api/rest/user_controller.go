package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-users-api/internal/application/ports"
	domain "hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/interface/api/rest/dto/user"
	"hotel-users-api/internal/interface/api/rest/middleware"
	"hotel-users-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

// NewUserController registers the /api/users routes. writeAuth guards the
// mutating routes: required or optional authentication.
func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
	writeAuth gin.HandlerFunc,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUsersSearch, uc.SearchUsersHandler)
	r.GET(RouteUsersDeleted, uc.GetDeletedUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, writeAuth, uc.CreateUserHandler)
	r.PUT(RouteUser, writeAuth, uc.UpdateUserHandler)
	r.DELETE(RouteUser, writeAuth, uc.DeleteUserHandler)
	r.POST(RouteUserRestore, writeAuth, uc.RestoreUserHandler)

	return uc
}

// respondConflict writes 409 for uniqueness errors and reports whether it did.
func respondConflict(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, CodeEmailAlreadyExists, "email already in use")
	case errors.Is(err, domain.ErrCPFAlreadyExists):
		respondError(c, http.StatusConflict, CodeCPFAlreadyExists, "cpf already registered")
	default:
		return false
	}
	return true
}

// checkUnique probes email and cpf against active records. exclude skips
// the record being updated.
func checkUnique(c *gin.Context, logger *zap.Logger, us ports.UserService, email, cpf *string, exclude *domain.ID) bool {
	ctx := c.Request.Context()
	taken := func(u *domain.User) bool {
		return u != nil && (exclude == nil || u.ID != *exclude)
	}

	if email != nil {
		u, err := us.FindByEmail(ctx, *email)
		if err != nil {
			respondInternal(c, logger, "FindByEmail()", err)
			return false
		}
		if taken(u) {
			respondConflict(c, domain.ErrEmailAlreadyExists)
			return false
		}
	}
	if cpf != nil {
		u, err := us.FindByCPF(ctx, *cpf)
		if err != nil {
			respondInternal(c, logger, "FindByCPF()", err)
			return false
		}
		if taken(u) {
			respondConflict(c, domain.ErrCPFAlreadyExists)
			return false
		}
	}

	return true
}

func createUser(c *gin.Context, logger *zap.Logger, us ports.UserService, nu domain.NewUser) (*domain.User, bool) {
	if !checkUnique(c, logger, us, &nu.Email, &nu.CPF, nil) {
		return nil, false
	}

	u, err := us.CreateUser(c.Request.Context(), nu)
	if err != nil {
		if !respondConflict(c, err) {
			respondInternal(c, logger, "CreateUser()", err)
		}
		return nil, false
	}

	return u, true
}

func pathID(c *gin.Context) (domain.ID, bool) {
	id, ok := validator.ValidateID(c.Param("id"))
	if !ok {
		respondInvalidID(c)
	}
	return id, ok
}

// actorFor is the authenticated caller, or the target itself when the
// request is anonymous.
func actorFor(c *gin.Context, target domain.ID) domain.ID {
	if id, ok := middleware.CallerID(c); ok {
		return id
	}
	return target
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	page, limit := validator.Pagination(c.Query("page"), c.Query("limit"))

	p, err := uc.userService.FindUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondInternal(c, uc.logger, "FindUsers()", err)
		return
	}

	respondOK(c, http.StatusOK, "users listed successfully", user.ToListData(p))
}

func (uc *UserController) GetDeletedUsersHandler(c *gin.Context) {
	page, limit := validator.Pagination(c.Query("page"), c.Query("limit"))

	p, err := uc.userService.FindDeletedUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondInternal(c, uc.logger, "FindDeletedUsers()", err)
		return
	}

	respondOK(c, http.StatusOK, "deleted users listed successfully", user.ToListData(p))
}

func (uc *UserController) SearchUsersHandler(c *gin.Context) {
	q, errs := validator.ValidateSearchQuery(c.Query("q"))
	if errs != nil {
		respondValidation(c, errs)
		return
	}
	page, limit := validator.Pagination(c.Query("page"), c.Query("limit"))

	us, err := uc.userService.SearchUsers(c.Request.Context(), q, page, limit)
	if err != nil {
		respondInternal(c, uc.logger, "SearchUsers()", err)
		return
	}

	respondOK(c, http.StatusOK, "search completed", user.ToSearchData(us, q, page, limit))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		respondInternal(c, uc.logger, "FindUserByID()", err)
		return
	}
	if u == nil {
		respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		return
	}

	respondOK(c, http.StatusOK, "user found", user.ToResponseUser(*u))
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidJSON(c)
		return
	}
	nu, errs := validator.ValidateCreate(req)
	if errs != nil {
		respondValidation(c, errs)
		return
	}

	u, ok := createUser(c, uc.logger, uc.userService, nu)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "user created successfully",
		Data:    user.ToResponseUser(*u),
		Code:    CodeUserCreated,
	})
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req user.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidJSON(c)
		return
	}
	p, errs := validator.ValidateUpdate(req)
	if errs != nil {
		respondValidation(c, errs)
		return
	}

	existing, err := uc.userService.FindUserByID(c.Request.Context(), id)
	if err != nil {
		respondInternal(c, uc.logger, "FindUserByID()", err)
		return
	}
	if existing == nil {
		respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		return
	}

	var email, cpf *string
	if p.Email != nil && *p.Email != existing.Email {
		email = p.Email
	}
	if p.CPF != nil && *p.CPF != existing.CPF {
		cpf = p.CPF
	}
	if !checkUnique(c, uc.logger, uc.userService, email, cpf, &id) {
		return
	}

	u, err := uc.userService.UpdateUser(c.Request.Context(), id, p)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		} else if !respondConflict(c, err) {
			respondInternal(c, uc.logger, "UpdateUser()", err)
		}
		return
	}

	respondOK(c, http.StatusOK, "user updated successfully", user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := uc.userService.DeleteUser(c.Request.Context(), id, actorFor(c, id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		case errors.Is(err, domain.ErrAlreadyDeleted):
			respondError(c, http.StatusConflict, CodeUserAlreadyDeleted, "user already deleted")
		default:
			respondInternal(c, uc.logger, "DeleteUser()", err)
		}
		return
	}

	respondOK(c, http.StatusOK, "user deleted successfully", user.ToResponseUser(*u))
}

func (uc *UserController) RestoreUserHandler(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	u, err := uc.userService.RestoreUser(c.Request.Context(), id, actorFor(c, id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
		case errors.Is(err, domain.ErrAlreadyActive):
			respondError(c, http.StatusBadRequest, CodeUserAlreadyActive, "user is already active")
		default:
			respondInternal(c, uc.logger, "RestoreUser()", err)
		}
		return
	}

	respondOK(c, http.StatusOK, "user restored successfully", user.ToResponseUser(*u))
}
