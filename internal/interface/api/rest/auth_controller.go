package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-users-api/internal/application/ports"
	"hotel-users-api/internal/application/services"
	"hotel-users-api/internal/interface/api/rest/dto/auth"
	"hotel-users-api/internal/interface/api/rest/dto/user"
	"hotel-users-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.POST(RouteCheckEmail, ac.CheckEmailHandler)
	r.POST(RouteCheckCPF, ac.CheckCPFHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
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

	u, ok := createUser(c, ac.logger, ac.userService, nu)
	if !ok {
		return
	}

	token, err := ac.authService.IssueToken(u)
	if err != nil {
		respondInternal(c, ac.logger, "IssueToken()", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "user registered successfully",
		Data:    user.ToResponseUser(*u),
		Token:   token,
		Code:    CodeUserCreated,
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidJSON(c)
		return
	}
	email, password, errs := validator.ValidateLogin(req)
	if errs != nil {
		respondValidation(c, errs)
		return
	}

	u, token, err := ac.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "incorrect email or password")
		case errors.Is(err, services.ErrAccountDeactivated):
			respondError(c, http.StatusUnauthorized, CodeAccountDeactivated, "account deactivated, contact support")
		case errors.Is(err, services.ErrTooManyAttempts):
			respondError(c, http.StatusTooManyRequests, CodeTooManyAttempts, "too many failed attempts, try again later")
		default:
			respondInternal(c, ac.logger, "Login()", err)
		}
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "login successful",
		Data:    user.ToResponseUser(*u),
		Token:   token,
		Code:    CodeLoginSuccess,
	})
}

func (ac *AuthController) CheckEmailHandler(c *gin.Context) {
	var req auth.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidJSON(c)
		return
	}
	email := validator.NormalizeEmail(req.Email)
	if email == "" {
		respondError(c, http.StatusBadRequest, CodeValidationError, "email is required")
		return
	}

	available, err := ac.userService.IsEmailAvailable(c.Request.Context(), email)
	if err != nil {
		respondInternal(c, ac.logger, "IsEmailAvailable()", err)
		return
	}

	msg := "email available"
	if !available {
		msg = "email already in use"
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: msg, Available: &available})
}

func (ac *AuthController) CheckCPFHandler(c *gin.Context) {
	var req auth.CheckCPFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidJSON(c)
		return
	}
	cpf := validator.NormalizeCPF(req.CPF)
	if cpf == "" {
		respondError(c, http.StatusBadRequest, CodeValidationError, "cpf is required")
		return
	}

	available, err := ac.userService.IsCPFAvailable(c.Request.Context(), cpf)
	if err != nil {
		respondInternal(c, ac.logger, "IsCPFAvailable()", err)
		return
	}

	msg := "cpf available"
	if !available {
		msg = "cpf already registered"
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: msg, Available: &available})
}
