package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gatewise/auth-service/internal/api/metrics"
	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenIssuer
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case domain.ErrUserExists:
			status = http.StatusConflict
		case domain.ErrInvalidCredentials:
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	start := time.Now()
	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	result := loginResult(err)
	metrics.LoginsTotal.WithLabelValues(result).Inc()
	metrics.LoginDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		status := http.StatusUnauthorized
		switch err {
		case domain.ErrUserNotFound:
			status = http.StatusNotFound
		case domain.ErrTooManyAttempts:
			status = http.StatusTooManyRequests
			metrics.RateLimitHitsTotal.Inc()
		}
		return c.JSON(status, errorResponse{Error: err.Error()})
	}

	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Refresh re-issues a token for the authenticated caller. The presented token
// must still be valid; there is no expired-token grace window.
//
// @Summary      Refresh the bearer token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	token, err := h.tokens.Sign(h.tokens.Issue(claims.Subject))
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token})
}

// Me echoes the caller's validated claims.
//
// @Summary      Current principal
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  claimsResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, claimsResponse{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
	})
}

// Users lists registered accounts. Admin only.
//
// @Summary      List users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/users [get]
func (h *AuthHandler) Users(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

func loginResult(err error) string {
	switch err {
	case nil:
		return "success"
	case domain.ErrInvalidCredentials:
		return "invalid_credentials"
	case domain.ErrUserNotFound:
		return "not_found"
	case domain.ErrTooManyAttempts:
		return "throttled"
	default:
		return "error"
	}
}
