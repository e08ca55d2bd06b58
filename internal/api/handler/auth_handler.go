package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/api/metrics"
	"github.com/usercore/account-service/internal/api/middleware"
	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionStore
	audit       ports.AuditSink
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionStore, audit ports.AuditSink, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		audit:       audit,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	userID, err := h.authService.Register(c.Request().Context(), req.Account, req.Password, req.CheckPassword)
	if err != nil {
		h.recordEvent(req.Account, domain.ActionRegister, false, err.Error())

		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Message})
		case errors.Is(err, domain.ErrAccountExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "account already registered"})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "registration failed"})
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.recordEvent(req.Account, domain.ActionRegister, true, "")

	return c.JSON(http.StatusCreated, registerResponse{UserID: userID})
}

// Login authenticates an account and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	sessionID := uuid.NewString()
	session := h.sessions.Bind(sessionID)

	user, err := h.authService.Login(c.Request().Context(), req.Account, req.Password, session)
	if err != nil {
		h.recordEvent(req.Account, domain.ActionLogin, false, err.Error())

		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.As(err, &ve):
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Message})
		case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrBadCredentials):
			// Deliberately indistinguishable to the caller; account
			// enumeration through the login endpoint is not on offer.
			metrics.LoginsTotal.WithLabelValues("denied").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid account or password"})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}
	}

	token, err := middleware.MintSessionToken(h.jwtSecret, sessionID, h.tokenTTL)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.recordEvent(req.Account, domain.ActionLogin, true, "")

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout closes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, _ := h.authService.CurrentUser(c.Request().Context(), session)

	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		return err
	}

	if user != nil {
		h.recordEvent(user.Account, domain.ActionLogout, true, "")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) recordEvent(account string, action domain.AuthEventAction, success bool, reason string) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(ports.AuthEventInput{
		Account:   account,
		Action:    action,
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}
