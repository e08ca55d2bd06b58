package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/api/middleware"
	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, account, password, checkPassword string) (int64, error)
	loginFn    func(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error)
	currentFn  func(ctx context.Context, session ports.Session) (*domain.SanitizedUser, error)
	logoutFn   func(ctx context.Context, session ports.Session) error
}

func (s *stubAuthService) Register(ctx context.Context, account, password, checkPassword string) (int64, error) {
	return s.registerFn(ctx, account, password, checkPassword)
}

func (s *stubAuthService) Login(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error) {
	return s.loginFn(ctx, account, password, session)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, session ports.Session) (*domain.SanitizedUser, error) {
	if s.currentFn == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.currentFn(ctx, session)
}

func (s *stubAuthService) Logout(ctx context.Context, session ports.Session) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, session)
}

type memorySession struct {
	values map[string]*domain.SanitizedUser
}

func newMemorySession() *memorySession {
	return &memorySession{values: make(map[string]*domain.SanitizedUser)}
}

func (s *memorySession) Set(_ context.Context, key string, user *domain.SanitizedUser) error {
	s.values[key] = user
	return nil
}

func (s *memorySession) Get(_ context.Context, key string) (*domain.SanitizedUser, error) {
	user, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (s *memorySession) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type stubSessionStore struct {
	sessions map[string]*memorySession
	bound    []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*memorySession)}
}

func (s *stubSessionStore) Bind(sessionID string) ports.Session {
	s.bound = append(s.bound, sessionID)
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = newMemorySession()
		s.sessions[sessionID] = sess
	}
	return sess
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type captureSink struct {
	events []ports.AuthEventInput
}

func (c *captureSink) Enqueue(event ports.AuthEventInput) {
	c.events = append(c.events, event)
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	sink := &captureSink{}
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, account, password, checkPassword string) (int64, error) {
			if account != "abcdef" || password != "password" || checkPassword != "password" {
				t.Fatalf("unexpected args: %s %s %s", account, password, checkPassword)
			}
			return 7, nil
		},
	}
	h := NewAuthHandler(stub, newStubSessionStore(), sink, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/register", `{"account":"abcdef","password":"password","check_password":"password"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user_id"] != float64(7) {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	if len(sink.events) != 1 || sink.events[0].Action != domain.ActionRegister || !sink.events[0].Success {
		t.Fatalf("expected one successful register event, got %+v", sink.events)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, account, password, checkPassword string) (int64, error) {
			return 0, domain.ErrAccountExists
		},
	}
	h := NewAuthHandler(stub, newStubSessionStore(), &captureSink{}, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/register", `{"account":"abcdef","password":"password","check_password":"password"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, account, password, checkPassword string) (int64, error) {
			return 0, &domain.ValidationError{
				Rule:    domain.RulePasswordMismatch,
				Message: "password and confirmation do not match",
			}
		},
	}
	h := NewAuthHandler(stub, newStubSessionStore(), &captureSink{}, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/register", `{"account":"abcdef","password":"password","check_password":"different1"}`)
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "do not match") {
		t.Fatalf("expected mismatch message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, account, password, checkPassword string) (int64, error) {
			t.Fatalf("should not be called")
			return 0, nil
		},
	}
	h := NewAuthHandler(stub, newStubSessionStore(), &captureSink{}, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/register", "not-json")
	_ = h.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	store := newStubSessionStore()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error) {
			if account != "abcdef" || password != "password" {
				t.Fatalf("unexpected args: %s %s", account, password)
			}
			if session == nil {
				t.Fatalf("expected bound session")
			}
			return &domain.SanitizedUser{ID: 1, Account: account}, nil
		},
	}
	h := NewAuthHandler(stub, store, &captureSink{}, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/login", `{"account":"abcdef","password":"password"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token == "" || resp.User == nil || resp.User.Account != "abcdef" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	if len(store.bound) != 1 {
		t.Fatalf("expected one session bind, got %d", len(store.bound))
	}

	// The token must carry the session id the store bound.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sid"] != store.bound[0] {
		t.Fatalf("token sid %v does not match bound session %s", claims["sid"], store.bound[0])
	}
}

func TestAuthHandler_Login_DeniedIsIndistinguishable(t *testing.T) {
	e := echo.New()

	for _, failure := range []error{domain.ErrAccountNotFound, domain.ErrBadCredentials} {
		stub := &stubAuthService{
			loginFn: func(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error) {
				return nil, failure
			},
		}
		h := NewAuthHandler(stub, newStubSessionStore(), &captureSink{}, "secret", time.Hour)

		c, rec := postJSON(t, e, "/auth/login", `{"account":"abcdef","password":"password"}`)
		_ = h.Login(c)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", failure, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "invalid account or password") {
			t.Fatalf("%v: expected generic message, got %s", failure, rec.Body.String())
		}
	}
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error) {
			return nil, &domain.ValidationError{Rule: domain.RuleAccountTooShort, Message: "account must be at least 6 characters"}
		},
	}
	h := NewAuthHandler(stub, newStubSessionStore(), &captureSink{}, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/login", `{"account":"abc","password":"password"}`)
	_ = h.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := echo.New()
	session := newMemorySession()
	session.values[domain.SessionKeyLoginState] = &domain.SanitizedUser{ID: 1, Account: "abcdef"}

	logoutCalled := false
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, s ports.Session) (*domain.SanitizedUser, error) {
			return s.Get(ctx, domain.SessionKeyLoginState)
		},
		logoutFn: func(ctx context.Context, s ports.Session) error {
			logoutCalled = true
			return s.Delete(ctx, domain.SessionKeyLoginState)
		},
	}
	sink := &captureSink{}
	h := NewAuthHandler(stub, newStubSessionStore(), sink, "secret", time.Hour)

	c, rec := postJSON(t, e, "/auth/logout", "")
	c.Set(middleware.ContextKeySession, session)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !logoutCalled {
		t.Fatalf("logout not delegated to service")
	}
	if len(sink.events) != 1 || sink.events[0].Action != domain.ActionLogout {
		t.Fatalf("expected logout event, got %+v", sink.events)
	}
}
