package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/logger"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/mocks"
)

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return out
}

func setupAuthRouter(authSvc domain.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc, logger.NewNop())

	router := gin.New()
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)
	router.GET("/auth/verify-email", h.VerifyEmailState)
	router.POST("/auth/verify-email", h.VerifyEmail)
	router.POST("/auth/resend-otp", h.ResendOTP)
	router.POST("/auth/refresh", h.Refresh)
	return router
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(svc *mocks.MockAuthService)
		expectedStatus int
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful registration",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "securepassword"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
					return &domain.User{ID: 7, Username: username, Email: email}, "tok-123", nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				if data["pending_token"] != "tok-123" {
					t.Errorf("expected pending token tok-123, got %v", data["pending_token"])
				}
				if data["user_id"] != float64(7) {
					t.Errorf("expected user_id 7, got %v", data["user_id"])
				}
			},
		},
		{
			name:           "missing fields rejected by binding",
			body:           map[string]string{"username": "alice"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email rejected by binding",
			body:           RegisterRequest{Username: "alice", Email: "not-an-email", Password: "securepassword"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: RegisterRequest{Username: "alice", Email: "taken@example.com", Password: "securepassword"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
					return nil, "", domain.ErrEmailTaken
				}
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				if body["error"] != "This email is already taken." {
					t.Errorf("unexpected error message %v", body["error"])
				}
			},
		},
		{
			name: "weak password",
			body: RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "short"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
					return nil, "", &domain.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			router := setupAuthRouter(svc)

			w := performJSON(t, router, http.MethodPost, "/auth/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(svc *mocks.MockAuthService)
		expectedStatus int
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful login",
			body: LoginRequest{Email: "alice@example.com", Password: "securepassword"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:         &domain.User{ID: 1, Username: "alice", Email: email, IsActive: true},
						AccessToken:  "access",
						RefreshToken: "refresh",
						SessionID:    "sess",
						ExpiresIn:    900,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				data := body["data"].(map[string]interface{})
				if data["access_token"] != "access" {
					t.Errorf("expected access token, got %v", data["access_token"])
				}
				if data["token_type"] != "Bearer" {
					t.Errorf("expected Bearer token type, got %v", data["token_type"])
				}
			},
		},
		{
			name: "invalid credentials",
			body: LoginRequest{Email: "alice@example.com", Password: "wrong"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, domain.ErrInvalidCredentials
				}
			},
			expectedStatus: http.StatusUnauthorized,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				if body["error"] != "Invalid credentials." {
					t.Errorf("unexpected error message %v", body["error"])
				}
			},
		},
		{
			name: "unverified account returns a pending token",
			body: LoginRequest{Email: "alice@example.com", Password: "securepassword"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.LoginFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
					return nil, &domain.VerificationPendingError{PendingToken: "tok-999"}
				}
			},
			expectedStatus: http.StatusForbidden,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				if body["error"] != "Email not verified." {
					t.Errorf("unexpected error message %v", body["error"])
				}
				if body["pending_token"] != "tok-999" {
					t.Errorf("expected pending token tok-999, got %v", body["pending_token"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			router := setupAuthRouter(svc)

			w := performJSON(t, router, http.MethodPost, "/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_VerifyEmail(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(svc *mocks.MockAuthService)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "successful verification",
			body: VerifyEmailRequest{PendingToken: "tok", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, pendingToken, code string) error {
					return nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong or expired code",
			body: VerifyEmailRequest{PendingToken: "tok", Code: "000000"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, pendingToken, code string) error {
					return domain.ErrOTPInvalidOrExpired
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "The code is invalid or expired.",
		},
		{
			name: "attempts exhausted",
			body: VerifyEmailRequest{PendingToken: "tok", Code: "000000"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, pendingToken, code string) error {
					return domain.ErrOTPTooManyAttempts
				}
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name: "unknown pending token",
			body: VerifyEmailRequest{PendingToken: "gone", Code: "123456"},
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.VerifyEmailFunc = func(ctx context.Context, pendingToken, code string) error {
					return domain.ErrNoPendingVerification
				}
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Session not found. Please register again.",
		},
		{
			name:           "missing code rejected by binding",
			body:           map[string]string{"pending_token": "tok"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			router := setupAuthRouter(svc)

			w := performJSON(t, router, http.MethodPost, "/auth/verify-email", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedError != "" {
				body := decodeBody(t, w)
				if body["error"] != tt.expectedError {
					t.Errorf("expected error %q, got %v", tt.expectedError, body["error"])
				}
			}
		})
	}
}

func TestAuthHandlers_VerifyEmailState(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.ResendRemainingFunc = func(ctx context.Context, pendingToken string) (int64, error) {
		if pendingToken != "tok" {
			return 0, domain.ErrNoPendingVerification
		}
		return 42, nil
	}
	router := setupAuthRouter(svc)

	w := performJSON(t, router, http.MethodGet, "/auth/verify-email?pending_token=tok", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["resend_remaining"] != float64(42) {
		t.Errorf("expected resend_remaining 42, got %v", data["resend_remaining"])
	}

	w = performJSON(t, router, http.MethodGet, "/auth/verify-email?pending_token=nope", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an unknown token, got %d", w.Code)
	}
}

func TestAuthHandlers_ResendOTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(svc *mocks.MockAuthService)
		expectedStatus int
		validateBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:           "successful resend",
			expectedStatus: http.StatusOK,
		},
		{
			name: "cooldown active",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.ResendOTPFunc = func(ctx context.Context, pendingToken string) error {
					return &domain.CooldownError{RemainingSeconds: 37}
				}
			},
			expectedStatus: http.StatusTooManyRequests,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				if body["remaining_seconds"] != float64(37) {
					t.Errorf("expected remaining_seconds 37, got %v", body["remaining_seconds"])
				}
			},
		},
		{
			name: "already verified",
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.ResendOTPFunc = func(ctx context.Context, pendingToken string) error {
					return domain.ErrAlreadyVerified
				}
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			router := setupAuthRouter(svc)

			w := performJSON(t, router, http.MethodPost, "/auth/resend-otp", ResendRequest{PendingToken: "tok"})
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, decodeBody(t, w))
			}
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.RefreshTokenFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
		if refreshToken != "good" {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.AuthResult{AccessToken: "fresh", ExpiresIn: 900}, nil
	}
	router := setupAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "good"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	w = performJSON(t, router, http.MethodPost, "/auth/refresh", RefreshRequest{RefreshToken: "bad"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for an invalid token, got %d", w.Code)
	}
}
