package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	log     *zap.SugaredLogger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, log *zap.SugaredLogger) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, log: log}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest represents an OTP submission
type VerifyEmailRequest struct {
	PendingToken string `json:"pending_token" binding:"required"`
	Code         string `json:"otp" binding:"required"`
}

// ResendRequest represents a resend-code request
type ResendRequest struct {
	PendingToken string `json:"pending_token" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pendingToken, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case domain.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "This email is already taken."})
		case errors.Is(err, domain.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "This username is already taken."})
		default:
			h.log.Errorw("registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message":       "Registered successfully. Please verify your email address.",
			"user_id":       user.ID,
			"pending_token": pendingToken,
		},
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var pending *domain.VerificationPendingError
		switch {
		case errors.As(err, &pending):
			c.JSON(http.StatusForbidden, gin.H{
				"error":         "Email not verified.",
				"pending_token": pending.PendingToken,
			})
		case domain.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		default:
			h.log.Errorw("login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  result.AccessToken,
			"refresh_token": result.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    result.ExpiresIn,
			"user": gin.H{
				"id":       result.User.ID,
				"username": result.User.Username,
				"email":    result.User.Email,
			},
		},
	})
}

// VerifyEmail handles OTP submission. Wrong code, expired code and missing
// record all produce the same message.
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), req.PendingToken, req.Code); err != nil {
		h.respondVerificationError(c, err)
		return
	}

	h.log.Infow("email verified")
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Email successfully verified! Please sign in.",
		},
	})
}

// VerifyEmailState reports the resend countdown for the pending
// verification, for the client's countdown widget.
func (h *AuthHandlers) VerifyEmailState(c *gin.Context) {
	pendingToken := c.Query("pending_token")

	remaining, err := h.authSvc.ResendRemaining(c.Request.Context(), pendingToken)
	if err != nil {
		h.respondVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"resend_remaining": remaining,
		},
	})
}

// ResendOTP handles resend requests
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendOTP(c.Request.Context(), req.PendingToken); err != nil {
		h.respondVerificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "A new verification code has been sent.",
		},
	})
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
		default:
			h.log.Errorw("token refresh failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": result.AccessToken,
			"token_type":   "Bearer",
			"expires_in":   result.ExpiresIn,
		},
	})
}

// Me handles getting user profile (requires authentication)
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"is_active":  user.IsActive,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		},
	})
}

// Logout handles user logout (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID not found"})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sessionID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}

// respondVerificationError maps the verification taxonomy onto HTTP
// responses without exposing any finer-grained cause.
func (h *AuthHandlers) respondVerificationError(c *gin.Context, err error) {
	var cooldown *domain.CooldownError
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoPendingVerification):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found. Please register again."})
	case errors.As(err, &cooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             cooldown.Error(),
			"remaining_seconds": cooldown.RemainingSeconds,
		})
	case errors.Is(err, domain.ErrOTPTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Please request a new code."})
	case errors.Is(err, domain.ErrOTPInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "The code is invalid or expired."})
	case errors.Is(err, domain.ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already verified. Please sign in."})
	default:
		h.log.Errorw("verification request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
	}
}
