package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// AuthMW wraps the token service, session repository and user repository for
// route protection.
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.sessionRepo)
}

// RequireVerified rejects authenticated users whose email is not yet
// verified. Runs after WithJWT.
func (mw *AuthMW) RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
			c.Abort()
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified."})
			c.Abort()
			return
		}

		c.Next()
	}
}
