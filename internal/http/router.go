package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/handlers"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, th *handlers.TaskHandlers, mw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.GET("/verify-email", ah.VerifyEmailState)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/resend-otp", ah.ResendOTP)
	auth.POST("/refresh", ah.Refresh)

	v := r.Group("/auth").Use(mw.WithJWT())
	v.GET("/me", ah.Me)
	v.POST("/logout", ah.Logout)

	// Task routes require a verified account on top of authentication.
	api := r.Group("/api").Use(mw.WithJWT(), mw.RequireVerified())
	api.GET("/tasks-for-day", th.TasksForDay)
	api.POST("/create-task", th.CreateTask)
	api.POST("/update-task/:id", th.UpdateTask)

	return r
}
