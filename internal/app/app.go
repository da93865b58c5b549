package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/config"
	httpx "github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/handlers"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Redis.Ping(context.Background()); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.Log)
	taskH := handlers.NewTaskHandlers(c.TaskSvc, c.Log)
	mw := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo, c.UserRepo)

	r := httpx.BuildRouter(authH, taskH, mw)

	addr := ":" + cfg.Port
	c.Log.Infow("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}
