package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/internal/config"
	httpx "github.com/you/ordersvc/internal/http"
	"github.com/you/ordersvc/internal/http/handlers"
	"github.com/you/ordersvc/internal/http/middleware"
)

// Run wires the service and serves HTTP until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := httpx.BuildRouter(httpx.RouterDeps{
		Auth:   handlers.NewAuthHandlers(c.AuthSvc, cfg.AdminRegistrationCode),
		Access: handlers.NewAccessHandlers(c.AccessSvc),
		Orders: handlers.NewOrderHandlers(c.OrderSvc),
		Menu:   handlers.NewMenuHandlers(c.MenuRepo),
		Tables: handlers.NewTableHandlers(c.TableRepo),
		Admin:  handlers.NewAdminHandlers(c.AnalyticsSvc, c.AccessSvc, c.AccountRepo),

		AuthSvc: c.AuthSvc,
		Casbin:  middleware.NewCasbinMW(c.Enforcer),
		Limiter: c.Limiter,

		ForgotPasswordLimit: cfg.ForgotPasswordLimit,
		ResetPasswordLimit:  cfg.ResetPasswordLimit,
		RateLimitWindow:     cfg.RateLimitWindow,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("shutting down on %s", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	// Let queued notifications flush before exiting.
	return c.Notifier.Close(ctx)
}
