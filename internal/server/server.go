package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minhtran-ct/collab-view/internal/config"
	pkgmdw "github.com/minhtran-ct/collab-view/internal/server/middleware"
	"github.com/minhtran-ct/collab-view/internal/usecase"
	"github.com/minhtran-ct/collab-view/pkg/util"
	"go.uber.org/fx"
)

var quietPaths = []string{"/health", "/metrics"}

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
	sessions usecase.SessionUsecase,
) {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http"))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			return !util.SliceIncludes(quietPaths, c.Request().RequestURI)
		},
		KeyAndValues: func(c echo.Context) []any {
			if session := pkgmdw.SessionFromContext(c); session != nil {
				return []any{"tenant", session.Tenant}
			}
			return nil
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.POST("/sessions", handler.CreateSession)

	authed := api.Group("", pkgmdw.Session(sessions))
	authed.DELETE("/sessions/current", handler.DeleteSession)
	authed.GET("/collections", handler.ListCollections)
	authed.GET("/collections/:collection/keys", handler.ListKeys)
	authed.GET("/collections/:collection/documents", handler.ListDocuments)
	authed.GET("/collections/:collection/documents/:key", handler.GetDocument)
	authed.POST("/collaborations/sent/search", handler.SearchSent)
	authed.POST("/collaborations/received/search", handler.SearchReceived)
	authed.POST("/collaborations/:id/comments", handler.AddComment)
	authed.POST("/complaints", handler.FileComplaint)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
