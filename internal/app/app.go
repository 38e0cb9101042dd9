package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/kafka"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
	"github.com/minhtran-ct/collab-view/internal/server"
	"github.com/minhtran-ct/collab-view/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,

			server.NewController,

			usecase.NewSessionUsecase,
			usecase.NewBrowseUsecase,
			usecase.NewCollabUsecase,
			usecase.NewCommentUsecase,
			usecase.NewComplaintUsecase,

			mongodb.NewTenantDirectory,

			kafka.NewPublisher,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
