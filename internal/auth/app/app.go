package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/consumer"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/controller"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/repository"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/service"
	kafkainfra "github.com/vominhduc11/NexHub-sub001/internal/infrastructure/message-queue/kafka"
	"github.com/vominhduc11/NexHub-sub001/internal/infrastructure/tracing"
	localmiddleware "github.com/vominhduc11/NexHub-sub001/internal/middleware"
	"github.com/vominhduc11/NexHub-sub001/pkg/response"
	"github.com/vominhduc11/NexHub-sub001/pkg/validation"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	e.Validator = validation.CreateRequestValidator()

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, "auth-service")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()

		tracer := traceProvider.Tracer("auth-service")

		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g := e.Group("/api/v1")

	repo := repository.CreateNewRepository(app.DB)
	svc := service.CreateNewService(repo, app.Config)
	controller.CreateController(g, svc, app.Config.ServiceAPIKey)

	if err := svc.EnsureAdminAccount(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to provision admin account")
	}

	eventSvc := service.CreateResellerEventService(repo)
	eventConsumer := consumer.CreateResellerEventConsumer(
		eventSvc,
		kafkainfra.CreateKafkaReader(app.Config, app.Config.KafkaConfig.ResellerApprovedTopic),
		kafkainfra.CreateKafkaReader(app.Config, app.Config.KafkaConfig.ResellerRejectedTopic),
		kafkainfra.CreateKafkaReader(app.Config, app.Config.KafkaConfig.ResellerDeletedTopic),
		kafkainfra.CreateKafkaReader(app.Config, app.Config.KafkaConfig.ResellerRestoredTopic),
		app.Config.KafkaConfig.ResellerApprovedTopic,
		app.Config.KafkaConfig.ResellerRejectedTopic,
		app.Config.KafkaConfig.ResellerDeletedTopic,
		app.Config.KafkaConfig.ResellerRestoredTopic,
	)

	consumerCtx, cancelConsumers := context.WithCancel(context.Background())
	defer cancelConsumers()
	go eventConsumer.Start(consumerCtx)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
