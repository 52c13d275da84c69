package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	circuitbreaker "github.com/vominhduc11/NexHub-sub001/internal/infrastructure/circuit-breaker"
	kafkainfra "github.com/vominhduc11/NexHub-sub001/internal/infrastructure/message-queue/kafka"
	"github.com/vominhduc11/NexHub-sub001/internal/infrastructure/tracing"
	localmiddleware "github.com/vominhduc11/NexHub-sub001/internal/middleware"
	"github.com/vominhduc11/NexHub-sub001/internal/user/client"
	"github.com/vominhduc11/NexHub-sub001/internal/user/controller"
	"github.com/vominhduc11/NexHub-sub001/internal/user/outbox"
	"github.com/vominhduc11/NexHub-sub001/internal/user/repository"
	"github.com/vominhduc11/NexHub-sub001/internal/user/service"
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

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, "user-service")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()

		tracer := traceProvider.Tracer("user-service")

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

	cb := circuitbreaker.CreateCircuitBreaker("user-service")
	authClient := client.CreateAuthServiceClient(app.Config, cb)

	repo := repository.CreateResellerRepository(app.DB)
	svc := service.CreateResellerService(repo, authClient, app.Config)
	controller.CreateController(g, svc, app.Config.ServiceAPIKey)

	kafkaWriter := kafkainfra.CreateKafkaWriter(app.Config)
	defer kafkaWriter.Close()

	dispatcher := outbox.CreateDispatcher(repo, kafkaWriter)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	// Singleton mode keeps a slow sweep from overlapping with the next tick;
	// overlapping sweeps would republish rows out of order.
	_, err = s.NewJob(
		gocron.DurationJob(
			2*time.Second,
		),
		gocron.NewTask(
			dispatcher.Dispatch,
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			1*time.Minute,
		),
		gocron.NewTask(
			svc.RetryOrphanedAccounts,
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		panic(err)
	}

	s.Start()
	defer s.Shutdown()

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
