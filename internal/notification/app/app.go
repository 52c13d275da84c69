package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	kafkainfra "github.com/vominhduc11/NexHub-sub001/internal/infrastructure/message-queue/kafka"
	localmiddleware "github.com/vominhduc11/NexHub-sub001/internal/middleware"
	"github.com/vominhduc11/NexHub-sub001/internal/notification/consumer"
	"github.com/vominhduc11/NexHub-sub001/internal/notification/service"
	"github.com/vominhduc11/NexHub-sub001/pkg/response"
)

type App struct {
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()

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

	svc := service.CreateEmailService(app.Config)
	emailConsumer := consumer.CreateEmailConsumer(svc, kafkainfra.CreateKafkaReader(app.Config, app.Config.KafkaConfig.NotificationEmailTopic))

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	go emailConsumer.Start(consumerCtx)

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
