package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/api"
	"sysafari.com/customs/costsim/config"
	_ "sysafari.com/customs/costsim/docs"
	"sysafari.com/customs/costsim/sheet"
	"sysafari.com/customs/costsim/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and, when enabled, the AMQP cost request consumer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	e, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}
	reporter := sheet.NewReporter(cfg.Report.TmpDir)

	if cfg.RabbitMQ.Enabled {
		// async cost request consumer
		go func() {
			if err := worker.Start(ctx, cfg.RabbitMQ, e, reporter); err != nil {
				log.Errorf("Cost request consumer stopped: %v", err)
			}
		}()
	}

	return echoRoutes(ctx, cfg.Port, api.New(e, reporter))
}

// echoRoutes Set echo routes
// @title Customs cost simulation service
// @version 1.0
// @description Computes the landed cost of import shipments and serves the xlsx reports
// @termsOfService http://swagger.io/terms/

// @contact.name Joker
// @contact.email ljr@y-clouds.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:7004
// @BasePath /v1
func echoRoutes(ctx context.Context, port string, h *api.Handler) error {
	e := echo.New()
	e.HideBanner = true
	h.Register(e)

	if port == "" {
		port = "1324"
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Costsim server starting on :%s", port)
		errCh <- e.Start(":" + port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("Costsim server shutting down")
	return e.Shutdown(shutdown)
}
