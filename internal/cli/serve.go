package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/abeba/internal/api"
	"github.com/terraincognita07/abeba/internal/config"
	"github.com/terraincognita07/abeba/internal/db"
	"github.com/terraincognita07/abeba/internal/i18n"
	"github.com/terraincognita07/abeba/internal/logging"
	"github.com/terraincognita07/abeba/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder scheduler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := options.viper()
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logging.New(cfg.LogLevel, cfg.Environment, os.Stdout)
			for _, warning := range cfg.Warnings {
				log.Warn(warning)
			}
			time.Local = cfg.Location

			return runServer(cmd.Context(), cfg, log)
		},
	}
}

type server struct {
	app      *fiber.App
	services *api.Services
	close    func() error
}

// newServer opens the database and assembles the fiber app. The caller owns
// server.close.
func newServer(cfg *config.Config, log *logrus.Logger, accessLog io.Writer) (*server, error) {
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	// A nil interface, never a typed nil, keeps reminders disabled.
	var sender services.ReminderSender
	if cfg.TelegramBotToken != "" {
		telegram, err := services.NewTelegramSender(cfg.TelegramBotToken)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		sender = telegram
	}

	deps := api.NewServices(database, api.ServiceOptions{
		Location:          cfg.Location,
		HorizonMonths:     cfg.HorizonMonths,
		ReminderDaysAhead: cfg.ReminderDaysAhead,
		Sender:            sender,
		Logger:            log,
	})
	handler, err := api.NewHandler(deps, cfg.SecretKey, cfg.Location, i18nManager, cfg.CookieSecure, log)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Abeba",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: accessLog}))
	app.Use(compress.New())
	app.Use(api.RequestTimeout(api.DefaultRequestTimeout))
	app.Use(handler.LanguageMiddleware)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &server{app: app, services: deps, close: sqlDB.Close}, nil
}

func runServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	accessLog := log.WriterLevel(logrus.InfoLevel)
	defer func() { _ = accessLog.Close() }()

	srv, err := newServer(cfg, log, accessLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.close(); err != nil {
			log.WithError(err).Warn("database close failed")
		}
	}()

	lifecycleCtx, cancelLifecycle := context.WithCancel(ctx)
	defer cancelLifecycle()
	if err := srv.services.Reminders.Start(lifecycleCtx, cfg.ReminderCron); err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(lifecycleCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("abeba listening")
	if err := srv.app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
