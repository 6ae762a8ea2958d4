package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"germination_tracker/config"
	"germination_tracker/library"
)

var (
	// Global flags
	verbose bool
	port    int

	log zerolog.Logger
	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "germination",
	Short: "Track seed germination across a plant library",
	Long: `germination keeps a library of sown plants with their germination and
death counts, organized into sections by a stored sort option.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		log = newLogger(cfg, verbose)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides GERMINATION_PORT)")
	rootCmd.AddCommand(serveCmd, listCmd, sortCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.AppConfig, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("app", cfg.AppName).Logger()
}

func runServe(cmd *cobra.Command, args []string) error {
	appCtx, appCancel := context.WithCancel(cmd.Context())
	defer appCancel()

	setupShutdownListener(appCancel)

	gts, err := NewGTS(appCtx, WithConfig(cfg), WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer gts.Close()
	gts.StartChangeLog(appCtx)

	app := newApp(gts)

	go func() {
		<-appCtx.Done()
		log.Info().Msg("shutting down HTTP server")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Environment).Msg("listening")
	return app.Listen(cfg.Addr(), fiber.ListenConfig{DisableStartupMessage: true})
}

func setupShutdownListener(appCancel context.CancelFunc) {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Info().Msg("shutdown signal received")
		appCancel()
	}()
}

func newApp(gts *GTS) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      gts.Config().AppName,
		ErrorHandler: library.ErrorHandler,
	})
	mapRoutes(app, gts)
	return app
}

func mapRoutes(app *fiber.App, gts *GTS) {
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	libraryHandler := library.NewLibraryHandler(gts.Library(), gts.log)

	library.RegisterLibraryRoutes(api, libraryHandler)
}
