package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"guardias/core/loader"
	"guardias/core/logger"
	"guardias/core/middleware/auth"
	"guardias/core/middleware/cors"
	"guardias/core/middleware/rayid"
	"guardias/core/reconcile"
	"guardias/feature/docs"
	"guardias/feature/health"
	"guardias/feature/panel"
	"guardias/feature/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "guardias/docs/swagger"
)

// @title Guardias API
// @version 1.0
// @description Absence and substitute coverage panel for a secondary school.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the panel server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap()
		if err != nil {
			return err
		}
		logg := d.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app, err := newApp(d)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", d.cfg.Server.Port))
			if err := app.Listen(d.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newApp builds the Fiber app with middleware and every feature loaded.
func newApp(d *deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	srcs := d.sources()

	mgr := loader.NewManager(d.logger)
	mgr.Register(health.NewFeature(d.db, d.store, d.cfg.Storage.Bucket, d.snapshots(), d.logger))
	mgr.Register(docs.NewFeature("guardias", version, srcs.Names()))
	mgr.Register(panel.NewFeature(srcs, reconcile.NewMemoryStore(), d.logger))
	mgr.Register(registry.NewFeature(d.db, d.logger))

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(logger.Middleware(d.logger))
	app.Use(cors.New(d.cfg.Server))

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		ApiKey: d.cfg.Server.ApiKey,
		Skip:   []string{"/api/v1/health", "/api/v1/docs"},
	}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
