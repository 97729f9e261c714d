package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stock-reconciler/core/loader"
	"stock-reconciler/core/logger"
	"stock-reconciler/core/middleware/auth"
	"stock-reconciler/core/middleware/rayid"
	"stock-reconciler/core/storage"

	"stock-reconciler/feature/conciliation"
	"stock-reconciler/feature/integrity"
	"stock-reconciler/feature/warehouses"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stock-reconciler/docs/swagger"
)

// @title Stock Reconciler API
// @version 1.0
// @description Reconciles Velneo inventory stock against Tiendas store session exports.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock reconciler server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := loadRuntime()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		fallback, err := cfg.Reconcile.StoreMapping()
		if err != nil {
			logg.Fatal("Invalid RECONCILE_MAPPING", zap.Error(err))
		}

		// Optional: without a database the configured mapping is used read-only.
		db := connectOptional(cfg.Database, logg)

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		wh := warehouses.NewFeature(db, fallback, cfg.Reconcile.MappingCacheTTL(), logg)
		mgr.Register(wh)
		mgr.Register(conciliation.NewFeature(store, cfg.Storage.Bucket, cfg.Reconcile, wh.Service(), logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Reconcile, logg, db))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !cfg.Server.RequiresAuth() {
			logg.Warn("SERVER_API_KEY is empty, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next:   func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/swagger") },
		}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
