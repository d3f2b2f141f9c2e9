package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/it407/it-assets/internal/core/config"
	"github.com/it407/it-assets/internal/core/container"
	"github.com/it407/it-assets/internal/core/logger"
	"github.com/it407/it-assets/internal/core/routes"
	"github.com/it407/it-assets/internal/database"
	"github.com/it407/it-assets/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.NewLogger(cfg.LogLevel)
		defer log.Sync()

		return serve(cmd.Context(), cfg, log)
	},
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies the SQL migrations of the postgres table store. The server runs them on start as well.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")
		if err := database.RunMigrations(os.Getenv("DATABASE_URL"), migrationDir, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	app, err := container.NewAppContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	middleware.SetStore(cfg.StoreDriver)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		middleware.RecoveryMiddleware(log),
		middleware.RequestLogger(log.Named("http")),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
	)

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, app)
	routes.RegisterProtectedRoutes(router, app)

	server := &http.Server{
		Addr:              cfg.AppHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", cfg.AppHost), zap.String("store", cfg.StoreDriver))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		middleware.UpdateHealthStatus("shutting_down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "itassets",
		Short: "IT asset and license tracker",
	}
	MigrateCmd.Flags().String("dir", "migrations", "Directory containing the migration files")
	rootCmd.AddCommand(ServeCmd, MigrateCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
