package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bhushanhacker007/solar-burji-app/internal/config"
	"github.com/bhushanhacker007/solar-burji-app/internal/database"
	"github.com/bhushanhacker007/solar-burji-app/internal/logging"
	"github.com/bhushanhacker007/solar-burji-app/internal/router"
	"github.com/bhushanhacker007/solar-burji-app/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "solar-burji-api",
	Short: "Sales, borrowings and solar readings ledger API",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		defer database.Close(db) //nolint:errcheck

		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return err
	}

	// setup router
	r, err := router.SetupRouter(cfg, db, log)
	if err != nil {
		_ = database.Close(db)
		return err
	}

	srv := server.New(cfg.Server, r, log)
	// the pool closes only after in-flight requests have drained
	srv.OnStop(func() error { return database.Close(db) })
	return srv.Run(ctx)
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	// ensure basic directories exist
	if cfg.Log.File != "" {
		if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
			return nil, nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("init database: %w", err)
	}
	return cfg, log, db, nil
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
