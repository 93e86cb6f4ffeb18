package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theatreops/theatreops/internal/config"
	"github.com/theatreops/theatreops/internal/domain/catalog"
	"github.com/theatreops/theatreops/internal/domain/matching"
	"github.com/theatreops/theatreops/internal/domain/schedule"
	"github.com/theatreops/theatreops/internal/domain/theatre"
	"github.com/theatreops/theatreops/internal/platform/db"
	"github.com/theatreops/theatreops/internal/platform/metrics"
	"github.com/theatreops/theatreops/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "theatre-server",
		Short: "Operating theatre scheduling engine",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(generateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set; nothing to migrate")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set; nothing to report")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo staff and procedure catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.UseMemoryStore() {
				return fmt.Errorf("DATABASE_URL is not set; the in-memory store is seeded at startup with SEED_DEMO_DATA=true")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := catalog.NewService(catalog.NewStaffRepoPG(pool), catalog.NewProcedureRepoPG(pool))
			if err := catalog.Seed(ctx, svc); err != nil {
				return fmt.Errorf("seed catalogue: %w", err)
			}
			fmt.Println("Catalogue seeded.")
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schedule for a date range and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")
			seed, _ := cmd.Flags().GetInt64("seed")

			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, cleanup, err := buildApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			cases, skipped, err := app.schedule.GenerateSchedule(ctx, from, to, seed)
			if err != nil {
				return err
			}

			fmt.Printf("Generated %d case(s).\n", len(cases))
			for _, e := range skipped {
				fmt.Printf("skipped: %v\n", e)
			}
			return nil
		},
	}
	cmd.Flags().String("from", "", "First date to schedule (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Last date to schedule (YYYY-MM-DD)")
	cmd.Flags().Int64("seed", time.Now().UnixNano(), "Random seed; the same seed reproduces the same schedule")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

// app bundles the wired services so serve and generate share one
// construction path. pool is nil when running on the in-memory store.
type app struct {
	catalog  *catalog.Service
	schedule *schedule.Service
	matching *matching.Service
	registry *theatre.Registry
	metrics  *metrics.Collector
	pool     *pgxpool.Pool
}

func buildApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, func(), error) {
	var (
		staffRepo catalog.StaffRepository
		procRepo  catalog.ProcedureRepository
		caseRepo  schedule.Repository
		pgPool    *pgxpool.Pool
		cleanup   = func() {}
	)

	if cfg.UseMemoryStore() {
		logger.Info().Msg("DATABASE_URL not set; using in-memory store")
		staffRepo = catalog.NewStaffRepoMemory()
		procRepo = catalog.NewProcedureRepoMemory()
		caseRepo = schedule.NewRepoMemory()
	} else {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		pgPool = pool
		cleanup = pool.Close
		logger.Info().Msg("connected to database")
		staffRepo = catalog.NewStaffRepoPG(pool)
		procRepo = catalog.NewProcedureRepoPG(pool)
		caseRepo = schedule.NewRepoPG(pool)
	}

	registry := theatre.DefaultRegistry()
	if cfg.TheatreRegistry != "" {
		reg, err := theatre.LoadRegistry(cfg.TheatreRegistry)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("load theatre registry: %w", err)
		}
		registry = reg
	}
	logger.Info().Int("theatres", registry.Len()).Msg("theatre registry loaded")

	dayStart, _ := config.ParseClock(cfg.DayStart)
	dayEnd, _ := config.ParseClock(cfg.DayEnd)
	allocCfg := schedule.DefaultAllocatorConfig()
	allocCfg.DayStartMinutes = dayStart
	allocCfg.DayEndMinutes = dayEnd
	allocCfg.TurnoverMinutes = cfg.TurnoverMinutes

	collector := metrics.NewCollector("theatreops")

	catalogSvc := catalog.NewService(staffRepo, procRepo)
	filterEngine := schedule.NewEngine(time.Duration(cfg.FilterBudgetMS)*time.Millisecond, logger, collector)
	scheduleSvc := schedule.NewService(
		caseRepo,
		schedule.NewOrderManager(caseRepo),
		filterEngine,
		schedule.NewAllocator(allocCfg),
		registry,
		catalogSvc,
		catalogSvc,
		logger,
		collector,
	)
	matchingSvc := matching.NewService(catalogSvc)

	if cfg.SeedDemoData && cfg.UseMemoryStore() {
		if err := catalog.Seed(ctx, catalogSvc); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("seed demo catalogue: %w", err)
		}
		logger.Info().Msg("demo catalogue seeded")
	}

	return &app{
		catalog:  catalogSvc,
		schedule: scheduleSvc,
		matching: matchingSvc,
		registry: registry,
		metrics:  collector,
		pool:     pgPool,
	}, cleanup, nil
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	app, cleanup, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}
	defer cleanup()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// Health check and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if app.pool != nil {
		e.GET("/health/db", db.HealthHandler(app.pool))
	}
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// API group
	apiV1 := e.Group("/api/v1")

	catalog.NewHandler(app.catalog).RegisterRoutes(apiV1)
	schedule.NewHandler(app.schedule).RegisterRoutes(apiV1)
	matching.NewHandler(app.matching).RegisterRoutes(apiV1)

	apiV1.GET("/theatres", func(c echo.Context) error {
		return c.JSON(http.StatusOK, app.registry.Theatres())
	})

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}

	logger.Info().Msg("server stopped cleanly")
	return nil
}
