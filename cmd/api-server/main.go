package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hackgods/healthcare-plus/internal/api"
	"github.com/hackgods/healthcare-plus/internal/audit"
	"github.com/hackgods/healthcare-plus/internal/calculator"
	"github.com/hackgods/healthcare-plus/internal/clinic"
	"github.com/hackgods/healthcare-plus/internal/config"
	"github.com/hackgods/healthcare-plus/internal/db"
	redisclient "github.com/hackgods/healthcare-plus/internal/redis"
	"github.com/hackgods/healthcare-plus/internal/session"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "api-server",
		Short:        "HealthCare Plus API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(calcCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the session sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServer(cfg)
		},
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.LogLevel)
}

func runServer(cfg config.Config) error {
	logger := newLogger(cfg)
	logger.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sink audit.Sink = audit.NewLogSink(logger)
	var pgPool *pgxpool.Pool
	if cfg.PostgresEnabled() {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN, 4)
		cancelPg()
		if err != nil {
			return fmt.Errorf("postgres connection: %w", err)
		}
		defer pool.Close()

		pgSink := audit.NewPgSink(pool)
		if err := pgSink.EnsureSchema(rootCtx); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
		pgPool = pool
		sink = pgSink
		logger.Info().Msg("connected to Postgres, session events go to session_event_logs")
	}

	opts := []session.Option{
		session.WithSink(sink),
		session.WithLogger(logger.With().Str("component", "session").Logger()),
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		client, err := redisclient.NewRedisClient(rootCtx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return fmt.Errorf("redis connection: %w", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("error closing redis")
			}
		}()
		rdb = client
		opts = append(opts, session.WithLocker(redisclient.NewSessionLocker(client, cfg.LockTTL)))
		logger.Info().Dur("lock_ttl", cfg.LockTTL).Msg("connected to Redis, session turns use the Redis lock")
	}

	sessions := session.NewManager(cfg.SessionTTL, opts...)
	svc := clinic.NewService(sessions, sink, logger.With().Str("component", "clinic").Logger())

	go func() {
		if err := sessions.Run(rootCtx, cfg.SweepInterval); err != nil {
			logger.Error().Err(err).Msg("session sweeper stopped")
		}
	}()

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterConfig{
			Clinic:   svc,
			Sessions: sessions,
			PgPool:   pgPool,
			Redis:    rdb,
			Logger:   logger,
			Env:      cfg.Env,
			Version:  cfg.Version,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-rootCtx.Done():
	}

	logger.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Int("active_sessions", sessions.Len()).Msg("server stopped")
	return nil
}

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a health calculator from the command line",
	}

	bmiCmd := &cobra.Command{
		Use:   "bmi",
		Short: "Body mass index and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, _ := cmd.Flags().GetFloat64("weight")
			height, _ := cmd.Flags().GetFloat64("height")

			res, err := calculator.BMI(weight, height)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.1f (%s)\n", res.BMI, res.Category)
			return nil
		},
	}
	bmiCmd.Flags().Float64("weight", 70, "Weight in kg")
	bmiCmd.Flags().Float64("height", 170, "Height in cm")

	bmrCmd := &cobra.Command{
		Use:   "bmr",
		Short: "Basal metabolic rate and daily calorie needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			gender, _ := cmd.Flags().GetString("gender")
			weight, _ := cmd.Flags().GetFloat64("weight")
			height, _ := cmd.Flags().GetFloat64("height")
			age, _ := cmd.Flags().GetInt("age")

			g, err := calculator.ParseGender(gender)
			if err != nil {
				return err
			}
			bmr, err := calculator.BMR(g, weight, height, age)
			if err != nil {
				return err
			}
			needs, err := calculator.CalorieNeeds(bmr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BMR: %.0f calories/day\n", bmr)
			for _, n := range needs {
				fmt.Fprintf(out, "  %-18s x%-6.3f %6.0f\n", n.Level, n.Multiplier, n.Calories)
			}
			return nil
		},
	}
	bmrCmd.Flags().String("gender", "Male", "Male or Female")
	bmrCmd.Flags().Float64("weight", 70, "Weight in kg")
	bmrCmd.Flags().Float64("height", 170, "Height in cm")
	bmrCmd.Flags().Int("age", 30, "Age in years")

	cmd.AddCommand(bmiCmd, bmrCmd)
	return cmd
}
