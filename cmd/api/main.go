package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"noteful/internal/config"
	"noteful/internal/database"
	"noteful/internal/database/seed"
	"noteful/internal/logger"
	"noteful/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "noteful",
		Short:         "Notes, folders and tags over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "Environment file to load")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply the schema and start the API server",
		RunE:  runServe,
	}
	serveCmd.Flags().Int("port", 0, "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema and exit",
		RunE:  runMigrate,
	})

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the seed document",
		RunE:  runSeed,
	}
	seedCmd.Flags().String("seed-file", "", "YAML seed document (defaults to the built-in fixtures)")
	rootCmd.AddCommand(seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func load(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogPretty), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := load(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}

	if err := database.Migrate(cfg.DB.DSN()); err != nil {
		return err
	}
	db, err := database.New(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := server.New(cfg, db, log)
	srv.RegisterFiberRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("listening")
		errCh <- srv.Listen(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()
	if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exiting")
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := load(cmd)
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DB.DSN()); err != nil {
		return err
	}
	log.Info().Msg("schema is up to date")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := load(cmd)
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DB.DSN()); err != nil {
		return err
	}
	db, err := database.New(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	r := seed.Default()
	source := "built-in fixtures"
	if path, _ := cmd.Flags().GetString("seed-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("error opening seed file: %w", err)
		}
		defer f.Close()
		r, source = f, path
	}

	if err := seed.Load(cmd.Context(), db.DB(), r); err != nil {
		return err
	}
	log.Info().Str("source", source).Msg("database seeded")
	return nil
}
