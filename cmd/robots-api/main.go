// @title         Robots API
// @version       0.1.0
// @description   CRUD over robots backed by postgres

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"robots/internal/core/version"
	"robots/internal/modkit/repokit"
	"robots/internal/platform/config"
	"robots/internal/platform/logger"
	phttp "robots/internal/platform/net/http"
	"robots/internal/platform/store"

	"robots/internal/services/api"
	robotsrepo "robots/internal/services/robots/repo"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "robots-api",
		Short:         "Robots CRUD service",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			// real env wins over the file; a missing default .env is fine
			if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			logger.Init(logger.FromEnv())
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before config")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context()) },
	}
	root.RunE = serve.RunE

	root.AddCommand(
		serve,
		&cobra.Command{
			Use:   "schema",
			Short: "Print the robots table DDL",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprint(cmd.OutOrStdout(), robotsrepo.Schema)
				return err
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the robots schema and exit",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runMigrate(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "check",
			Short: "Verify postgres is reachable",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runCheck(cmd.Context()) },
		},
	)
	return root
}

// openStore reads ROBOTS_PGSQL_* and opens the pool
func openStore(ctx context.Context) (*store.Store, error) {
	pgCfg := config.New().Prefix("ROBOTS_PGSQL_")
	return store.Open(ctx,
		store.Config{
			AppName: version.Service,
			PG:      store.PGFromConf(pgCfg),
		},
		store.WithLogger(*logger.Named("store")),
	)
}

func closeStore(st *store.Store) {
	if err := st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close store")
	}
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := logger.Get()
	root := config.New()
	apiCfg := root.Prefix("ROBOTS_API_")

	st, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer closeStore(st)

	if err := ready(ctx, st); err != nil {
		return err
	}
	if apiCfg.MayBool("APPLY_SCHEMA", true) {
		if err := robotsrepo.EnsureSchema(ctx, st.PG); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	// http server (reads ROBOTS_API_PORT / ROBOTS_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	if err := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         *l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	}); err != nil {
		return err
	}

	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Msg("robots api starting")
	return srv.Run(ctx)
}

func runMigrate(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, time.Minute)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer closeStore(st)

	if err := robotsrepo.EnsureSchema(ctx, st.PG); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Get().Info().Msg("schema applied")
	return nil
}

func runCheck(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	st, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer closeStore(st)

	if err := ready(ctx, st); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

// ready checks the store answers before anything is served or reported
func ready(ctx context.Context, g repokit.Guarder) error {
	if err := repokit.Guard(ctx, g); err != nil {
		return errors.Join(errors.New("postgres not ready"), err)
	}
	return nil
}
