package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgo/hollow/seed/internal/config"
	"github.com/forgo/hollow/seed/internal/database"
	"github.com/forgo/hollow/seed/internal/service"
)

// rootOptions holds flag values shared by every command that touches the database
type rootOptions struct {
	configPath string
	backend    string
	dbName     string
	variant    string
	lang       string
	logLevel   string
	logFormat  string
	verify     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hollow-seed",
		Short: "Load the hollow test fixtures into a database",
		Long: `Drops the fixture collections of the target database, inserts a fresh
set of users, boxes, messages and avatar images, and prints the resulting
document counts. Every run replaces the previous one's data.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "TOML config file (default $SEED_CONFIG)")
	pf.StringVar(&opts.backend, "backend", "", "database backend: mongo, surreal, sqlite or memory")
	pf.StringVar(&opts.dbName, "db", "", "logical database name")
	pf.StringVar(&opts.variant, "variant", "", "fixture variant: avatars or basic")
	pf.StringVar(&opts.lang, "lang", langZH, "summary language: zh or en")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "verify the fixtures after loading")

	cmd.AddCommand(
		newVerifyCmd(opts),
		newHashPasswordCmd(),
	)

	return cmd
}

// loadConfig reads the configuration and applies flag overrides on top
func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = os.Getenv("SEED_CONFIG")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.backend != "" {
		cfg.Database.Backend = opts.backend
	}
	if opts.dbName != "" {
		cfg.Database.Name = opts.dbName
	}
	if opts.variant != "" {
		cfg.Seed.Variant = opts.variant
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is everything a database command needs, set up from flags and config
type session struct {
	store  database.Store
	seeder *service.SeederService
	labels summaryLabels
	logger *slog.Logger
}

// openSession loads configuration, configures logging and connects to the
// store. The caller must Close the returned session.
func openSession(ctx context.Context, opts *rootOptions, stderr io.Writer) (*session, error) {
	labels, err := labelsFor(opts.lang)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	variant, err := cfg.Variant()
	if err != nil {
		return nil, err
	}

	storeCfg := cfg.StoreConfig()
	store, err := database.New(storeCfg)
	if err != nil {
		return nil, err
	}
	if err := store.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", database.Describe(storeCfg), err)
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("pinging %s: %w", database.Describe(storeCfg), err)
	}
	logger.Info("connected to database", slog.String("target", database.Describe(storeCfg)))

	seeder, err := service.NewSeederService(service.SeederConfig{
		Store:   store,
		Variant: variant,
		Logger:  logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{
		store:  store,
		seeder: seeder,
		labels: labels,
		logger: logger,
	}, nil
}

// Close releases the store connection
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing database", slog.String("error", err.Error()))
	}
}

func runLoad(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) error {
	sess, err := openSession(ctx, opts, stderr)
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := sess.seeder.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}
	printSummary(stdout, sess.labels, result.Counts)

	if opts.verify {
		if err := sess.seeder.Verify(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, sess.labels.verified)
	}
	return nil
}
