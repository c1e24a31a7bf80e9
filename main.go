package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postfeed/app/client"
	"postfeed/app/config"
	"postfeed/app/fixtures"
	"postfeed/app/logging"
	"postfeed/app/metrics"
	"postfeed/app/repositories"
	"postfeed/app/routes"
	"postfeed/app/server"
	"postfeed/app/services"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const CliVersion = "1.0.0"

// Mockable in tests.
var exit = os.Exit

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	RealMain()
}

// RealMain runs the CLI with os.Args and exits with its status.
func RealMain() {
	exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "postfeed",
		Short: "postfeed - posts enricher and local posts API",
		Long: `postfeed fetches posts from the posts API, loads every post's author and
comments concurrently and prints a report.

It also ships the local posts API (serve) and a fixture loader (seed).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "Config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(a.reportCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(a.seedCmd())
	root.AddCommand(versionCmd())
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Skips config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postfeed version %s\n", CliVersion)
		},
	}
}

func (a *app) reportCmd() *cobra.Command {
	var (
		baseURL        string
		timeout        time.Duration
		maxConcurrency int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch and enrich all posts, then print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				a.cfg.API.BaseURL = baseURL
			}
			if flags.Changed("timeout") {
				a.cfg.Report.Timeout = timeout.String()
			}
			if flags.Changed("max-concurrency") {
				a.cfg.Report.MaxConcurrency = maxConcurrency
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.runReport(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Posts API base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Overall deadline of the run (0 = none)")
	cmd.Flags().IntVar(&maxConcurrency, "max-concurrency", 0, "Maximum posts enriched at once (0 = unlimited)")
	return cmd
}

func (a *app) runReport(ctx context.Context, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if d := a.cfg.GetReportTimeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	logger := a.logger.With(zap.String("run_id", uuid.NewString()))

	c := client.New(client.Options{
		BaseURL:        a.cfg.API.BaseURL,
		ConnectTimeout: a.cfg.GetConnectTimeout(),
		RequestTimeout: a.cfg.GetRequestTimeout(),
		LogBodies:      a.cfg.Logging.LogBodies,
		Logger:         logger,
	})
	enricher := services.NewEnricher(c,
		services.WithLogger(logger),
		services.WithMaxConcurrency(a.cfg.Report.MaxConcurrency),
	)

	start := time.Now()
	enriched, err := enricher.Run(ctx)
	if err != nil {
		logger.Error("report failed", zap.Error(err))
		return fmt.Errorf("report failed: %w", err)
	}
	logger.Info("report complete", zap.Int("posts", len(enriched)), zap.Duration("took", time.Since(start)))

	return services.WriteReport(out, enriched)
}

func (a *app) serveCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local posts API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				a.cfg.Server.DBPath = dbPath
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			store, err := repositories.Open(a.cfg.Server.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			catalog := services.NewCatalogService(store.Posts(), store.Authors(), store.Comments())
			router := routes.SetupRoutes(catalog, a.logger, metrics.NewCollector())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, a.cfg.Server.Addr, router, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "Badger data directory")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	var (
		dbPath string
		reset  bool
	)

	cmd := &cobra.Command{
		Use:   "seed [fixture.yaml]",
		Short: "Load fixtures into the local posts API store",
		Long: `Load authors, posts and comments from a YAML fixture file into the store.
Without a file the built-in demo dataset is loaded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				a.cfg.Server.DBPath = dbPath
			}

			var (
				dataset services.Dataset
				err     error
			)
			if len(args) == 1 {
				dataset, err = fixtures.Load(args[0])
			} else {
				dataset, err = fixtures.Demo()
			}
			if err != nil {
				return err
			}

			store, err := repositories.Open(a.cfg.Server.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := seedStore(store, dataset, reset)
			if err != nil {
				return err
			}
			a.logger.Info("seed complete",
				zap.String("db", a.cfg.Server.DBPath),
				zap.Int("authors", stats.Authors),
				zap.Int("posts", stats.Posts),
				zap.Int("comments", stats.Comments))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d authors, %d posts, %d comments\n",
				stats.Authors, stats.Posts, stats.Comments)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Badger data directory")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the store before seeding")
	return cmd
}

func seedStore(store *repositories.Store, dataset services.Dataset, reset bool) (services.SeedStats, error) {
	if reset {
		if err := store.Clear(); err != nil {
			return services.SeedStats{}, err
		}
	}
	catalog := services.NewCatalogService(store.Posts(), store.Authors(), store.Comments())
	return catalog.Seed(dataset)
}
