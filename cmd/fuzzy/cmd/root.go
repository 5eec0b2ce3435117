package cmd

import (
	"fmt"
	"os"

	"github.com/corey/fuzzy/internal/adapters/bbolt"
	"github.com/corey/fuzzy/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool

	paths  *app.Paths
	cfg    *app.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fuzzy",
	Short: "Fuzzy-inference rule evaluator",
	Long:  "Evaluate linguistic rule sets over crisp inputs with centroid or mean-of-maxima defuzzification.",

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		paths = app.NewPaths(projectRoot())
		c, err := app.LoadConfig(paths.Config, app.DefaultConfig(paths))
		if err != nil {
			return err
		}
		cfg = c

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		l, err := app.NewLogger(level, cfg.LogFile)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// openStore opens the bbolt store at the configured path, creating .fuzzy/
// when the default location is used.
func openStore() (*bbolt.Store, error) {
	if cfg.DBPath == paths.DB {
		if err := paths.EnsureDirs(); err != nil {
			return nil, err
		}
	}
	store, err := bbolt.NewStore(cfg.DBPath)
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("%w\n%s", err, diagnoseDBLock(cfg.DBPath))
		}
		return nil, err
	}
	return store, nil
}

// newService builds a service with the configured defaults. The store is
// opened only when withStore is set.
func newService(withStore bool) (*app.Service, error) {
	opts := app.Options{
		Logger:  logger,
		Record:  cfg.Record,
		Workers: cfg.Workers,
	}
	if withStore {
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		opts.Store = store
	}
	return app.NewService(opts), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}
