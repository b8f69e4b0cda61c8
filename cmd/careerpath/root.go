package main

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/careerpath/internal/config"
	"github.com/amishk599/careerpath/internal/dataset"
	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
)

const defaultConfigPath = "careerpath.yaml"

var (
	cfgPath  string
	dataPath string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "Career path explorer: predict the next position from past career moves",
	Long: "careerpath mines association rules from employee career paths and predicts\n" +
		"the next position for a chosen sequence of positions, either from the rules\n" +
		"or from the distribution of paths sharing the same start.",
	// Default to `explore` so that `careerpath` with no args opens the TUI.
	RunE:         runExplore,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CAREERPATH_CONFIG env var or ./careerpath.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "career path CSV/TSV file (default: data.path from config, else the bundled dataset)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	addThresholdFlags(rootCmd)
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > CAREERPATH_CONFIG env var > "./careerpath.yaml".
// The default file is optional; built-in defaults apply when it is absent.
func loadConfig(path string) (*config.Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	explicit := true
	if path == "" {
		if env := os.Getenv("CAREERPATH_CONFIG"); env != "" {
			path = env
		} else {
			path = defaultConfigPath
			explicit = false
		}
	}
	cfg, err := config.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	// Reports go to stdout; keep logs out of the way.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// session is what every command works on: the validated config, the loaded
// table and its extracted paths, and the rule cache bound to them.
type session struct {
	cfg   *config.Config
	table *dataset.Table
	ds    *model.Dataset
	cache *miner.Cache
}

// openSession loads config, applies command-line overrides and loads the
// dataset. Errors are logged and terminate the process.
func openSession(cmd *cobra.Command, logger *slog.Logger) *session {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		logger.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	table, ds, err := dataset.Open(cfg.Data.Path, dataset.Options{StepColumns: cfg.Data.StepColumns})
	if err != nil {
		if model.IsDataFormat(err) {
			logger.Error("no usable career path data", "error", err)
		} else {
			logger.Error("failed to load dataset", "error", err)
		}
		os.Exit(1)
	}
	logger.Debug("dataset loaded",
		"source", ds.Source,
		"encoding", table.Encoding,
		"delimiter", string(table.Delimiter),
		"steps", table.StepNames(),
		"paths", len(ds.Paths),
		"positions", len(ds.Positions),
	)

	return &session{cfg: cfg, table: table, ds: ds, cache: miner.NewCache(logger)}
}

var (
	minSupport    float64
	minConfidence float64
	strategy      string
)

func addThresholdFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Float64Var(&minSupport, "min-support", config.DefaultMinSupport, "minimum itemset support, 0 to 0.1")
	cmd.PersistentFlags().Float64Var(&minConfidence, "min-confidence", config.DefaultMinConfidence, "minimum rule confidence, 0 to 1")
	cmd.PersistentFlags().StringVar(&strategy, "strategy", string(model.StrategyRules), "prediction strategy: rules or prefix")
}

// applyOverrides copies explicitly set flags over the config and revalidates it.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if flags.Changed("min-support") {
		cfg.Mining.MinSupport = minSupport
	}
	if flags.Changed("min-confidence") {
		cfg.Mining.MinConfidence = minConfidence
	}
	if flags.Changed("strategy") {
		cfg.Prediction.Strategy = model.Strategy(strategy)
	}
	return config.Validate(cfg)
}
