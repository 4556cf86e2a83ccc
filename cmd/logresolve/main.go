package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danielpatrickdp/testlog-resolver/internal/batch"
	"github.com/danielpatrickdp/testlog-resolver/internal/config"
	"github.com/danielpatrickdp/testlog-resolver/internal/report"
	"github.com/danielpatrickdp/testlog-resolver/internal/scan"
	"github.com/danielpatrickdp/testlog-resolver/internal/textio"
	"github.com/danielpatrickdp/testlog-resolver/internal/watch"
)

var (
	// Global flags
	debug      bool
	configPath string

	// clean/watch flags
	recursive bool
	outputDir string
	suffix    string
	reportDB  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "logresolve",
	Version: "1.2.0",
	Short:   "Resolve PASS/FAIL markers in measurement logs",
	Long: `logresolve scans measurement log files for pending PASS/FAIL markers,
finds the acceptance criteria stated near each marked line, evaluates the
measured value against them, and rewrites each marker to PASS or FAIL.

Lines whose criteria cannot be located or whose value cannot be judged are
left untouched for manual review.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if debug {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// cleanCmd resolves markers in a file or directory.
var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Resolve pending markers and write processed copies",
	Long: `Reads the file (or every file in the directory) at path, resolves its
pending markers, and writes the result next to the input with a suffix
appended to the file stem. Files without pending markers are skipped.

Example:
  logresolve clean ./logs -r -o ./resolved --report runs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

// checkCmd reports whether a file still has pending markers.
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Exit 1 if the file contains pending markers",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// watchCmd resolves files as they appear in a directory.
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and resolve new files as they arrive",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func loadScanConfig() (scan.Config, config.FileConfig, error) {
	fc := config.Default()
	if configPath != "" {
		var err error
		fc, err = config.Load(configPath)
		if err != nil {
			return scan.Config{}, config.FileConfig{}, err
		}
	}
	return fc.ScanConfig(), fc, nil
}

func buildOptions() (batch.Options, *report.Store, error) {
	scanCfg, fc, err := loadScanConfig()
	if err != nil {
		return batch.Options{}, nil, err
	}
	opts := batch.Options{
		Recursive: recursive,
		OutputDir: outputDir,
		Suffix:    suffix,
		Scan:      scanCfg,
		Logger:    logger,
	}
	if opts.Suffix == "" {
		opts.Suffix = fc.Suffix
	}
	db := reportDB
	if db == "" {
		db = fc.ReportDB
	}
	var store *report.Store
	if db != "" {
		store, err = report.NewStore(db)
		if err != nil {
			return batch.Options{}, nil, fmt.Errorf("failed to open report store: %w", err)
		}
		opts.Report = store
	}
	return opts, store, nil
}

func runClean(cmd *cobra.Command, args []string) error {
	opts, store, err := buildOptions()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	runner := batch.NewRunner(opts)
	summary, _, err := runner.Run(args[0], "")
	if err != nil {
		return err
	}

	fmt.Printf("Files processed: %d (%d checked, %d skipped)\n",
		summary.FilesProcessed, summary.FilesChecked, summary.FilesSkipped)
	fmt.Printf("Markers resolved: %d passed, %d failed, %d left for review\n",
		summary.Passed, summary.Failed, summary.Unchanged)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	scanCfg, _, err := loadScanConfig()
	if err != nil {
		return err
	}
	lines, err := textio.ReadLines(args[0])
	if err != nil {
		return err
	}
	scanner := scan.NewScanner(scanCfg)
	if scanner.HasPendingMarkers(lines) {
		fmt.Printf("%s: pending markers found\n", args[0])
		os.Exit(1)
	}
	fmt.Printf("%s: no pending markers\n", args[0])
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, store, err := buildOptions()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewWatcher(args[0], opts)
	if err != nil {
		return err
	}
	logger.Info("watching directory", zap.String("dir", args[0]))
	return w.Start(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	cleanCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	cleanCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write processed files under this directory")
	cleanCmd.Flags().StringVar(&suffix, "suffix", "", "Suffix appended to output file stems (default \"_processed\")")
	cleanCmd.Flags().StringVar(&reportDB, "report", "", "Record resolutions in this SQLite database")

	watchCmd.Flags().StringVar(&suffix, "suffix", "", "Suffix appended to output file stems (default \"_processed\")")
	watchCmd.Flags().StringVar(&reportDB, "report", "", "Record resolutions in this SQLite database")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
