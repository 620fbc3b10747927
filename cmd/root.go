package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/SameerRanjanJha/quick-eda-app/internal/config"
	"github.com/SameerRanjanJha/quick-eda-app/internal/progress"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired to config/viper)
	cfgFile string
	debug   bool
	quiet   bool

	// Loaded configuration
	cfg *cfgpkg.Global

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quickeda",
	Short: "Quick EDA: turn tabular files into PDF analysis reports",
	Long: `Quick EDA reads a CSV, TSV, TXT, or XLSX file, profiles every column, and
writes a formatted PDF report with summary statistics, missing values, and
top categorical values. Everything runs locally; no data leaves the machine.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.quickeda/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

func loadConfig() {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: warn and continue with defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{
			PageSize:         "letter",
			TopValues:        10,
			SampleRows:       5,
			Outliers:         true,
			OutlierThreshold: 3.5,
			Correlations:     true,
			CompressPDF:      true,
			PageNumbers:      true,
			HistoryLimit:     50,
		}
	}
	cfg = c
}

// stageReporter picks the progress style for the attached terminal: an
// in-place bar on a TTY, plain stage lines otherwise, nothing with --quiet.
func stageReporter() progress.Reporter {
	if quiet {
		return progress.Nop{}
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return progress.NewTerminal(os.Stderr)
	}
	return progress.NewPlain(os.Stderr)
}
