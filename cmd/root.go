package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/microlab-cli/internal/config"
	"github.com/KaramelBytes/microlab-cli/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "microlab",
	Short: "microlab: culture and antibiogram analytics from lab exports",
	Long: `microlab loads a microbiology culture export (CSV, TSV, XLSX or SQLite) and reports
organism prevalence, antibiotic sensitivity, resistance mechanisms and monthly
sensitivity trends over any combination of month, material, location and organism filters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.microlab/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Default()
	}
	cfg = c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if debug {
		level = "debug"
	}
	logger.Init(level)
	logger.Debug("config loaded (format=%s, top_n=%d)", cfg.OutputFormat, cfg.TopN)
}
