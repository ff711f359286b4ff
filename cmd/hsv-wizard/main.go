package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/hsv-wizard/internal/config"
	"github.com/ironsheep/hsv-wizard/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "hsv-wizard",
	Short: "HSV thresholding, calibration and measurement for images",
	Long: `hsv-wizard selects the pixels of an image by hue, saturation and value,
calibrates pixels to physical units, measures lengths and places scale bars.

Run "hsv-wizard serve" to drive a session over MCP (JSON-RPC on stdin/stdout),
or "hsv-wizard mask" to threshold a file in one shot.

Environment variables:
  HSV_WIZARD_CONFIG=path        Config file (JSON)
  HSV_WIZARD_LOG_LEVEL=debug    Override the log level`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// setup loads the configuration and builds the logger. Logs go to stderr;
// stdout carries protocol traffic and command output.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, logging.FromConfig(cfg), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
