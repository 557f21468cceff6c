package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
	"github.com/awantoch/kwanixflow/utils"
)

var (
	exit       = os.Exit
	configPath string
	debug      bool
)

// NewRootCmd creates the root 'flow' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flow",
		Short: constants.AppTitle + ": build flow diagrams and export their preview",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to flow config (JSON or TOML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file, if present
		_ = godotenv.Load()
		if debug {
			utils.SetMode("debug")
		}
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newPreviewCmd(),
		newGraphCmd(),
		newExportCmd(),
		newExtensionsCmd(),
		newMCPCmd(),
	)
	return rootCmd
}

// loadConfig reads the --config file (or $FLOW_CONFIG), then applies the
// environment overrides and --debug.
func loadConfig() (*config.Config, error) {
	path := configPath
	if env := os.Getenv(constants.EnvConfigPath); env != "" && path == config.DefaultConfigPath {
		path = env
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, utils.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	if debug {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// fail logs err and exits non-zero.
func fail(format string, v ...any) {
	utils.Error(format, v...)
	exit(1)
}
