/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/logger"
	"scribe/internal/render"
)

var (
	cfgFile string
	output  string
	verbose bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scribe",
		Short: "Scribe turns football match data into recap articles.",
		Long: `Scribe fetches a fixture from API-Football, extracts teams and key
players, enriches them with team and player detail, runs a research pass
with Gemini and writes a recap article from the results.

Examples:
  scribe recap 1035037
  scribe inspect 1035037
  scribe fixtures --league 39 --date 2024-05-19
  scribe analyze 1035037 --kind turning-points
  scribe serve --port 8000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scribe.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", render.FormatText, "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(NewRecapCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewFixturesCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables and configures logging.
// API keys are checked by the commands that need them.
func initConfig() error {
	switch output {
	case render.FormatText, render.FormatJSON, render.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", render.ErrUnknownFormat, output)
	}

	cfg, err := config.Load(cfgFile, false)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	logging := config.GetLogging()
	level := logging.Level
	if verbose || config.IsDebugMode() {
		level = "debug"
	}
	logger.Configure(logger.Options{Level: level, Format: logging.Format})

	if cfg.App.ConfigFile != "" {
		logger.Debug("Using config file", "path", cfg.App.ConfigFile)
	}
	return nil
}
