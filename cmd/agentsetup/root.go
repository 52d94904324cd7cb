package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/suhani2210/agentsetup/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "agentsetup",
	Short: "agentsetup provisions a Trading-Agents development environment",
	Long: `agentsetup prepares a local checkout of the Trading-Agents application:
it creates a Python virtual environment, installs the declared dependencies,
materializes package markers, configuration and working directories, and
reports the remaining manual steps.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", ".", "Invocation root (the application checkout)")
	rootCmd.PersistentFlags().String("config", "setup.yaml", "Optional provisioner config file, relative to --dir")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// newLogger builds the console logger from the --log-level flag.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}

	return zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
}

// loadSetup resolves the shared --dir/--config/--log-level plumbing.
func loadSetup(cmd *cobra.Command) (root string, cfg config.Config, log zerolog.Logger, err error) {
	root, _ = cmd.Flags().GetString("dir")
	cfgPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	log = newLogger(level)

	cfg, err = config.Load(filepath.Join(root, cfgPath))

	return root, cfg, log, err
}
