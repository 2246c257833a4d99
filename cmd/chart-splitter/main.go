// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chart-splitter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chart-splitter/internal/sanitize"
	"github.com/pdiddy/chart-splitter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the chart-splitter CLI.
var rootCmd = &cobra.Command{
	Use:   "chart-splitter",
	Short: "Split aviation chart PDFs into one named file per chart",
	Long: `chart-splitter takes a multi-page aviation chart PDF (typically an
airport's full chart set) and writes every page to its own PDF, named after
the chart it contains: STAR and SID procedures, approaches, ground charts,
communications pages, and administrative pages.

Each page is read once, classified from its text, and exported in order.
Pages without a recognizable title get placeholder names so no page is lost.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configureLogging(viper.GetString("log_level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chart-splitter.yaml or ~/.config/chart-splitter/chart-splitter.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().Int("max-title-length", sanitize.DefaultMaxLength, "maximum length of a chart title")
	rootCmd.PersistentFlags().String("catalog", "", "SQLite run catalog (disabled when empty)")

	bindFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlag("max_title_length", rootCmd.PersistentFlags().Lookup("max-title-length"))
	bindFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))

	viper.SetDefault("footers", []string{types.DefaultFooter})
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chart-splitter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chart-splitter"))
		}
	}

	viper.SetEnvPrefix("CHART_SPLITTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
