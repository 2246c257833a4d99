// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// bindFlag binds a viper key to a flag. A missing flag is a programming
// error.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func classifyConfig() types.ClassifyConfig {
	return types.ClassifyConfig{
		MaxTitleLength: viper.GetInt("max_title_length"),
		Footers:        viper.GetStringSlice("footers"),
	}
}

func splitConfig() types.SplitConfig {
	return types.SplitConfig{
		ClassifyConfig: classifyConfig(),
		OutputRoot:     viper.GetString("output_root"),
		DryRun:         viper.GetBool("dry_run"),
		ReportPath:     viper.GetString("report"),
	}
}

func catalogConfig() types.CatalogConfig {
	return types.CatalogConfig{
		Path:       viper.GetString("catalog.path"),
		MaxResults: viper.GetInt("catalog.max_results"),
	}
}
