// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chart-splitter/internal/classify"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the classification rule table in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := classify.New(classify.DefaultOptions(), nil).Rules()
		out := cmd.OutOrStdout()

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			data, err := yaml.Marshal(rules)
			if err != nil {
				return fmt.Errorf("marshaling rules: %w", err)
			}
			_, err = out.Write(data)
			return err
		}

		fmt.Fprintf(out, "%-4s  %-20s  %-15s  %s\n", "Prio", "Name", "Tag", "Pattern")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, r := range rules {
			fmt.Fprintf(out, "%-4d  %-20s  %-15s  %s\n", r.Priority, r.Name, r.Tag, r.Pattern)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().Bool("yaml", false, "print the rule table as YAML")

	rootCmd.AddCommand(rulesCmd)
}
