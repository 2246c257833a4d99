// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chart-splitter/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [file.txt|-]",
	Short: "Classify extracted page text and print the chart title",
	Long: `Classify runs the chart classifier over raw page text, read from a file
or from standard input when the argument is "-" or omitted, and prints the
title the page would be exported under.

Use it to check how a page's text is named without splitting a document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	c := classify.New(classify.OptionsFrom(classifyConfig()), slog.Default())
	res, ok := c.Classify(text)
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, "no title found (page would be exported as Untitled_Page_<n>)")
		return nil
	}

	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asYAML {
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling classification: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	fmt.Fprintf(out, "title:    %s\n", res.Title)
	fmt.Fprintf(out, "category: %s\n", res.Category)
	fmt.Fprintf(out, "source:   %s\n", res.Source)
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

func init() {
	classifyCmd.Flags().Bool("yaml", false, "print the full classification as YAML")

	rootCmd.AddCommand(classifyCmd)
}
