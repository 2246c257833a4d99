// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/chart-splitter/pkg/types"
)

// MarshalReport encodes the report in the format named by ext: ".json" for
// indented JSON, ".yaml" or ".yml" for YAML.
func MarshalReport(ext string, r types.RunReport) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (want .yaml, .yml or .json)", ext)
	}
}

// WriteReport writes the report to path, choosing the format from its
// extension.
func WriteReport(path string, r types.RunReport) error {
	data, err := MarshalReport(filepath.Ext(path), r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
