package types

// DefaultFooter is the recurring source-viewer watermark that never makes a
// useful title.
const DefaultFooter = "Printed from JeppView"

// ClassifyConfig holds settings for the classification stage.
type ClassifyConfig struct {
	// MaxTitleLength bounds the sanitized title (default 100).
	MaxTitleLength int `json:"max_title_length" yaml:"max_title_length" mapstructure:"max_title_length"`

	// Footers lists watermark strings that disqualify a line as a title.
	Footers []string `json:"footers" yaml:"footers" mapstructure:"footers"`
}

// SplitConfig holds settings for the split stage.
type SplitConfig struct {
	ClassifyConfig `yaml:",inline" mapstructure:",squash"`

	// OutputRoot is the parent of the per-site output directory. Empty means
	// the directory of the input file.
	OutputRoot string `json:"output_root" yaml:"output_root" mapstructure:"output_root"`

	// DryRun classifies pages and plans file names without writing files.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	// ReportPath is an optional YAML or JSON run report destination.
	ReportPath string `json:"report" yaml:"report" mapstructure:"report"`
}

// CatalogConfig holds settings for the run catalog.
type CatalogConfig struct {
	// Path is the SQLite database file. Empty disables the catalog.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}
