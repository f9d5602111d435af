package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Input formats understood by the ingest readers.
const (
	FormatAuto = "auto"
	FormatGPX  = "gpx"
	FormatText = "text"
	FormatCSV  = "csv"
)

// AnalysisConfig holds the optional settings for one trackrate run.
// Every field is a pointer so a partial file leaves the rest at their
// defaults; read values through the Get* methods.
type AnalysisConfig struct {
	// Ingest
	InputFormat        *string `json:"input_format,omitempty" yaml:"input_format,omitempty" validate:"omitempty,oneof=auto gpx text csv"`
	TextHeaderLines    *int    `json:"text_header_lines,omitempty" yaml:"text_header_lines,omitempty" validate:"omitempty,gte=0,lte=1000"`
	CSVLatitudeColumn  *string `json:"csv_latitude_column,omitempty" yaml:"csv_latitude_column,omitempty"`
	CSVLongitudeColumn *string `json:"csv_longitude_column,omitempty" yaml:"csv_longitude_column,omitempty"`
	CSVTimestampColumn *string `json:"csv_timestamp_column,omitempty" yaml:"csv_timestamp_column,omitempty"`

	// Output
	PlotWidthInches  *float64 `json:"plot_width_inches,omitempty" yaml:"plot_width_inches,omitempty" validate:"omitempty,gt=0,lte=100"`
	PlotHeightInches *float64 `json:"plot_height_inches,omitempty" yaml:"plot_height_inches,omitempty" validate:"omitempty,gt=0,lte=100"`
	ChartTheme       *string  `json:"chart_theme,omitempty" yaml:"chart_theme,omitempty" validate:"omitempty,oneof=light dark"`
	StoreSamples     *bool    `json:"store_samples,omitempty" yaml:"store_samples,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyAnalysisConfig returns an AnalysisConfig with all fields set to nil.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// DefaultAnalysisConfig returns a config with every field set to its default.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		InputFormat:      ptrString(FormatAuto),
		TextHeaderLines:  ptrInt(5),
		PlotWidthInches:  ptrFloat64(8),
		PlotHeightInches: ptrFloat64(5),
		ChartTheme:       ptrString("light"),
		StoreSamples:     ptrBool(true),
	}
}

// LoadAnalysisConfig loads an AnalysisConfig from a .json, .yaml or .yml file.
// Fields omitted from the file retain their default values, so partial
// configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", strings.TrimPrefix(ext, "."), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	for name, col := range map[string]*string{
		"csv_latitude_column":  c.CSVLatitudeColumn,
		"csv_longitude_column": c.CSVLongitudeColumn,
		"csv_timestamp_column": c.CSVTimestampColumn,
	} {
		if col != nil && strings.TrimSpace(*col) == "" {
			return fmt.Errorf("%s must not be blank", name)
		}
	}
	return nil
}

// GetInputFormat returns the input_format value or the default.
func (c *AnalysisConfig) GetInputFormat() string {
	if c.InputFormat == nil || *c.InputFormat == "" {
		return FormatAuto
	}
	return *c.InputFormat
}

// GetTextHeaderLines returns the text_header_lines value or the default.
func (c *AnalysisConfig) GetTextHeaderLines() int {
	if c.TextHeaderLines == nil {
		return 5
	}
	return *c.TextHeaderLines
}

// GetCSVLatitudeColumn returns the csv_latitude_column value, or "" to match by alias.
func (c *AnalysisConfig) GetCSVLatitudeColumn() string {
	if c.CSVLatitudeColumn == nil {
		return ""
	}
	return *c.CSVLatitudeColumn
}

// GetCSVLongitudeColumn returns the csv_longitude_column value, or "" to match by alias.
func (c *AnalysisConfig) GetCSVLongitudeColumn() string {
	if c.CSVLongitudeColumn == nil {
		return ""
	}
	return *c.CSVLongitudeColumn
}

// GetCSVTimestampColumn returns the csv_timestamp_column value, or "" to match by alias.
func (c *AnalysisConfig) GetCSVTimestampColumn() string {
	if c.CSVTimestampColumn == nil {
		return ""
	}
	return *c.CSVTimestampColumn
}

// GetPlotWidthInches returns the plot_width_inches value or the default.
func (c *AnalysisConfig) GetPlotWidthInches() float64 {
	if c.PlotWidthInches == nil {
		return 8
	}
	return *c.PlotWidthInches
}

// GetPlotHeightInches returns the plot_height_inches value or the default.
func (c *AnalysisConfig) GetPlotHeightInches() float64 {
	if c.PlotHeightInches == nil {
		return 5
	}
	return *c.PlotHeightInches
}

// GetChartTheme returns the chart_theme value or the default.
func (c *AnalysisConfig) GetChartTheme() string {
	if c.ChartTheme == nil || *c.ChartTheme == "" {
		return "light"
	}
	return *c.ChartTheme
}

// GetStoreSamples returns the store_samples value or the default.
func (c *AnalysisConfig) GetStoreSamples() bool {
	if c.StoreSamples == nil {
		return true
	}
	return *c.StoreSamples
}
