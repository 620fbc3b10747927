package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	PageSize  string `mapstructure:"page_size" yaml:"page_size"`
	Author    string `mapstructure:"author" yaml:"author"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Analysis tuning
	TopValues        int     `mapstructure:"top_values" yaml:"top_values"`
	MaxRows          int     `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows       int     `mapstructure:"sample_rows" yaml:"sample_rows"`
	Outliers         bool    `mapstructure:"outliers" yaml:"outliers"`
	OutlierThreshold float64 `mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
	Correlations     bool    `mapstructure:"correlations" yaml:"correlations"`

	// PDF output
	CompressPDF bool `mapstructure:"compress_pdf" yaml:"compress_pdf"`
	PageNumbers bool `mapstructure:"page_numbers" yaml:"page_numbers"`

	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`
}

// Dir returns the per-user configuration directory (~/.quickeda).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".quickeda"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.quickeda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("QUICKEDA")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("page_size", "letter")
	v.SetDefault("author", "")
	v.SetDefault("output_dir", "")
	v.SetDefault("top_values", 10)
	v.SetDefault("max_rows", 0)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("outliers", true)
	v.SetDefault("outlier_threshold", 3.5)
	v.SetDefault("correlations", true)
	v.SetDefault("compress_pdf", true)
	v.SetDefault("page_numbers", true)
	v.SetDefault("history_limit", 50)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
