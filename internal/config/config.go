package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load
const EnvPrefix = "DATAKIT"

// Config represents the complete application configuration
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog" envconfig:"CATALOG"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Plot     PlotConfig     `yaml:"plot" envconfig:"PLOT"`
	Notebook NotebookConfig `yaml:"notebook" envconfig:"NOTEBOOK"`
}

// CatalogConfig controls where and what the data catalog scans
type CatalogConfig struct {
	Root       string   `yaml:"root" envconfig:"ROOT" default:"." validate:"required"`
	DataDir    string   `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	Subdirs    []string `yaml:"subdirs" envconfig:"SUBDIRS" default:"raw,processed,interim,external" validate:"min=1,dive,required"`
	Extensions []string `yaml:"extensions" envconfig:"EXTENSIONS" default:".csv,.xlsx,.xls,.json,.pkl,.parquet,.h5" validate:"min=1,dive,required,startswith=."`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/datakit.log"`
}

// PlotConfig holds figure defaults, in inches
type PlotConfig struct {
	Width  float64 `yaml:"width" envconfig:"WIDTH" default:"15" validate:"gt=0"`
	Height float64 `yaml:"height" envconfig:"HEIGHT" default:"20" validate:"gt=0"`
}

// NotebookConfig configures the notebook log handles
type NotebookConfig struct {
	LogIdentity string `yaml:"log_identity" envconfig:"LOG_IDENTITY" default:"Jupyter Notebook" validate:"required"`
}

var validate = validator.New()

// Load loads configuration from environment variables and an optional config file.
// An explicit path wins over the well-known locations.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config. A value explicitly set in
// the environment wins; otherwise a non-zero file value replaces the default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	pick := func(env, file, key string) string {
		if _, set := os.LookupEnv(EnvPrefix + "_" + key); set || file == "" {
			return env
		}
		return file
	}
	pickList := func(env, file []string, key string) []string {
		if _, set := os.LookupEnv(EnvPrefix + "_" + key); set || len(file) == 0 {
			return env
		}
		return file
	}
	pickFloat := func(env, file float64, key string) float64 {
		if _, set := os.LookupEnv(EnvPrefix + "_" + key); set || file == 0 {
			return env
		}
		return file
	}

	out := envConfig
	out.Catalog.Root = pick(envConfig.Catalog.Root, fileConfig.Catalog.Root, "CATALOG_ROOT")
	out.Catalog.DataDir = pick(envConfig.Catalog.DataDir, fileConfig.Catalog.DataDir, "CATALOG_DATA_DIR")
	out.Catalog.Subdirs = pickList(envConfig.Catalog.Subdirs, fileConfig.Catalog.Subdirs, "CATALOG_SUBDIRS")
	out.Catalog.Extensions = pickList(envConfig.Catalog.Extensions, fileConfig.Catalog.Extensions, "CATALOG_EXTENSIONS")

	out.Logging.Level = pick(envConfig.Logging.Level, fileConfig.Logging.Level, "LOGGING_LEVEL")
	out.Logging.Format = pick(envConfig.Logging.Format, fileConfig.Logging.Format, "LOGGING_FORMAT")
	out.Logging.Output = pick(envConfig.Logging.Output, fileConfig.Logging.Output, "LOGGING_OUTPUT")
	out.Logging.FilePath = pick(envConfig.Logging.FilePath, fileConfig.Logging.FilePath, "LOGGING_FILE_PATH")

	out.Plot.Width = pickFloat(envConfig.Plot.Width, fileConfig.Plot.Width, "PLOT_WIDTH")
	out.Plot.Height = pickFloat(envConfig.Plot.Height, fileConfig.Plot.Height, "PLOT_HEIGHT")

	out.Notebook.LogIdentity = pick(envConfig.Notebook.LogIdentity, fileConfig.Notebook.LogIdentity, "NOTEBOOK_LOG_IDENTITY")

	return out
}

// normalize lowercases extensions and makes sure each carries a leading dot
func (c *Config) normalize() {
	c.Catalog.Extensions = NormalizeExtensions(c.Catalog.Extensions)
	for i, s := range c.Catalog.Subdirs {
		c.Catalog.Subdirs[i] = strings.TrimSpace(s)
	}
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Paths returns the project layout rooted at the catalog root
func (c *Config) Paths() (*Paths, error) {
	return NewPaths(c.Catalog.Root, c.Catalog.DataDir)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"datakit.yaml",
		filepath.Join("configs", "datakit.yaml"),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// NormalizeExtensions lowercases each extension, trims it and prefixes a dot
// when missing. Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Root:       ".",
			DataDir:    "data",
			Subdirs:    DefaultSubdirs(),
			Extensions: DefaultExtensions(),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: "logs/datakit.log",
		},
		Plot: PlotConfig{
			Width:  15,
			Height: 20,
		},
		Notebook: NotebookConfig{
			LogIdentity: DefaultLogIdentity,
		},
	}
}
