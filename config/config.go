package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/meysamhadeli/teamboard/roster"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// configCacheEntry holds cached configuration with metadata
type configCacheEntry struct {
	config  *Config
	modTime time.Time
}

var (
	configCache = make(map[string]*configCacheEntry)
	cacheMutex  sync.RWMutex
)

// ThemeConfig controls band colours and label sizes.
type ThemeConfig struct {
	TitleColor      string `mapstructure:"title_color"`
	HeaderColor     string `mapstructure:"header_color"`
	ContentColor    string `mapstructure:"content_color"`
	TextColor       string `mapstructure:"text_color"`
	TitleFontSize   int    `mapstructure:"title_font_size"`
	HeaderFontSize  int    `mapstructure:"header_font_size"`
	ContentFontSize int    `mapstructure:"content_font_size"`
	Highlight       string `mapstructure:"highlight"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version         string        `mapstructure:"version"`
	RosterFile      string        `mapstructure:"roster_file"`
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	ViewportWidth   int           `mapstructure:"viewport_width"`
	PixelsPerColumn int           `mapstructure:"pixels_per_column"`
	Digest          string        `mapstructure:"digest"`
	LogLevel        string        `mapstructure:"log_level"`
	Theme           *ThemeConfig  `mapstructure:"theme"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:         "1.0.0",
	RosterFile:      filepath.Join("StreamingAssets", "JsonChallenge.json"),
	TickInterval:    250 * time.Millisecond,
	ViewportWidth:   0,
	PixelsPerColumn: 8,
	Digest:          roster.DigestXXH3,
	LogLevel:        "info",
	Theme: &ThemeConfig{
		TitleColor:      "#FFFFFF",
		HeaderColor:     "#CCCCCC",
		ContentColor:    "#999999",
		TextColor:       "#000000",
		TitleFontSize:   18,
		HeaderFontSize:  14,
		ContentFontSize: 10,
		Highlight:       "dracula",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs reads defaults, the config file, environment variables and CLI flags, in that order of precedence.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if path := findConfigFile(cwd); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(GetConfigFileType(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.RosterFile != "" && !filepath.IsAbs(config.RosterFile) {
		config.RosterFile = filepath.Join(cwd, config.RosterFile)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports settings the watcher or renderer cannot work with.
func (c *Config) Validate() error {
	if c.RosterFile == "" {
		return fmt.Errorf("%w: roster_file is required", ErrInvalidConfig)
	}
	if _, err := roster.DigesterByName(c.Digest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if c.ViewportWidth < 0 {
		return fmt.Errorf("%w: viewport_width must not be negative, got %d", ErrInvalidConfig, c.ViewportWidth)
	}
	if c.PixelsPerColumn <= 0 {
		return fmt.Errorf("%w: pixels_per_column must be positive, got %d", ErrInvalidConfig, c.PixelsPerColumn)
	}
	if c.Theme == nil {
		return fmt.Errorf("%w: theme is required", ErrInvalidConfig)
	}
	return nil
}

// findConfigFile looks for teamboard-config.{yml,yaml,json} in cwd.
func findConfigFile(cwd string) string {
	for _, name := range []string{"teamboard-config.yml", "teamboard-config.yaml", "teamboard-config.json"} {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("roster_file", DefaultConfig.RosterFile)
	v.SetDefault("tick_interval", DefaultConfig.TickInterval)
	v.SetDefault("viewport_width", DefaultConfig.ViewportWidth)
	v.SetDefault("pixels_per_column", DefaultConfig.PixelsPerColumn)
	v.SetDefault("digest", DefaultConfig.Digest)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("theme.title_color", DefaultConfig.Theme.TitleColor)
	v.SetDefault("theme.header_color", DefaultConfig.Theme.HeaderColor)
	v.SetDefault("theme.content_color", DefaultConfig.Theme.ContentColor)
	v.SetDefault("theme.text_color", DefaultConfig.Theme.TextColor)
	v.SetDefault("theme.title_font_size", DefaultConfig.Theme.TitleFontSize)
	v.SetDefault("theme.header_font_size", DefaultConfig.Theme.HeaderFontSize)
	v.SetDefault("theme.content_font_size", DefaultConfig.Theme.ContentFontSize)
	v.SetDefault("theme.highlight", DefaultConfig.Theme.Highlight)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("roster_file", "ROSTER_FILE")
	_ = v.BindEnv("tick_interval", "TICK_INTERVAL")
	_ = v.BindEnv("viewport_width", "VIEWPORT_WIDTH")
	_ = v.BindEnv("pixels_per_column", "PIXELS_PER_COLUMN")
	_ = v.BindEnv("digest", "DIGEST")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	bind := func(key, flag string) {
		if f := rootCmd.PersistentFlags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
	bind("roster_file", "file")
	bind("tick_interval", "interval")
	bind("viewport_width", "width")
	bind("pixels_per_column", "pixels_per_column")
	bind("digest", "digest")
	bind("log_level", "log_level")
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().StringP("file", "f", DefaultConfig.RosterFile, "Path to the roster JSON file to display.")
	rootCmd.PersistentFlags().Duration("interval", DefaultConfig.TickInterval, "How often the roster file is checked for changes (e.g., '250ms', '1s').")
	rootCmd.PersistentFlags().Int("width", DefaultConfig.ViewportWidth, "Viewport width in pixels. 0 follows the terminal width.")
	rootCmd.PersistentFlags().Int("pixels_per_column", DefaultConfig.PixelsPerColumn, "Pixels represented by one terminal column.")
	rootCmd.PersistentFlags().String("digest", DefaultConfig.Digest, "Content digest used for change detection ('xxh3' or 'md5').")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level ('trace', 'debug', 'info', 'warn', 'error', 'off').")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// LoadConfigWithCache reuses the last loaded configuration while the config file is unmodified.
func LoadConfigWithCache(rootCmd *cobra.Command, cwd string) (*Config, error) {
	configFilePath := cfgFile
	if configFilePath == "" {
		configFilePath = findConfigFile(cwd)
	}

	if configFilePath == "" {
		return LoadConfigs(rootCmd, cwd)
	}

	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		return LoadConfigs(rootCmd, cwd)
	}

	cacheMutex.RLock()
	if cached, exists := configCache[configFilePath]; exists && fileInfo.ModTime().Equal(cached.modTime) {
		cacheMutex.RUnlock()
		return cached.config, nil
	}
	cacheMutex.RUnlock()

	config, err := LoadConfigs(rootCmd, cwd)
	if err != nil {
		return nil, err
	}

	cacheMutex.Lock()
	configCache[configFilePath] = &configCacheEntry{
		config:  config,
		modTime: fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return config, nil
}

// ClearConfigCache clears all cached configuration files
func ClearConfigCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	configCache = make(map[string]*configCacheEntry)
}
