package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds all configuration for ModAudit.
type Config struct {
	// Root of the platform installation to scan.
	Root string `mapstructure:"root"`

	// Output format (text, json, markdown).
	Format string `mapstructure:"format"`

	// Worker-pool size for concurrent module scans.
	Jobs int `mapstructure:"jobs"`

	// Directory where check runs are stored for diffing.
	StorageDir string `mapstructure:"storage_dir"`

	// Store each check run automatically.
	Store bool `mapstructure:"store"`

	// Include fully compatible modules in output.
	ShowAll bool `mapstructure:"show_all"`

	// Skip first-party platform modules.
	ThirdPartyOnly bool `mapstructure:"third_party_only"`

	// Skip composer vendor-installed modules.
	ExcludeVendor bool `mapstructure:"exclude_vendor"`

	// Exit nonzero when critical issues are found.
	FailOnCritical bool `mapstructure:"fail_on_critical"`

	// Optional explicit module map file (moduleName -> path YAML).
	ModuleMap string `mapstructure:"module_map"`

	// Optional policy file; empty means search upward from cwd.
	PolicyFile string `mapstructure:"policy_file"`

	// Verbose output.
	Verbose bool `mapstructure:"verbose"`

	// Debug mode.
	Debug bool `mapstructure:"debug"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Root:       ".",
		Format:     "text",
		Jobs:       8,
		StorageDir: filepath.Join(xdg.DataHome, "modaudit"),
	}
}

// Load loads configuration from standard locations.
func Load() (*Config, error) {
	return LoadFromFile("")
}

// LoadFromFile loads configuration with the following precedence (lowest
// to highest): defaults, config file, MODAUDIT_* environment variables.
// CLI flag overrides are handled by the caller. If path is empty the file
// is searched in the working directory, the home directory, and the XDG
// config directory.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("storage_dir", defaults.StorageDir)
	v.SetDefault("store", false)
	v.SetDefault("show_all", false)
	v.SetDefault("third_party_only", false)
	v.SetDefault("exclude_vendor", false)
	v.SetDefault("fail_on_critical", false)
	v.SetDefault("module_map", "")
	v.SetDefault("policy_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("debug", false)

	v.SetConfigName("modaudit")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "modaudit"))
	}

	v.SetEnvPrefix("MODAUDIT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicit path that does not exist is also a hard error.
			if configPath != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text":     true,
		"json":     true,
		"markdown": true,
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (must be text, json, or markdown)", c.Format)
	}
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive")
	}
	if c.StorageDir == "" {
		return fmt.Errorf("storage_dir cannot be empty")
	}
	return nil
}

// AbsRoot returns the absolute path of the scan root.
func (c *Config) AbsRoot() (string, error) {
	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	return abs, nil
}
