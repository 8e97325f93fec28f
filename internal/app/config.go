package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds persisted application configuration.
type Config struct {
	Exit      ExitConfig
	Telemetry TelemetryConfig
	UI        UIConfig

	// SoftExitSet records whether exit.soft was present in the config file,
	// so an absent value can fall through to a hard exit.
	SoftExitSet bool
}

// ExitConfig controls process-termination behavior.
type ExitConfig struct {
	// Soft suppresses process termination when true. Used under test harnesses.
	Soft bool
	// WaitMS is the pre-termination delay allowing async log flushing.
	WaitMS int
}

// TelemetryConfig controls daily usage aggregation.
type TelemetryConfig struct {
	// Dir holds the state file and execution database. Empty means the
	// global config directory.
	Dir string
	// Endpoint receives aggregated usage records. Empty disables submission
	// (records are logged at debug level instead).
	Endpoint string
	// Disabled turns off usage recording entirely.
	Disabled bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Spinner enables the progress indicator by default.
	Spinner bool
}

// LoadConfig reads configuration from file and env. Env var overrides use
// prefix RECPLAN_.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("exit.soft", false)
	v.SetDefault("exit.wait_ms", 1000)
	v.SetDefault("telemetry.dir", "")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.disabled", false)
	v.SetDefault("ui.spinner", true)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("RECPLAN_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if dir, err := GlobalConfigPath(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RECPLAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	c.Exit.Soft = v.GetBool("exit.soft")
	c.Exit.WaitMS = v.GetInt("exit.wait_ms")
	c.Telemetry.Dir = v.GetString("telemetry.dir")
	c.Telemetry.Endpoint = v.GetString("telemetry.endpoint")
	c.Telemetry.Disabled = v.GetBool("telemetry.disabled")
	c.UI.Spinner = v.GetBool("ui.spinner")
	c.SoftExitSet = v.InConfig("exit.soft")
	return c, nil
}

// TelemetryDir resolves the directory holding telemetry state, creating it
// if needed.
func (c Config) TelemetryDir() (string, error) {
	dir := c.Telemetry.Dir
	if dir == "" {
		global, err := GlobalConfigPath()
		if err != nil {
			return "", err
		}
		dir = global
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return "", fmt.Errorf("create telemetry dir: %w", err)
	}
	return dir, nil
}

// StatePath returns the persisted-state file path under the telemetry dir.
func (c Config) StatePath() (string, error) {
	dir, err := c.TelemetryDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFile), nil
}

// ExecutionDBPath returns the execution-record database path.
func (c Config) ExecutionDBPath() (string, error) {
	dir, err := c.TelemetryDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TelemetryDBFile), nil
}
