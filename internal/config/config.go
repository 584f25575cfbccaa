package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only configuration schema version accepted by Load.
const SupportedVersion = "1.0"

// Config represents the fontbuilder configuration file.
type Config struct {
	Version string        `yaml:"version"`
	Tool    ToolConfig    `yaml:"tool"`
	Build   BuildConfig   `yaml:"build,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	// Fonts replaces the compiled-in manifest when non-empty.
	Fonts []FontSpec `yaml:"fonts,omitempty"`

	// path of the file this config was loaded from; empty for defaults.
	path string
}

// ToolConfig describes how the external font tool is launched.
type ToolConfig struct {
	Java     string   `yaml:"java"`               // java executable (name on PATH or path)
	Jar      string   `yaml:"jar"`                // CSFontBuilder.jar; relative paths resolve against the config file directory
	JVMArgs  []string `yaml:"jvm_args,omitempty"` // extra -X / -D flags placed before -jar
	Headless *bool    `yaml:"headless,omitempty"` // adds -Djava.awt.headless=true (default true)
	Timeout  string   `yaml:"timeout,omitempty"`  // per-font timeout, e.g. "2m"; empty disables
}

// BuildConfig controls orchestrator behavior.
type BuildConfig struct {
	FailFast      bool   `yaml:"fail_fast"`                // stop at the first failed font
	VerifyOutputs *bool  `yaml:"verify_outputs,omitempty"` // treat a missing output file as a failure (default true)
	ReportDir     string `yaml:"report_dir,omitempty"`     // where build-report.json/.txt are written; empty disables
	MetricsFile   string `yaml:"metrics_file,omitempty"`   // Prometheus textfile export path
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// FontSpec is one font family rendered at one or more quality tiers.
type FontSpec struct {
	Family string     `yaml:"family"`          // system font name passed to the tool
	Label  string     `yaml:"label,omitempty"` // output file prefix; defaults to Family
	Tiers  []TierSpec `yaml:"tiers"`
}

// TierSpec is a single size of a FontSpec.
type TierSpec struct {
	Name   string `yaml:"name"`
	Size   int    `yaml:"size"`
	Output string `yaml:"output,omitempty"` // overrides <Label>.<Name>.csfont
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string { return c.path }

// HeadlessEnabled reports whether the tool runs with java.awt.headless.
func (t ToolConfig) HeadlessEnabled() bool {
	return t.Headless == nil || *t.Headless
}

// TimeoutDuration parses Timeout; zero means no timeout.
func (t ToolConfig) TimeoutDuration() time.Duration {
	if t.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// VerifyOutputsEnabled reports whether missing output files fail a font job.
func (b BuildConfig) VerifyOutputsEnabled() bool {
	return b.VerifyOutputs == nil || *b.VerifyOutputs
}

// Default returns a configuration with every default applied and no fonts,
// which selects the compiled-in manifest.
func Default() *Config {
	cfg := &Config{Version: SupportedVersion}
	_ = applyDefaults(cfg)
	return cfg
}

// Load loads a configuration file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported configuration version: %q (expected %s)", config.Version, SupportedVersion)
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	config.path = abs

	if err := applyDefaults(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads configPath when it exists. A missing file yields
// Default() unless required is set.
func LoadOrDefault(configPath string, required bool) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) && !required {
		_ = loadEnvFile() // FONTBUILDER_* overrides may live in .env
		return Default(), nil
	}
	return Load(configPath)
}

// Init writes an example configuration file reproducing the default manifest.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	headless := true
	verify := true
	exampleConfig := Config{
		Version: SupportedVersion,
		Tool: ToolConfig{
			Java:     "java",
			Jar:      DefaultJar,
			Headless: &headless,
		},
		Build: BuildConfig{
			VerifyOutputs: &verify,
		},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Fonts: []FontSpec{
			{
				Family: "Arial",
				Label:  "ArialSmall",
				Tiers:  []TierSpec{{Name: "low", Size: 10}, {Name: "med", Size: 20}, {Name: "high", Size: 40}},
			},
			{
				Family: "Arial",
				Label:  "ArialMed",
				Tiers:  []TierSpec{{Name: "low", Size: 16}, {Name: "med", Size: 32}, {Name: "high", Size: 64}},
			},
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveJar returns the absolute jar path. Relative paths resolve against the
// directory of the loaded config file, or the working directory for defaults.
func (c *Config) ResolveJar() (string, error) {
	jar := c.Tool.Jar
	if jar == "" {
		jar = DefaultJar
	}
	if filepath.IsAbs(jar) {
		return jar, nil
	}
	if c.path != "" {
		return filepath.Join(filepath.Dir(c.path), jar), nil
	}
	return filepath.Abs(jar)
}
