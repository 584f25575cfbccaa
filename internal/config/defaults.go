package config

// DefaultJar is the tool location used when none is configured.
const DefaultJar = "CSFontBuilder.jar"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ToolDefaultApplier handles Tool configuration defaults.
type ToolDefaultApplier struct{}

func (t *ToolDefaultApplier) Domain() string { return "tool" }

func (t *ToolDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Tool.Java == "" {
		cfg.Tool.Java = "java"
	}
	if cfg.Tool.Jar == "" {
		cfg.Tool.Jar = DefaultJar
	}
	return nil
}

// LoggingDefaultApplier handles Logging configuration defaults.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	return nil
}

// FontDefaultApplier fills in labels for font specs.
type FontDefaultApplier struct{}

func (f *FontDefaultApplier) Domain() string { return "fonts" }

func (f *FontDefaultApplier) ApplyDefaults(cfg *Config) error {
	for i := range cfg.Fonts {
		if cfg.Fonts[i].Label == "" {
			cfg.Fonts[i].Label = cfg.Fonts[i].Family
		}
	}
	return nil
}

// DefaultApplierChain runs every domain applier in order.
type DefaultApplierChain struct {
	appliers []DefaultApplier
}

// NewDefaultApplier returns the standard applier chain.
func NewDefaultApplier() *DefaultApplierChain {
	return &DefaultApplierChain{appliers: []DefaultApplier{
		&ToolDefaultApplier{},
		&LoggingDefaultApplier{},
		&FontDefaultApplier{},
	}}
}

func (c *DefaultApplierChain) ApplyDefaults(cfg *Config) error {
	for _, a := range c.appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults applies env overrides and then default values.
func applyDefaults(cfg *Config) error {
	applyEnvOverrides(cfg)
	return NewDefaultApplier().ApplyDefaults(cfg)
}
