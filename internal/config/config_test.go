package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fonts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version: \"1.0\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "java", cfg.Tool.Java)
	require.Equal(t, DefaultJar, cfg.Tool.Jar)
	require.True(t, cfg.Tool.HeadlessEnabled())
	require.True(t, cfg.Build.VerifyOutputsEnabled())
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Empty(t, cfg.Fonts)
	require.Equal(t, path, cfg.Path())
}

func TestLoad_FontsAndLabels(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
tool:
  jar: tools/CSFontBuilder.jar
  headless: false
  timeout: 90s
build:
  fail_fast: true
  report_dir: reports
fonts:
  - family: Helvetica
    tiers:
      - {name: low, size: 12}
      - {name: high, size: 48, output: custom.csfont}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Tool.HeadlessEnabled())
	require.True(t, cfg.Build.FailFast)
	require.Equal(t, "90s", cfg.Tool.Timeout)
	require.Equal(t, "reports", cfg.Build.ReportDir)
	require.Len(t, cfg.Fonts, 1)
	require.Equal(t, "Helvetica", cfg.Fonts[0].Label)
	require.Equal(t, "custom.csfont", cfg.Fonts[0].Tiers[1].Output)

	jar, err := cfg.ResolveJar()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(filepath.Dir(path), "tools", "CSFontBuilder.jar"), jar)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("FONT_JAR_DIR", "/opt/chilli")
	path := writeConfig(t, "version: \"1.0\"\ntool:\n  jar: ${FONT_JAR_DIR}/CSFontBuilder.jar\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	jar, err := cfg.ResolveJar()
	require.NoError(t, err)
	require.Equal(t, "/opt/chilli/CSFontBuilder.jar", jar)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvJava, "/usr/lib/jvm/bin/java")
	t.Setenv(EnvLogLevel, "DEBUG")
	path := writeConfig(t, "version: \"1.0\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/usr/lib/jvm/bin/java", cfg.Tool.Java)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong version", "version: \"2.0\"\n"},
		{"bad yaml", "version: [\n"},
		{"bad timeout", "version: \"1.0\"\ntool:\n  timeout: soon\n"},
		{"negative timeout", "version: \"1.0\"\ntool:\n  timeout: -1s\n"},
		{"empty family", "version: \"1.0\"\nfonts:\n  - family: \"\"\n    tiers: [{name: low, size: 10}]\n"},
		{"no tiers", "version: \"1.0\"\nfonts:\n  - family: Arial\n"},
		{"zero size", "version: \"1.0\"\nfonts:\n  - family: Arial\n    tiers: [{name: low, size: 0}]\n"},
		{"unnamed tier", "version: \"1.0\"\nfonts:\n  - family: Arial\n    tiers: [{size: 10}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "fonts.yaml")

	cfg, err := LoadOrDefault(missing, false)
	require.NoError(t, err)
	require.Equal(t, SupportedVersion, cfg.Version)
	require.Empty(t, cfg.Path())

	_, err = LoadOrDefault(missing, true)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInit_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fonts.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Fonts, 2)
	require.Equal(t, "ArialSmall", cfg.Fonts[0].Label)
	require.Equal(t, 64, cfg.Fonts[1].Tiers[2].Size)
	require.True(t, cfg.Build.VerifyOutputsEnabled())

	require.Error(t, Init(path, false), "existing file must not be overwritten without force")
	require.NoError(t, Init(path, true))
}

func TestNormalizeLogging(t *testing.T) {
	require.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	require.Equal(t, LogLevelInfo, NormalizeLogLevel("loud"))
	require.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
	require.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	require.Equal(t, LogFormatText, NormalizeLogFormat("xml"))
}
