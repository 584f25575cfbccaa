package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyJobIndex   = "job_index"
	KeyFamily     = "font_family"
	KeySize       = "font_size"
	KeyLabel      = "label"
	KeyTier       = "tier"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyExitCode   = "exit_code"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyStage      = "stage"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr    { return slog.String(KeyBuildID, id) }
func JobIndex(i int) slog.Attr       { return slog.Int(KeyJobIndex, i) }
func Family(f string) slog.Attr      { return slog.String(KeyFamily, f) }
func Size(s int) slog.Attr           { return slog.Int(KeySize, s) }
func Label(l string) slog.Attr       { return slog.String(KeyLabel, l) }
func Tier(t string) slog.Attr        { return slog.String(KeyTier, t) }
func Output(p string) slog.Attr      { return slog.String(KeyOutput, p) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func ExitCode(c int) slog.Attr       { return slog.Int(KeyExitCode, c) }
func Outcome(o string) slog.Attr     { return slog.String(KeyOutcome, o) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration is DurationMS for a time.Duration.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
