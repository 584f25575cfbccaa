package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Family", KeyFamily, "Arial", Family("Arial")},
		{"Label", KeyLabel, "ArialSmall", Label("ArialSmall")},
		{"Tier", KeyTier, "low", Tier("low")},
		{"Output", KeyOutput, "/tmp/fonts/a.csfont", Output("/tmp/fonts/a.csfont")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Outcome", KeyOutcome, "success", Outcome("success")},
		{"Stage", KeyStage, "prepare", Stage("prepare")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Size(32); a.Key != KeySize || a.Value.Int64() != 32 {
		t.Errorf("Size attr = %v", a)
	}
	if a := ExitCode(3); a.Key != KeyExitCode || a.Value.Int64() != 3 {
		t.Errorf("ExitCode attr = %v", a)
	}
	if a := JobIndex(5); a.Key != KeyJobIndex || a.Value.Int64() != 5 {
		t.Errorf("JobIndex attr = %v", a)
	}
	if a := Duration(1500 * time.Microsecond); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Errorf("Duration attr = %v", a)
	}
}
