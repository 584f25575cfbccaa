// Package manifest defines font jobs and the ordered build manifest the
// orchestrator executes.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/fontbuilder/internal/config"
)

// Extension is the file extension of assets produced by the font tool.
const Extension = ".csfont"

// Quality tiers used by the default manifest.
const (
	TierLow  = "low"
	TierMed  = "med"
	TierHigh = "high"
)

// ErrInvalidManifest is wrapped by every Validate failure.
var ErrInvalidManifest = errors.New("invalid manifest")

// Job is one request to render a font family at a size into an output file.
// Output is a bare file name inside a manifest and a full path once resolved.
type Job struct {
	Family string `json:"family"`
	Size   int    `json:"size"`
	Output string `json:"output"`
	Label  string `json:"label,omitempty"`
	Tier   string `json:"tier,omitempty"`
}

// FileName returns the conventional <Label>.<tier>.csfont name.
func FileName(label, tier string) string {
	return label + "." + tier + Extension
}

// String renders the job the way progress lines describe it.
func (j Job) String() string {
	return fmt.Sprintf("%s@%d -> %s", j.Family, j.Size, j.Output)
}

// Manifest is the ordered list of jobs executed by one build.
type Manifest []Job

// Default returns the compiled-in manifest: two labels over three tiers,
// all rendered from the Arial system font.
func Default() Manifest {
	var m Manifest
	for _, group := range []struct {
		label string
		sizes [3]int
	}{
		{"ArialSmall", [3]int{10, 20, 40}},
		{"ArialMed", [3]int{16, 32, 64}},
	} {
		for i, tier := range []string{TierLow, TierMed, TierHigh} {
			m = append(m, Job{
				Family: "Arial",
				Size:   group.sizes[i],
				Output: FileName(group.label, tier),
				Label:  group.label,
				Tier:   tier,
			})
		}
	}
	return m
}

// FromConfig builds a manifest from font specs, preserving declaration order.
// An empty spec list yields Default(). Family and label are NFC-normalized so
// composed and decomposed spellings name the same font and file.
func FromConfig(specs []config.FontSpec) Manifest {
	if len(specs) == 0 {
		return Default()
	}
	var m Manifest
	for _, spec := range specs {
		family := norm.NFC.String(strings.TrimSpace(spec.Family))
		label := norm.NFC.String(strings.TrimSpace(spec.Label))
		if label == "" {
			label = family
		}
		for _, tier := range spec.Tiers {
			out := tier.Output
			if out == "" {
				out = FileName(label, tier.Name)
			}
			m = append(m, Job{
				Family: family,
				Size:   tier.Size,
				Output: norm.NFC.String(out),
				Label:  label,
				Tier:   tier.Name,
			})
		}
	}
	return m
}

// Validate checks that every job can be run and that outputs do not collide.
func (m Manifest) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no font jobs", ErrInvalidManifest)
	}
	seen := make(map[string]int, len(m))
	for i, job := range m {
		if strings.TrimSpace(job.Family) == "" {
			return fmt.Errorf("%w: job %d: family is empty", ErrInvalidManifest, i)
		}
		if job.Size <= 0 {
			return fmt.Errorf("%w: job %d (%s): size must be positive, got %d", ErrInvalidManifest, i, job.Family, job.Size)
		}
		if err := validateFileName(job.Output); err != nil {
			return fmt.Errorf("%w: job %d (%s): %w", ErrInvalidManifest, i, job.Family, err)
		}
		if prev, dup := seen[job.Output]; dup {
			return fmt.Errorf("%w: jobs %d and %d both write %s", ErrInvalidManifest, prev, i, job.Output)
		}
		seen[job.Output] = i
	}
	return nil
}

func validateFileName(name string) error {
	switch {
	case name == "":
		return errors.New("output file name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("output %q is not a file name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("output %q must not contain path separators", name)
	}
	return nil
}

// Resolve returns a copy of the manifest with each Output joined onto dir.
func (m Manifest) Resolve(dir string) Manifest {
	out := make(Manifest, len(m))
	for i, job := range m {
		job.Output = filepath.Join(dir, job.Output)
		out[i] = job
	}
	return out
}

// ExpectedFiles lists the output file names in manifest order.
func (m Manifest) ExpectedFiles() []string {
	names := make([]string, len(m))
	for i, job := range m {
		names[i] = filepath.Base(job.Output)
	}
	return names
}
