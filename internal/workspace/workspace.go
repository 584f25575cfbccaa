package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/fontbuilder/internal/logfields"
)

// ErrParentMissing is returned when the output directory's parent does not exist.
var ErrParentMissing = errors.New("output directory parent does not exist")

// ErrUnsafePath is returned for paths that must never be wiped.
var ErrUnsafePath = errors.New("refusing to recreate unsafe output path")

// OutputDir is the destination directory of one build.
type OutputDir struct {
	path string
}

// NewOutputDir returns an OutputDir for path. The path is cleaned but not
// made absolute.
func NewOutputDir(path string) *OutputDir {
	return &OutputDir{path: filepath.Clean(path)}
}

// Path returns the directory path.
func (o *OutputDir) Path() string {
	return o.path
}

// Check validates the path without touching the file system beyond a stat of
// the parent directory.
func (o *OutputDir) Check() error {
	if o.path == "" || o.path == "." || o.path == ".." || o.path == string(filepath.Separator) ||
		filepath.Dir(o.path) == o.path {
		return fmt.Errorf("%w: %q", ErrUnsafePath, o.path)
	}
	parent := filepath.Dir(o.path)
	stat, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrParentMissing, parent)
		}
		return fmt.Errorf("stat parent %s: %w", parent, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrParentMissing, parent)
	}
	return nil
}

// Prepare deletes anything at the path and recreates it as an empty directory.
func (o *OutputDir) Prepare() error {
	if err := o.Check(); err != nil {
		return err
	}

	if err := os.RemoveAll(o.path); err != nil {
		return fmt.Errorf("failed to delete output directory: %w", err)
	}
	if err := os.Mkdir(o.path, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	slog.Info("Prepared clean output directory", logfields.Path(o.path))
	return nil
}

// Files lists the regular file names in the directory, sorted.
func (o *OutputDir) Files() ([]string, error) {
	entries, err := os.ReadDir(o.path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Missing returns the entries of names that are not present as files.
func (o *OutputDir) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		stat, err := os.Stat(filepath.Join(o.path, name))
		if err != nil || !stat.Mode().IsRegular() {
			missing = append(missing, name)
		}
	}
	return missing
}
