// Package workspace owns the output directory of a font build.
//
// Preparation is destructive: any existing directory at the path is removed
// recursively and a fresh, empty directory is created in its place. The parent
// directory must already exist; it is never created implicitly.
package workspace
