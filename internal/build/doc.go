// Package build runs a font manifest against the external font tool.
//
// A build prepares a clean output directory, then executes each job of the
// manifest in order, one subprocess at a time. Every job produces a JobResult;
// failed jobs do not stop the batch unless fail-fast is enabled, but any
// failure makes Run return an error describing how many fonts are missing.
package build
