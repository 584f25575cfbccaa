// Package metrics provides build and per-font metrics for fontbuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never requires nil checks:
//
//	orch := build.NewOrchestrator(tool, m).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// fontbuilder is a batch tool with no long-running HTTP surface, so metrics are
// exported by writing the registry to a node_exporter textfile (WriteTextfile)
// at the end of a build.
package metrics
