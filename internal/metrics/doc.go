// Package metrics provides observability hooks for conversions.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	resolver := media.NewResolver(media.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// The CLI writes that registry to a node_exporter textfile on exit.
package metrics
