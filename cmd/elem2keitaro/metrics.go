package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// writeMetrics dumps reg in the Prometheus text format, for the node
// exporter's textfile collector. The file is replaced atomically.
func writeMetrics(reg *prometheus.Registry, path string) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteMetrics, err)
	}
	return nil
}
