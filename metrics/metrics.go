// Package metrics holds the counters of an extraction or network run. Each
// Metrics has its own registry; the values are written to a Prometheus
// textfile at the end of the run.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "svograph"

type Metrics struct {
	Registry *prometheus.Registry

	// Pipeline metrics
	Sentences          *prometheus.CounterVec
	Triples            *prometheus.CounterVec
	ProcessingErrors   *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram

	// Graph metrics
	GraphNodeCount *prometheus.GaugeVec
	GraphEdgeCount *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		Sentences: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sentences_total",
				Help:      "Number of sentences by outcome",
			},
			[]string{"outcome"},
		),

		Triples: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "triples_total",
				Help:      "Number of triples by stage",
			},
			[]string{"stage"},
		),

		ProcessingErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "processing_errors_total",
				Help:      "Number of sentence processing errors",
			},
			[]string{"error_type"},
		),

		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sentence_processing_duration_seconds",
			Help:      "Time spent extracting the triples of a sentence",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),

		GraphNodeCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_nodes",
				Help:      "Number of nodes in the network",
			},
			[]string{"node_type"},
		),

		GraphEdgeCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_edges",
				Help:      "Number of edges in the network",
			},
			[]string{"table"},
		),
	}
}

// WriteFile writes the registry in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
