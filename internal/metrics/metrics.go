package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the sync core.
type Metrics struct {
	RoomsOpen       prometheus.Gauge
	ConnectionsOpen prometheus.Gauge
	EventsTotal     *prometheus.CounterVec
	BroadcastsTotal prometheus.Counter
	MalformedTotal  prometheus.Counter
	SnapshotBytes   prometheus.Histogram
}

// New registers the whiteboard metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RoomsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "whiteboard",
			Name:      "rooms_open",
			Help:      "Number of live rooms.",
		}),

		ConnectionsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "whiteboard",
			Name:      "connections_open",
			Help:      "Number of open WebSocket connections.",
		}),

		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whiteboard",
			Name:      "events_total",
			Help:      "Total number of protocol events processed.",
		}, []string{"event"}),

		BroadcastsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "whiteboard",
			Name:      "broadcasts_total",
			Help:      "Total number of room fan-outs performed.",
		}),

		MalformedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "whiteboard",
			Name:      "malformed_frames_total",
			Help:      "Total number of inbound frames dropped as malformed.",
		}),

		SnapshotBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "whiteboard",
			Name:      "snapshot_bytes",
			Help:      "Size of canvas snapshots pushed to room histories.",
			// Snapshots are whole-canvas rasters: 1 KiB up to ~256 MiB.
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
	}
}
