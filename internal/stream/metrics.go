package stream

import "github.com/prometheus/client_golang/prometheus"

var (
	streamConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "academy_client_stream_connected",
			Help: "Whether a live room socket is currently open (0 or 1).",
		},
	)
	streamConnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_client_stream_connects_total",
			Help: "Total successful socket connects.",
		},
	)
	streamReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_client_stream_reconnects_total",
			Help: "Total reconnect delays scheduled after a drop or failed dial.",
		},
	)
	streamFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_client_stream_frames_total",
			Help: "Total inbound frames by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(streamConnected, streamConnects, streamReconnects, streamFrames)
}

func setConnected(up bool) {
	if up {
		streamConnected.Set(1)
		return
	}
	streamConnected.Set(0)
}

func incConnects() {
	streamConnects.Inc()
}

func incReconnects() {
	streamReconnects.Inc()
}

func incFrames(kind string) {
	streamFrames.WithLabelValues(kind).Inc()
}
