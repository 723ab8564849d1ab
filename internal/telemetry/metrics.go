// Package telemetry holds the offset server's Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is private to the process so tests and embedders do not collide
// with the global default registry.
var Registry = prometheus.NewRegistry()

var (
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "beatlights",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beatlights",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "endpoint", "status"})

	APIActiveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "beatlights",
		Name:      "http_active_connections",
		Help:      "Requests currently in flight.",
	})

	FrameComputeSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "beatlights",
		Name:      "frame_compute_seconds",
		Help:      "Time spent computing offsets for a document.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	FrameLights = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "beatlights",
		Name:      "frame_lights",
		Help:      "Light offsets in the last computed frame.",
	})

	FramesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beatlights",
		Name:      "frames_total",
		Help:      "Frames computed, by result.",
	}, []string{"result"})

	FrameSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "beatlights",
		Name:      "frame_subscribers",
		Help:      "Connected /frames websocket clients.",
	})

	DocumentsLoaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beatlights",
		Name:      "documents_loaded_total",
		Help:      "Difficulty documents loaded, by filter revision.",
	}, []string{"revision"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		APIRequestDuration,
		APIRequestsTotal,
		APIActiveConnections,
		FrameComputeSeconds,
		FrameLights,
		FramesTotal,
		FrameSubscribers,
		DocumentsLoaded,
	)
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveFrame records one engine run.
func ObserveFrame(seconds float64, lights int, err error) {
	if err != nil {
		FramesTotal.WithLabelValues("error").Inc()
		return
	}
	FramesTotal.WithLabelValues("ok").Inc()
	FrameComputeSeconds.Observe(seconds)
	FrameLights.Set(float64(lights))
}
