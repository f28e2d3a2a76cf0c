package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

// Recorder collects per-frame statistics of a run.
type Recorder struct {
	registry *prometheus.Registry

	frames    prometheus.Counter
	emitted   prometheus.Counter
	expired   prometheus.Counter
	active    prometheus.Gauge
	frameTime prometheus.Histogram
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cherenkov_frames_total",
			Help: "Total number of simulated frames.",
		}),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cherenkov_wavefronts_emitted_total",
			Help: "Total number of wavefronts emitted by the particle.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cherenkov_wavefronts_expired_total",
			Help: "Total number of wavefronts removed after fading out or leaving the bounds.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cherenkov_wavefronts_active",
			Help: "Number of wavefronts active in the latest frame.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cherenkov_frame_duration_seconds",
			Help:    "Time spent computing one frame, including the intensity field.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	r.registry.MustRegister(r.frames, r.emitted, r.expired, r.active, r.frameTime)
	return r
}

// ObserveFrame records one computed frame and how long it took.
func (r *Recorder) ObserveFrame(s physics.FrameState, elapsed time.Duration) {
	r.frames.Inc()
	if s.Emitted {
		r.emitted.Inc()
	}
	r.expired.Add(float64(s.Expired))
	r.active.Set(float64(len(s.Wavefronts)))
	r.frameTime.Observe(elapsed.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler for this recorder.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
