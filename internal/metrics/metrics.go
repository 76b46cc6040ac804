// Package metrics exports simulation progress as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/life"
)

const namespace = "life"

// Collector records scheduler events. It satisfies the GPU scheduler's
// observer interface.
type Collector struct {
	// Ticks counts submitted generations.
	Ticks prometheus.Counter
	// Redraws counts render-only frames.
	Redraws prometheus.Counter
	// Failures counts GPU submissions, ticks or readbacks, that stopped the
	// scheduler.
	Failures prometheus.Counter
	// Generation is the step counter after the last tick.
	Generation prometheus.Gauge
	// Population is the live cell count of the last generation read back.
	Population prometheus.Gauge
	// TickDuration tracks time spent encoding and submitting a tick.
	TickDuration prometheus.Histogram
}

// New creates a collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Total number of submitted generations",
		}),
		Redraws: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redraws_total",
			Help:      "Total number of frames drawn without advancing the simulation",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_failures_total",
			Help:      "Total number of failed GPU submissions that stopped the scheduler",
		}),
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation",
			Help:      "Current generation (step counter)",
		}),
		Population: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population",
			Help:      "Live cells in the last generation read back from the GPU",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent encoding and submitting one tick",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
	}
	reg.MustRegister(c.Ticks, c.Redraws, c.Failures, c.Generation, c.Population, c.TickDuration)
	return c
}

// TickSubmitted records a submitted generation.
func (c *Collector) TickSubmitted(step uint64, d time.Duration) {
	c.Ticks.Inc()
	c.Generation.Set(float64(step))
	c.TickDuration.Observe(d.Seconds())
}

// FrameRedrawn records a render-only frame.
func (c *Collector) FrameRedrawn() {
	c.Redraws.Inc()
}

// TickFailed records the submission that stopped the scheduler.
func (c *Collector) TickFailed(error) {
	c.Failures.Inc()
}

// ObservePopulation sets the population gauge from a read-back generation.
func (c *Collector) ObservePopulation(cells []uint32) {
	c.Population.Set(float64(life.Population(cells)))
}

// Serve exposes g on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	life.Logger().Info("life: metrics endpoint listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
