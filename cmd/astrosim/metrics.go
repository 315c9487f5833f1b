package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	tickDuration prometheus.Histogram
	ticksTotal   prometheus.Counter
}

func NewMetricsCollector(warnings func() float64, bodies func() float64) *MetricsCollector {
	m := &MetricsCollector{
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "astrosim_tick_duration_seconds",
				Help: "Time spent advancing the solar system one tick",
			},
		),
		ticksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "astrosim_ticks_total",
				Help: "Total number of simulation ticks",
			},
		),
	}

	prometheus.MustRegister(m.tickDuration)
	prometheus.MustRegister(m.ticksTotal)
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "astrosim_kepler_convergence_warnings_total",
			Help: "Propagations which hit the Kepler solver iteration cap",
		},
		warnings,
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "astrosim_bodies",
			Help: "Number of bodies in the simulated system",
		},
		bodies,
	))

	return m
}

func (m *MetricsCollector) RecordTick(duration time.Duration) {
	m.tickDuration.Observe(duration.Seconds())
	m.ticksTotal.Inc()
}

func (m *MetricsCollector) ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
