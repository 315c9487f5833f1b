package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/2to4/astrosim"
	kitlog "github.com/go-kit/kit/log"
)

// Headless simulation driver: loads the catalog, ticks the clock and pushes
// positions to the attached renderers.

const dateFormat = "2006-01-02 15:04:05"

var (
	start       string
	rate        float64
	tick        time.Duration
	runFor      time.Duration
	feedAddr    string
	metricsAddr string
	verbose     bool
)

func init() {
	flag.StringVar(&start, "start", "", "simulation start, `2006-01-02 15:04:05` or a Julian date (default: now)")
	flag.Float64Var(&rate, "rate", 86400, "simulated seconds per wall-clock second (86400 = one day per second)")
	flag.DurationVar(&tick, "tick", 16*time.Millisecond, "animation tick interval")
	flag.DurationVar(&runFor, "duration", 0, "stop after this much wall-clock time (0 = run until interrupted)")
	flag.StringVar(&feedAddr, "feed", "", "listen address for the websocket position feed (e.g. :8089)")
	flag.StringVar(&metricsAddr, "metrics", "", "listen address for Prometheus metrics (e.g. :9090)")
	flag.BoolVar(&verbose, "verbose", false, "log every frame push")
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	system, err := astrosim.NewDataLoader(logger).BuildSolarSystem(astrosim.WithLogger(logger))
	if err != nil {
		log.Fatalf("could not build solar system: %s", err)
	}

	clock, err := newClock(start)
	if err != nil {
		log.Fatalf("could not understand -start: %s", err)
	}
	clock.SetScale(rate)

	renderers := []astrosim.Renderer{}
	if verbose {
		renderers = append(renderers, astrosim.NewLogRenderer(logger))
	}
	if feedAddr != "" {
		feed := astrosim.NewWebSocketFeed(logger)
		renderers = append(renderers, feed)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/feed", feed)
			logger.Log("level", "info", "subsys", "feed", "listening", feedAddr)
			if err := http.ListenAndServe(feedAddr, mux); err != nil {
				logger.Log("level", "critical", "subsys", "feed", "err", err)
			}
		}()
	}
	for _, r := range renderers {
		for _, b := range system.Bodies() {
			r.AddBody(b)
		}
	}

	var metrics *MetricsCollector
	if metricsAddr != "" {
		metrics = NewMetricsCollector(
			func() float64 { return float64(system.Propagator().ConvergenceWarnings()) },
			func() float64 { return float64(len(system.Bodies())) },
		)
		go func() {
			logger.Log("level", "info", "subsys", "metrics", "listening", metricsAddr)
			if err := metrics.ServeMetrics(metricsAddr); err != nil {
				logger.Log("level", "critical", "subsys", "metrics", "err", err)
			}
		}()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	var deadline <-chan time.Time
	if runFor > 0 {
		deadline = time.After(runFor)
	}

	logger.Log("level", "info", "subsys", "driver", "status", "started",
		"jd", clock.JD(), "date", clock.Date().Format(dateFormat), "rate", rate, "tick", tick)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	// Ticks advance by measured wall time, not the nominal interval, so the
	// simulated rate holds even when a tick is delivered late.
	lastTick := time.Now()
	for {
		select {
		case now := <-ticker.C:
			began := time.Now()
			jd := clock.Tick(now.Sub(lastTick))
			lastTick = now
			if err := system.AdvanceTo(jd); err != nil {
				logger.Log("level", "critical", "subsys", "driver", "err", err)
				continue
			}
			for _, r := range renderers {
				astrosim.PushFrame(r, system)
			}
			if metrics != nil {
				metrics.RecordTick(time.Since(began))
			}
		case <-deadline:
			logger.Log("level", "info", "subsys", "driver", "status", "finished", "jd", clock.JD())
			return
		case s := <-sig:
			logger.Log("level", "info", "subsys", "driver", "status", "interrupted", "signal", fmt.Sprint(s), "jd", clock.JD())
			return
		}
	}
}

// newClock accepts either a formatted date or a raw Julian date.
func newClock(start string) (*astrosim.TimeManager, error) {
	if start == "" {
		return astrosim.NewTimeManager(time.Now()), nil
	}
	if jd, err := strconv.ParseFloat(start, 64); err == nil {
		return astrosim.NewTimeManagerJD(jd)
	}
	dt, err := time.Parse(dateFormat, start)
	if err != nil {
		return nil, err
	}
	return astrosim.NewTimeManager(dt), nil
}
