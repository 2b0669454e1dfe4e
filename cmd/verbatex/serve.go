package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"verbatex"
)

// duration decodes YAML strings like "15s" or "1m30s".
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// ServeConfig configures the HTTP rendering service.
type ServeConfig struct {
	Listen           string   `yaml:"listen"`
	ReadTimeout      duration `yaml:"read_timeout"`
	WriteTimeout     duration `yaml:"write_timeout"`
	IdleTimeout      duration `yaml:"idle_timeout"`
	MaxBodyBytes     int64    `yaml:"max_body_bytes"`
	MetricsNamespace string   `yaml:"metrics_namespace"`
}

func defaultServeConfig() ServeConfig {
	return ServeConfig{
		Listen:           ":8080",
		ReadTimeout:      duration(15 * time.Second),
		WriteTimeout:     duration(15 * time.Second),
		IdleTimeout:      duration(60 * time.Second),
		MaxBodyBytes:     1 << 20,
		MetricsNamespace: "verbatex",
	}
}

func loadServeConfig(path string) (ServeConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// serveMetrics holds the service's Prometheus instruments on a private
// registry.
type serveMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

func newServeMetrics(namespace string) *serveMetrics {
	m := &serveMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_requests_total",
				Help:      "Render requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent rendering a single expression",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

type renderRequest struct {
	Expression string `json:"expression"`
}

type renderResponse struct {
	LaTeX string `json:"latex,omitempty"`
	Error string `json:"error,omitempty"`
}

func runServe(configPath, listenOverride string) error {
	cfg, err := loadServeConfig(configPath)
	if err != nil {
		return err
	}
	if listenOverride != "" {
		cfg.Listen = listenOverride
	}

	mux := newServeMux(cfg, newServeMetrics(cfg.MetricsNamespace))

	log.Printf("verbatex service listening on %s", cfg.Listen)
	log.Printf("  POST /render  — render an expression")
	log.Printf("  GET  /health  — health check")
	log.Printf("  GET  /metrics — Prometheus metrics")

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout),
		WriteTimeout:      time.Duration(cfg.WriteTimeout),
		IdleTimeout:       time.Duration(cfg.IdleTimeout),
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newServeMux(cfg ServeConfig, metrics *serveMetrics) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /render — render one expression
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in /render: %v\n%s", rec, string(debug.Stack()))
				metrics.requests.WithLabelValues("panic").Inc()
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req renderRequest
		if err := dec.Decode(&req); err != nil {
			metrics.requests.WithLabelValues("bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, renderResponse{Error: err.Error()})
			return
		}

		start := time.Now()
		latex, err := verbatex.Render(req.Expression)
		metrics.duration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.requests.WithLabelValues("error").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, renderResponse{Error: err.Error()})
			return
		}
		metrics.requests.WithLabelValues("ok").Inc()
		writeJSON(w, http.StatusOK, renderResponse{LaTeX: latex})
	})

	// GET /health — liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	// GET /metrics — Prometheus scrape endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
