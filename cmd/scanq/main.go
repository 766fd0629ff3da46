// Command scanq counts lines of a log file containing a search term, using a
// fixed worker pool fed through a bounded queue. SIGINT or SIGTERM stops the
// run cooperatively and reports the partial counts accumulated so far.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/scanq"
	"github.com/ygrebnov/scanq/metrics"
)

type fileConfig struct {
	Workers     int    `yaml:"workers"`
	Capacity    int    `yaml:"capacity"`
	File        string `yaml:"file"`
	Term        string `yaml:"term"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func loadConfig(path string, target *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "optional YAML config file")
		workers     = flag.Int("workers", 0, "number of worker goroutines")
		capacity    = flag.Int("capacity", 0, "queue capacity")
		file        = flag.String("file", "", "log file to scan")
		term        = flag.String("term", "", "search term")
		metricsAddr = flag.String("metrics", "", "optional address to serve Prometheus metrics on")
	)
	flag.Parse()

	cfg := fileConfig{Workers: 4, Capacity: 64}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			slog.Error("config load failed", "error", err)
			return 1
		}
	}

	// Flags override config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "capacity":
			cfg.Capacity = *capacity
		case "file":
			cfg.File = *file
		case "term":
			cfg.Term = *term
		case "metrics":
			cfg.MetricsAddr = *metricsAddr
		}
	})

	if cfg.Workers < 1 || cfg.Capacity < 1 {
		slog.Error("workers and capacity must be positive integers",
			"workers", cfg.Workers, "capacity", cfg.Capacity)
		return 1
	}
	if cfg.File == "" || cfg.Term == "" {
		slog.Error("both -file and -term are required")
		flag.Usage()
		return 1
	}

	var provider metrics.Provider = metrics.NewBasicProvider()
	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		provider = metrics.NewPrometheusProvider(registry)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	scanner, err := scanq.New[string](
		scanq.WithWorkers(cfg.Workers),
		scanq.WithQueueCapacity(cfg.Capacity),
		scanq.WithMetrics(provider),
	)
	if err != nil {
		slog.Error("scanner construction failed", "error", err)
		return 1
	}

	f, err := os.Open(cfg.File)
	if err != nil {
		slog.Error("open failed", "file", cfg.File, "error", err)
		return 1
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines := scanq.Lines(f)
	res, err := scanner.Run(ctx, lines, scanq.Contains(cfg.Term))
	if err != nil {
		slog.Error("run failed", "error", err)
		return 1
	}
	if readErr := lines.Err(); readErr != nil {
		slog.Error("read failed", "file", cfg.File, "error", readErr)
		return 1
	}

	for id, n := range res.PerWorker {
		slog.Info("worker finished", "worker", id, "matches", n)
	}
	if res.Interrupted {
		slog.Warn("run interrupted, counts are partial",
			"unconsumed", len(res.Unconsumed))
	}

	fmt.Printf("Total matches found: %d\n", res.Total)
	return 0
}
