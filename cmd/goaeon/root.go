package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/2x3systems/goaeon/goaeon"
	"github.com/2x3systems/goaeon/libaeon/symbolic"
	"github.com/2x3systems/goaeon/libaeon/telemetry"
)

var (
	configPath  string
	metricsAddr string
	timeout     string
	archivePath string
)

var rootCmd = &cobra.Command{
	Use:   "goaeon",
	Short: "Symbolic attractor analysis of parametrized Boolean networks",
	Long: `goaeon finds and classifies the attractors of partially specified
asynchronous Boolean networks given in the .aeon text format.

Examples:
  goaeon attractors model.aeon
  goaeon reduce model.aeon --config analysis.yaml
  goaeon show runs.db`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML analysis config (see goaeon.AnalysisOpts)")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.StringVar(&timeout, "timeout", "", "stop the analysis after this duration, e.g. 90s")
	flags.StringVar(&archivePath, "archive", "", "archive the report in this badger directory")
}

// loadOpts reads the config file and applies command-line overrides.
func loadOpts() (goaeon.AnalysisOpts, error) {
	opts, err := goaeon.LoadOpts(configPath)
	if err != nil {
		return opts, err
	}
	if len(timeout) > 0 {
		if opts.Timeout, err = parseDuration(timeout); err != nil {
			return opts, err
		}
	}
	if len(archivePath) > 0 {
		opts.ArchivePath = archivePath
	}
	return opts, opts.Validate()
}

// loadGraph parses the model at pathname and builds its symbolic graph.
func loadGraph(pathname string) (*symbolic.AsyncGraph, error) {
	text, err := os.ReadFile(pathname)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model %q", pathname)
	}
	bn, err := symbolic.ParseNetwork(string(text))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing model %q", pathname)
	}
	bn.Name = pathname
	return symbolic.NewAsyncGraph(bn)
}

// startMonitor returns the Monitor for this run, serving /metrics if requested.
func startMonitor() goaeon.Monitor {
	if len(metricsAddr) == 0 {
		return nil
	}
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			klog.Warningf("metrics server stopped: %v", err)
		}
	}()
	return metrics
}

// interruptible returns a Canceller tripped by SIGINT.
func interruptible() (goaeon.Canceller, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	return goaeon.FromContext(ctx), stop
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.Wrapf(goaeon.ErrInvalidInput, "bad duration %q", s)
	}
	return d, nil
}
