package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/infra/logger"
	"github.com/kilianp07/h2grid/infra/metrics"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <file|dir>...",
	Short: "Dispatch scenarios and expose the results as Prometheus metrics",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to metrics.prometheus_addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := serveAddr
	if addr == "" {
		addr = cfg.Metrics.PrometheusAddr
	}

	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		return fmt.Errorf("prom sink: %w", err)
	}
	sink := prom
	if len(cfg.Metrics.Sinks) > 0 {
		extra, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return fmt.Errorf("metrics sink: %w", err)
		}
		sink = coremetrics.NewMultiSink(prom, extra)
	}

	scs, err := loadScenarios(cfg, args)
	if err != nil {
		return err
	}
	runner, err := newRunner(cfg, "serve", sink)
	if err != nil {
		return err
	}
	out, err := runBatchScenarios(ctx, runner, scs)
	if err != nil {
		return err
	}
	if err := reportBatch(cmd.OutOrStdout(), scs, out, false); err != nil {
		logger.New("serve").Warnf("%v", err)
	}

	logger.New("serve").Infof("serving metrics on %s/metrics", addr)
	return metrics.StartPromServer(ctx, addr, reg)
}
