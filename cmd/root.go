package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/h2grid/config"
	coremetrics "github.com/kilianp07/h2grid/core/metrics"
	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/infra/logger"
	_ "github.com/kilianp07/h2grid/infra/metrics"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:          "h2grid",
	Short:        "Hourly battery and hydrogen dispatch simulator",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file, or the pilot defaults when no file
// was given, and applies the log level.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunner wires the simulator, the configured metrics sinks and a logger.
func newRunner(cfg *config.Config, component string, sink coremetrics.MetricsSink) (*microgrid.Runner, error) {
	log := logger.New(component)
	if sink == nil {
		var err error
		if sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks); err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}
	sim := microgrid.New(append(cfg.Options(), microgrid.WithLogger(log))...)
	return microgrid.NewRunner(sim, sink, log, cfg.Batch.Workers), nil
}
