package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/h2grid/config"
	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/qa/scenarios"
)

var batchCheck bool

var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>...",
	Short: "Dispatch many independent scenarios concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchCheck, "check", false, "verify each scenario against its expectations")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scs, err := loadScenarios(cfg, args)
	if err != nil {
		return err
	}
	runner, err := newRunner(cfg, "batch", nil)
	if err != nil {
		return err
	}
	out, err := runBatchScenarios(ctx, runner, scs)
	if err != nil {
		return err
	}
	return reportBatch(cmd.OutOrStdout(), scs, out, batchCheck)
}

func loadScenarios(cfg *config.Config, paths []string) ([]*scenarios.Scenario, error) {
	var scs []*scenarios.Scenario
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if st.IsDir() {
			found, err := scenarios.LoadDirWith(p, cfg.Storage)
			if err != nil {
				return nil, err
			}
			scs = append(scs, found...)
			continue
		}
		sc, err := scenarios.LoadWith(p, cfg.Storage)
		if err != nil {
			return nil, err
		}
		scs = append(scs, sc)
	}
	if len(scs) == 0 {
		return nil, errors.New("no scenario found")
	}
	return scs, nil
}

func runBatchScenarios(ctx context.Context, runner *microgrid.Runner, scs []*scenarios.Scenario) ([]microgrid.Outcome, error) {
	runs := make([]microgrid.Scenario, len(scs))
	for i, sc := range scs {
		r, err := sc.ToRun()
		if err != nil {
			return nil, err
		}
		runs[i] = r
	}
	return runner.Run(ctx, runs)
}

func reportBatch(w io.Writer, scs []*scenarios.Scenario, out []microgrid.Outcome, check bool) error {
	var failed int
	for i, o := range out {
		switch {
		case check:
			if err := scenarios.Check(scs[i], o); err != nil {
				failed++
				fmt.Fprintf(w, "FAIL %s: %v\n", o.Scenario, err)
			} else {
				fmt.Fprintf(w, "ok   %s\n", o.Scenario)
			}
		case o.Err != nil:
			failed++
			fmt.Fprintf(w, "%-24s rejected: %v\n", o.Scenario, o.Err)
		default:
			s := o.Result.Summary
			fmt.Fprintf(w, "%-24s %-12s renewable %7.2f MWh  unserved %6.2f MWh  h2 %7.2f MWh\n",
				o.Scenario, s.Status, s.TotalRenewableMWh, s.UnservedMWh, s.FinalHydrogenSoCMWh)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(out))
	}
	return nil
}
