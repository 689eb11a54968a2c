package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
	"github.com/kilianp07/h2grid/pkg/export"
	"github.com/kilianp07/h2grid/qa/scenarios"
)

var (
	simFormat string
	simCheck  bool
	simPV     float64
	simWind   float64
	simLoad   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [scenario.yaml]",
	Short: "Dispatch one day and print the hourly records",
	Long: "Dispatch one day read from a scenario file, or a constant day built from\n" +
		"--pv, --wind and --load when no file is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "table", "output format: table, csv or json")
	simulateCmd.Flags().BoolVar(&simCheck, "check", false, "fail when the result differs from the scenario expectations")
	simulateCmd.Flags().Float64Var(&simPV, "pv", 0, "constant PV generation in MW")
	simulateCmd.Flags().Float64Var(&simWind, "wind", 0, "constant wind generation in MW")
	simulateCmd.Flags().Float64Var(&simLoad, "load", 1.5, "constant load in MW")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc := &scenarios.Scenario{
		Name:     "constant",
		Storage:  cfg.Storage,
		Constant: &scenarios.ConstantDef{PV: simPV, Wind: simWind, Load: simLoad},
	}
	if len(args) == 1 {
		if sc, err = scenarios.LoadWith(args[0], cfg.Storage); err != nil {
			return err
		}
	}
	run, err := sc.ToRun()
	if err != nil {
		return err
	}
	runner, err := newRunner(cfg, "simulate", nil)
	if err != nil {
		return err
	}
	out, err := runner.Run(context.Background(), []microgrid.Scenario{run})
	if err != nil {
		return err
	}
	o := out[0]
	if simCheck {
		return scenarios.Check(sc, o)
	}
	if o.Err != nil {
		return o.Err
	}
	return writeResult(cmd.OutOrStdout(), simFormat, o.Result)
}

func writeResult(w io.Writer, format string, res microgrid.Result) error {
	switch format {
	case "json":
		return export.WriteJSON(w, res)
	case "csv":
		return export.WriteCSV(w, res.Records)
	case "table":
		return writeTable(w, res)
	default:
		return fmt.Errorf("unknown format %s", format)
	}
}

func writeTable(w io.Writer, res microgrid.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "hour\tgen\tsurplus\tbat+\tbat-\tfc\th2+\tbat soc\th2 soc\tunserved\taction\t")
	for _, r := range res.Records {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t\n",
			r.Hour, r.GenerationMW, r.SurplusMW, r.BatteryChargeMWh, r.BatteryDischargeMWh,
			r.FuelCellDischargeMWh, r.HydrogenProducedMWh, r.BatterySoCMWh, r.HydrogenSoCMWh,
			r.UnservedMWh, r.Action)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writeSummary(w, res.Summary)
}

func writeSummary(w io.Writer, s model.DaySummary) error {
	_, err := fmt.Fprintf(w,
		"\nrenewable %.2f MWh (pv %.2f, wind %.2f) vs required %.2f MWh: %s\n"+
			"unserved %.2f MWh, curtailed %.2f MWh, fuel cell %d h\n"+
			"battery %s, hydrogen tank %s\n",
		s.TotalRenewableMWh, s.TotalPVMWh, s.TotalWindMWh, s.RequiredMWh, s.Status,
		s.UnservedMWh, s.CurtailedMWh, s.FuelCellHours,
		s.BatteryRating, s.HydrogenRating)
	return err
}
