package scenarios

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/h2grid/core/microgrid"
	"github.com/kilianp07/h2grid/core/model"
)

const tolerance = 0.005

var errorKinds = map[string]error{
	"shape":    model.ErrInvalidInputShape,
	"config":   model.ErrInvalidConfig,
	"negative": model.ErrNegativeValue,
	"overflow": model.ErrHydrogenOverflow,
	"depleted": model.ErrHydrogenDepleted,
}

// Check compares an outcome with the scenario expectations and returns every
// mismatch joined in one error.
func Check(sc *Scenario, o microgrid.Outcome) error {
	exp := sc.Expected
	if exp.Error != "" {
		want, ok := errorKinds[exp.Error]
		if !ok {
			return fmt.Errorf("scenario %s: unknown expected error %q", sc.Name, exp.Error)
		}
		if !errors.Is(o.Err, want) {
			return fmt.Errorf("scenario %s: expected %v, got %v", sc.Name, want, o.Err)
		}
		return nil
	}
	if o.Err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, o.Err)
	}

	var errs []error
	sum := o.Result.Summary
	if exp.Status != "" && exp.Status != sum.Status.String() {
		errs = append(errs, fmt.Errorf("status %s, want %s", sum.Status, exp.Status))
	}
	for _, c := range []struct {
		name string
		want *float64
		got  float64
	}{
		{"final battery soc", exp.FinalBatterySoCMWh, sum.FinalBatterySoCMWh},
		{"final hydrogen soc", exp.FinalHydrogenSoCMWh, sum.FinalHydrogenSoCMWh},
		{"unserved", exp.UnservedMWh, sum.UnservedMWh},
		{"curtailed", exp.CurtailedMWh, sum.CurtailedMWh},
	} {
		if c.want != nil && math.Abs(*c.want-c.got) > tolerance {
			errs = append(errs, fmt.Errorf("%s %.2f, want %.2f", c.name, c.got, *c.want))
		}
	}
	hours := make([]int, 0, len(exp.Actions))
	for h := range exp.Actions {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		if h < 0 || h >= len(o.Result.Records) {
			errs = append(errs, fmt.Errorf("hour %d out of range", h))
			continue
		}
		if got := o.Result.Records[h].Action.String(); got != exp.Actions[h] {
			errs = append(errs, fmt.Errorf("hour %d action %q, want %q", h, got, exp.Actions[h]))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario %s: %w", sc.Name, errors.Join(errs...))
	}
	return nil
}
