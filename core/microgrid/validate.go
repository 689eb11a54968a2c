package microgrid

import (
	"fmt"
	"math"

	"github.com/kilianp07/h2grid/core/model"
)

// ValidateSamples checks that samples cover exactly one day in hour order and
// that every reading is finite and non-negative.
func ValidateSamples(samples []model.HourlySample) error {
	if len(samples) != model.HoursPerDay {
		return &model.ValidationError{
			Kind:  model.ErrInvalidInputShape,
			Field: "samples",
			Hour:  -1,
			Msg:   fmt.Sprintf("expected %d hourly samples, got %d", model.HoursPerDay, len(samples)),
		}
	}
	for i, s := range samples {
		if s.Hour != i {
			return &model.ValidationError{
				Kind:  model.ErrInvalidInputShape,
				Field: "hour",
				Hour:  i,
				Msg:   fmt.Sprintf("sample %d has hour %d", i, s.Hour),
			}
		}
		for _, f := range []struct {
			name string
			v    float64
		}{{"pv_mw", s.PVMW}, {"wind_mw", s.WindMW}, {"load_mw", s.LoadMW}} {
			if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return &model.ValidationError{Kind: model.ErrNegativeValue, Field: f.name, Hour: i, Value: f.v}
			}
		}
	}
	return nil
}
