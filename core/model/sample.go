package model

import "fmt"

// HoursPerDay is the length of a simulated horizon.
const HoursPerDay = 24

// HourlySample holds the generation and load readings for one hour of the day.
type HourlySample struct {
	Hour   int     `json:"hour" yaml:"hour"`
	PVMW   float64 `json:"pv_mw" yaml:"pv_mw"`
	WindMW float64 `json:"wind_mw" yaml:"wind_mw"`
	LoadMW float64 `json:"load_mw" yaml:"load_mw"`
}

// Generation returns the combined renewable output of the hour.
func (s HourlySample) Generation() float64 {
	return s.PVMW + s.WindMW
}

// Series is the column-oriented form of a day: three aligned hourly series.
type Series struct {
	PV   []float64 `json:"pv" yaml:"pv"`
	Wind []float64 `json:"wind" yaml:"wind"`
	Load []float64 `json:"load" yaml:"load"`
}

// Samples zips the series into hourly samples. All three series must have
// the same length; the horizon length itself is checked by the simulator.
func (s Series) Samples() ([]HourlySample, error) {
	if len(s.PV) != len(s.Wind) || len(s.PV) != len(s.Load) {
		return nil, &ValidationError{
			Kind:  ErrInvalidInputShape,
			Field: "series",
			Hour:  -1,
			Msg:   fmt.Sprintf("mismatched lengths pv=%d wind=%d load=%d", len(s.PV), len(s.Wind), len(s.Load)),
		}
	}
	out := make([]HourlySample, len(s.PV))
	for h := range s.PV {
		out[h] = HourlySample{Hour: h, PVMW: s.PV[h], WindMW: s.Wind[h], LoadMW: s.Load[h]}
	}
	return out, nil
}

// Constant builds a series repeating the same values for every hour of the day.
func Constant(pv, wind, load float64) Series {
	s := Series{
		PV:   make([]float64, HoursPerDay),
		Wind: make([]float64, HoursPerDay),
		Load: make([]float64, HoursPerDay),
	}
	for h := 0; h < HoursPerDay; h++ {
		s.PV[h] = pv
		s.Wind[h] = wind
		s.Load[h] = load
	}
	return s
}
