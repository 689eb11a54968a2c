package microgrid

import "github.com/kilianp07/h2grid/core/logger"

const (
	// DefaultRequiredMWh is the daily need of the pilot site (1.5 MW x 24 h).
	DefaultRequiredMWh = 36.0
	// DefaultMarginalRatio is the share of the need above which a day is marginal.
	DefaultMarginalRatio = 0.8
	// DisplayPrecision is the number of decimals kept in emitted records.
	DisplayPrecision = 2
)

type settings struct {
	requiredMWh   float64
	marginalRatio float64
	combinedLabel bool
	precision     int32
	log           logger.Logger
}

func defaultSettings() settings {
	return settings{
		requiredMWh:   DefaultRequiredMWh,
		marginalRatio: DefaultMarginalRatio,
		precision:     DisplayPrecision,
		log:           logger.NopLogger{},
	}
}

// Option customizes a Simulator.
type Option func(*settings)

// WithRequiredEnergy sets the daily energy need used by the summary.
func WithRequiredEnergy(mwh float64) Option {
	return func(s *settings) { s.requiredMWh = mwh }
}

// WithMarginalRatio sets the fraction of the need at which a day stops being
// insufficient.
func WithMarginalRatio(r float64) Option {
	return func(s *settings) { s.marginalRatio = r }
}

// WithCombinedSurplusLabel labels every surplus hour as
// "charging + hydrogen production", even when no hydrogen was produced.
func WithCombinedSurplusLabel() Option {
	return func(s *settings) { s.combinedLabel = true }
}

// WithPrecision overrides the number of decimals of emitted records.
func WithPrecision(decimals int32) Option {
	return func(s *settings) { s.precision = decimals }
}

// WithLogger attaches a logger. A nil logger is ignored.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}
