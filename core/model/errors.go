package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInputShape reports series of the wrong length or misaligned hours.
	ErrInvalidInputShape = errors.New("invalid input shape")
	// ErrInvalidConfig reports an inadmissible storage configuration.
	ErrInvalidConfig = errors.New("invalid storage config")
	// ErrNegativeValue reports a negative or non-finite power reading.
	ErrNegativeValue = errors.New("negative value")
	// ErrHydrogenOverflow is returned by the error tank policy when production
	// would exceed the hydrogen capacity.
	ErrHydrogenOverflow = errors.New("hydrogen tank overflow")
	// ErrHydrogenDepleted is returned by the error tank policy when the fuel
	// cell would draw the tank below zero.
	ErrHydrogenDepleted = errors.New("hydrogen tank depleted")
)

// ValidationError describes a rejected input. It unwraps to one of the
// sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Kind  error
	Field string
	// Hour is the offending hour, or -1 when the error is not tied to one.
	Hour  int
	Value float64
	Msg   string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Msg != "":
		return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Msg)
	case e.Hour >= 0:
		return fmt.Sprintf("%v: %s at hour %d: %g", e.Kind, e.Field, e.Hour, e.Value)
	default:
		return fmt.Sprintf("%v: %s: %g", e.Kind, e.Field, e.Value)
	}
}

func (e *ValidationError) Unwrap() error { return e.Kind }
