// Package errs defines the error taxonomy shared by the numerical packages.
package errs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
)

var (
	// ErrConfiguration marks errors raised while building an evaluator from options.
	ErrConfiguration = errors.New("configuration error")
	// ErrNumerical marks quadrature failures and non-finite kernel values.
	ErrNumerical = errors.New("numerical error")

	// Causes carried by a NumericalError that did not come from quadrature.
	ErrNotFinite       = errors.New("value is not finite")
	ErrNotPositive     = errors.New("value is not positive")
	ErrZeroDenominator = errors.New("denominator is zero")
	ErrEmptyRange      = errors.New("range is empty")
)

// ConfigurationError reports an option or variant that cannot be resolved.
type ConfigurationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Option != "" {
		fmt.Fprintf(&b, ": %s=%q", e.Option, e.Value)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Configf builds a ConfigurationError for option with a formatted reason.
func Configf(option, value, format string, args ...any) error {
	return &ConfigurationError{Option: option, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// NumericalError reports a failed kernel evaluation at a kinematic point.
type NumericalError struct {
	Kernel string
	// Point is the momentum transfer q2 (GeV^2) at which the kernel failed.
	Point float64
	// Bound is the upper integration bound of the failing quadrature, NaN when
	// the failure did not come from an integral.
	Bound float64
	Err   error
}

func (e *NumericalError) Error() string {
	msg := fmt.Sprintf("numerical error in %s at q2=%g", e.Kernel, e.Point)
	if !math.IsNaN(e.Bound) {
		msg += fmt.Sprintf(" (upper bound %g)", e.Bound)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrNumerical.
func (e *NumericalError) Is(target error) bool {
	return target == ErrNumerical
}

func (e *NumericalError) Unwrap() error {
	return e.Err
}

// Numerical builds a NumericalError for kernel at q2 that is not tied to an
// integration bound.
func Numerical(kernel string, q2 float64, cause error) error {
	return &NumericalError{Kernel: kernel, Point: q2, Bound: math.NaN(), Err: cause}
}

// Finite returns v, or a NumericalError with ErrNotFinite when v is NaN or
// infinite.
func Finite(kernel string, q2, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Numerical(kernel, q2, ErrNotFinite)
	}
	return v, nil
}

// Code is a coarse error class used for exit status and log fields.
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeConfig    Code = "config"
	CodeNumerical Code = "numerical"
	CodeCancel    Code = "cancel"
	CodeIO        Code = "io"
)

// Classify maps err onto a Code using sentinels and error types only.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, ErrConfiguration) {
		return CodeConfig
	}
	if errors.Is(err, ErrNumerical) {
		return CodeNumerical
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}
