package errs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("failed to build: %w", Configf("Q", "b", "unsupported transition"))
	require.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrNumerical)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Q", cerr.Option)
	assert.Contains(t, err.Error(), `Q="b"`)
}

func TestNumericalErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("maximum number of subdivisions reached")
	err := &NumericalError{Kernel: "F_nlo_tw2", Point: 0.5, Bound: 4.3, Err: cause}

	require.ErrorIs(t, err, ErrNumerical)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upper bound 4.3")

	noBound := &NumericalError{Kernel: "amplitudes", Point: 1, Bound: math.NaN()}
	assert.NotContains(t, noBound.Error(), "upper bound")
}

func TestFinite(t *testing.T) {
	v, err := Finite("f_D", 0, 0.19)
	require.NoError(t, err)
	assert.Equal(t, 0.19, v)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Finite("f_D", 0, bad)
		require.ErrorIs(t, err, ErrNumerical)
		require.ErrorIs(t, err, ErrNotFinite)
		assert.NotContains(t, err.Error(), "upper bound")
	}
}

func TestClassify(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "config", err: Configf("l", "x", "unknown lepton"), want: CodeConfig},
		{name: "numerical", err: fmt.Errorf("wrap: %w", &NumericalError{Kernel: "k", Bound: math.NaN()}), want: CodeNumerical},
		{name: "cancel", err: context.Canceled, want: CodeCancel},
		{name: "io", err: statErr, want: CodeIO},
		{name: "other", err: errors.New("boom"), want: CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
