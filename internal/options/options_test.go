package options

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
)

func TestParse(t *testing.T) {
	o, err := Parse([]string{"l=tau", " Q = d ", "form-factors=KKMO2009"})
	require.NoError(t, err)
	want := Options{"l": "tau", "Q": "d", "form-factors": "KKMO2009"}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Q=d,form-factors=KKMO2009,l=tau", o.String())

	_, err = Parse([]string{"noequals"})
	require.Error(t, err)
}

func TestValueFallsBackToDefaults(t *testing.T) {
	var o Options
	assert.Equal(t, "mu", o.Value(KeyLepton))
	assert.Equal(t, "s", o.Value(KeyHeavy))
	assert.Equal(t, "BSZ2015", o.Value(KeyFormFactors))
	assert.Equal(t, "e", o.With(KeyLepton, "e").Value(KeyLepton))
}

func TestChoice(t *testing.T) {
	o := Options{KeyLepton: "nu"}
	_, err := o.Choice(KeyLepton, []string{"e", "mu", "tau"}, "mu")
	require.ErrorIs(t, err, errs.ErrConfiguration)

	v, err := Options{}.Choice(KeyLepton, []string{"e", "mu", "tau"}, "mu")
	require.NoError(t, err)
	assert.Equal(t, "mu", v)
}

func TestBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
		fail  bool
	}{
		{value: "1", want: true},
		{value: "0", want: false},
		{value: "true", want: true},
		{value: "Off", want: false},
		{value: "maybe", fail: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := Options{KeyRescaleBorel: tt.value}.Bool(KeyRescaleBorel, true)
			if tt.fail {
				require.ErrorIs(t, err, errs.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	got, err := Options{}.Bool(KeyCPConjugate, false)
	require.NoError(t, err)
	assert.False(t, got)
}
