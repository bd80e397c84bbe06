package process

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
)

func TestResolveTable(t *testing.T) {
	tests := []struct {
		q, spectator, isospin string
		want                  Descriptor
	}{
		{"d", "u", "1", Descriptor{Process: "D->pi", Parent: "D_u", Daughter: "pi^-", IsospinFactor: 1 / math.Sqrt2, Heavy: QuarkD, Spectator: SpectatorU}},
		{"d", "d", "1", Descriptor{Process: "D->pi", Parent: "D_d", Daughter: "pi^0", IsospinFactor: 1, Heavy: QuarkD, Spectator: SpectatorD}},
		{"d", "s", "1/2", Descriptor{Process: "D_s->K", Parent: "D_s", Daughter: "K_u", IsospinFactor: 1, Heavy: QuarkD, Spectator: SpectatorS}},
		{"s", "d", "1", Descriptor{Process: "D->K", Parent: "D_d", Daughter: "K_d", IsospinFactor: 1, Heavy: QuarkS, Spectator: SpectatorD}},
	}
	for _, tt := range tests {
		t.Run(tt.q+tt.spectator+tt.isospin, func(t *testing.T) {
			got, err := ParseKey(tt.q, tt.spectator, tt.isospin)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveRejectsUnsupportedTriples(t *testing.T) {
	for _, k := range []Key{
		{QuarkD, SpectatorU, IsospinZero},
		{QuarkD, SpectatorS, IsospinOne},
		{QuarkS, SpectatorS, IsospinZero},
	} {
		_, err := Resolve(k)
		require.ErrorIs(t, err, errs.ErrConfiguration, "key %s", k)
		assert.Contains(t, err.Error(), k.String())
	}
}

func TestParseRejectsUnknownLabels(t *testing.T) {
	_, err := ParseKey("b", "d", "1")
	require.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = ParseKey("d", "c", "1")
	require.ErrorIs(t, err, errs.ErrConfiguration)
	_, err = ParseKey("d", "d", "3/2")
	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestKeysRoundTripThroughStrings(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, 5)
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		d, err := ParseKey(k.Heavy.String(), k.Spectator.String(), k.Isospin.String())
		require.NoError(t, err)
		assert.Equal(t, k.Heavy, d.Heavy)
		assert.Equal(t, k.Spectator, d.Spectator)
	}
}
