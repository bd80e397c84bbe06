package params

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/errs"
)

func TestParameterObservesSet(t *testing.T) {
	p := Defaults()
	u := NewUser()
	x, err := p.Use("mass::D_d", u)
	require.NoError(t, err)
	assert.Equal(t, 1.86965, x.Value())

	require.NoError(t, p.Set("mass::D_d", 1.865))
	assert.Equal(t, 1.865, x.Value())
	assert.Equal(t, []string{"mass::D_d"}, u.Used())
}

func TestUnknownNamesAreConfigurationErrors(t *testing.T) {
	p := Defaults()
	_, err := p.Get("mass::B_d")
	require.ErrorIs(t, err, errs.ErrConfiguration)
	require.ErrorIs(t, p.Set("mass::B_d", 5.279), errs.ErrConfiguration)
	_, err = p.Use("mass::B_d", nil)
	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestCloneIsIndependent(t *testing.T) {
	p := Defaults()
	c := p.Clone()
	require.NoError(t, c.Set("QCD::r_vac", 0.5))
	v, err := p.Get("QCD::r_vac")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	if diff := cmp.Diff(p.Names(), c.Names()); diff != "" {
		t.Fatalf("names differ (-orig +clone):\n%s", diff)
	}
}

func TestBinderKeepsFirstError(t *testing.T) {
	u := NewUser()
	b := NewBinder(Defaults(), u)
	b.Bind("mass::c(MSbar)")
	b.Bind("no::such")
	b.Bind("mass::D_u")
	require.ErrorIs(t, b.Err(), errs.ErrConfiguration)
	assert.Contains(t, b.Err().Error(), "no::such")
	assert.Equal(t, []string{"mass::c(MSbar)"}, u.Used())
}

func TestUserInclude(t *testing.T) {
	a, b := NewUser(), NewUser()
	a.Uses("x")
	b.Uses("y")
	b.Uses("x")
	a.Include(b)
	a.Include(a)
	a.Include(nil)
	assert.Equal(t, []string{"x", "y"}, a.Used())
}

func TestWilsonCoefficientDefaults(t *testing.T) {
	p := Defaults()
	v, err := p.Get("dcmunumu::Re{cVL}")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	v, err = p.Get("sctaunutau::Im{cT}")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestConcurrentReads(t *testing.T) {
	p := Defaults()
	x, err := p.Use("mass::K_u", nil)
	require.NoError(t, err)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = x.Value()
			}
		}()
	}
	wg.Wait()
}
