// Package params holds the named numerical inputs of the calculation.
package params

import (
	"fmt"
	"sort"
	"sync"

	"github.com/verte-zerg/semilep/internal/errs"
)

// Parameters is a registry of named values. Reads are safe for concurrent use;
// Set is expected to happen between evaluations.
type Parameters struct {
	mu     sync.RWMutex
	values map[string]float64
}

// New returns a registry holding a copy of values.
func New(values map[string]float64) *Parameters {
	p := &Parameters{values: make(map[string]float64, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// Defaults returns a registry filled with the default parameter set.
func Defaults() *Parameters {
	return New(defaults)
}

// Get returns the value of name.
func (p *Parameters) Get(name string) (float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[name]
	if !ok {
		return 0, errs.Configf("parameter", name, "unknown parameter")
	}
	return v, nil
}

// Set overrides the value of an existing parameter.
func (p *Parameters) Set(name string, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.values[name]; !ok {
		return errs.Configf("parameter", name, "unknown parameter")
	}
	p.values[name] = value
	return nil
}

// Clone returns an independent copy.
func (p *Parameters) Clone() *Parameters {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return New(p.values)
}

// Names returns the sorted parameter names.
func (p *Parameters) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Use resolves name into a handle and records the dependency on u.
// A nil user is allowed.
func (p *Parameters) Use(name string, u *User) (Parameter, error) {
	p.mu.RLock()
	_, ok := p.values[name]
	p.mu.RUnlock()
	if !ok {
		return Parameter{}, errs.Configf("parameter", name, "unknown parameter")
	}
	if u != nil {
		u.Uses(name)
	}
	return Parameter{registry: p, name: name}, nil
}

// Parameter reads one registry entry. It observes later Set calls.
type Parameter struct {
	registry *Parameters
	name     string
}

// Value returns the current value.
func (x Parameter) Value() float64 {
	x.registry.mu.RLock()
	defer x.registry.mu.RUnlock()
	return x.registry.values[x.name]
}

// Name returns the parameter name.
func (x Parameter) Name() string {
	return x.name
}

func (x Parameter) String() string {
	return fmt.Sprintf("%s=%g", x.name, x.Value())
}

// Binder resolves a batch of parameter handles and keeps the first error, so
// constructors can bind many names without checking every call.
type Binder struct {
	p    *Parameters
	user *User
	err  error
}

// NewBinder returns a binder reading from p and recording on u.
func NewBinder(p *Parameters, u *User) *Binder {
	return &Binder{p: p, user: u}
}

// Bind resolves name. After the first failure it returns zero handles.
func (b *Binder) Bind(name string) Parameter {
	if b.err != nil {
		return Parameter{}
	}
	x, err := b.p.Use(name, b.user)
	if err != nil {
		b.err = err
	}
	return x
}

// Err returns the first resolution error.
func (b *Binder) Err() error {
	return b.err
}

// User records the parameter names a component depends on.
type User struct {
	mu    sync.Mutex
	names map[string]struct{}
}

// NewUser returns an empty dependency set.
func NewUser() *User {
	return &User{names: map[string]struct{}{}}
}

// Uses records name.
func (u *User) Uses(name string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.names[name] = struct{}{}
}

// Include merges the dependencies of other.
func (u *User) Include(other *User) {
	if other == nil || other == u {
		return
	}
	for _, name := range other.Used() {
		u.Uses(name)
	}
}

// Used returns the recorded names in sorted order.
func (u *User) Used() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	names := make([]string, 0, len(u.names))
	for k := range u.names {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
