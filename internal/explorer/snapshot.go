package explorer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/observable"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
)

// snapshot is everything the tabs render for one set of options.
type snapshot struct {
	descriptor process.Descriptor
	lepton     string
	options    options.Options

	formFactors []formfactor.Point
	summary     []observable.Result

	curveName string
	curveVar  string
	curve     []observable.Sample
	curveErr  error

	diagnostics []formfactor.Diagnostic
	diagErr     error
	diagDone    bool
}

func (s snapshot) result(name string) (observable.Result, bool) {
	for _, r := range s.summary {
		if r.Observable.Name == name {
			return r, true
		}
	}
	return observable.Result{}, false
}

type request struct {
	params  *params.Parameters
	options options.Options
	points  int
	curve   string
	workers int
	logger  *zap.Logger
}

// evaluate builds the channel and computes the form factors, the integrated
// observables and the selected curve. Only configuration errors and
// cancellation fail the whole snapshot.
func evaluate(ctx context.Context, req request) (snapshot, error) {
	d, err := observable.New(req.params, req.options)
	if err != nil {
		return snapshot{}, err
	}
	snap := snapshot{
		descriptor: d.Descriptor(),
		lepton:     req.options.Value(options.KeyLepton),
		options:    req.options,
		curveName:  req.curve,
	}
	ps := d.PhaseSpace()
	snap.formFactors = formfactor.Tabulate(d.FormFactors(), observable.Grid(ps.Min, ps.Max, req.points))

	opts := []observable.CurveOption{observable.WithLogger(req.logger), observable.WithWorkers(req.workers)}
	snap.summary, err = d.Summary(ctx, opts...)
	if err != nil {
		return snapshot{}, err
	}

	o, err := observable.Lookup(req.curve)
	if err != nil {
		snap.curveErr = err
		return snap, nil
	}
	lo, hi := o.Domain(d)
	snap.curveVar = o.Variable
	snap.curve, err = d.Curve(ctx, req.curve, observable.Grid(lo, hi, req.points), opts...)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return snapshot{}, err
		}
		snap.curveErr = err
	}
	return snap, nil
}

// evaluateDiagnostics runs the D -> pi sum rule independently of the
// selected channel.
func evaluateDiagnostics(p *params.Parameters, o options.Options) ([]formfactor.Diagnostic, error) {
	l, err := formfactor.NewLCSR(p, o, nil)
	if err != nil {
		return nil, err
	}
	return l.Diagnostics(), nil
}
