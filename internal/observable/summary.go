package observable

import (
	"context"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is an integrated observable evaluated over its whole domain.
type Result struct {
	Observable Observable
	Lo, Hi     float64
	Value      float64
	Err        error
}

// Summary evaluates every integrated observable over its full domain.
// Failures are kept per result; only a canceled context aborts.
func (d *DToPLNu) Summary(ctx context.Context, opts ...CurveOption) ([]Result, error) {
	cfg := curveConfig{logger: zap.NewNop(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}

	var obs []Observable
	for _, o := range All() {
		if o.Kind == Integrated {
			obs = append(obs, o)
		}
	}
	out := make([]Result, len(obs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, o := range obs {
		i, o := i, o
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lo, hi := o.Domain(d)
			v, err := o.Over(d, lo, hi)
			if err != nil {
				cfg.logger.Debug("summary entry failed", zap.String("observable", o.Name), zap.Error(err))
				v = math.NaN()
			}
			out[i] = Result{Observable: o, Lo: lo, Hi: hi, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
