package observable

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/semilep/internal/errs"
)

// Sample is one point of a curve.
type Sample struct {
	X     float64
	Value float64
}

type curveConfig struct {
	logger  *zap.Logger
	workers int
}

// CurveOption configures Curve.
type CurveOption func(*curveConfig)

// WithLogger sets the logger for per-point progress. The default discards.
func WithLogger(l *zap.Logger) CurveOption {
	return func(c *curveConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWorkers bounds the number of points evaluated at once.
func WithWorkers(n int) CurveOption {
	return func(c *curveConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Grid returns n points spaced evenly on [lo, hi].
func Grid(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}

// Curve evaluates the differential observable name at every point of xs.
// Points are independent and run concurrently; the first failure cancels
// the rest.
func (d *DToPLNu) Curve(ctx context.Context, name string, xs []float64, opts ...CurveOption) ([]Sample, error) {
	o, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if o.Kind != Differential {
		return nil, errs.Configf("observable", name, "curves need a differential observable")
	}

	cfg := curveConfig{logger: zap.NewNop(), workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	out := make([]Sample, len(xs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := o.At(d, x)
			if err != nil {
				cfg.logger.Debug("curve point failed",
					zap.String("observable", name),
					zap.Float64(o.Variable, x),
					zap.Error(err))
				return err
			}
			out[i] = Sample{X: x, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cfg.logger.Debug("curve evaluated",
		zap.String("observable", name),
		zap.Int("points", len(xs)),
		zap.Int("workers", cfg.workers),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}
