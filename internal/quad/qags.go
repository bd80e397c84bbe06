// Package quad implements globally adaptive Gauss-Kronrod quadrature with
// epsilon-algorithm extrapolation (the QUADPACK QAGS scheme).
package quad

import (
	"errors"
	"fmt"
	"math"
)

const (
	dblEpsilon = 2.2204460492503131e-16
	dblMin     = 2.2250738585072014e-308
	dblMax     = math.MaxFloat64
)

var (
	ErrInvalidTolerance = errors.New("tolerance cannot be achieved with given epsabs and epsrel")
	ErrMaxIterations    = errors.New("maximum number of subdivisions reached")
	ErrRoundoff         = errors.New("roundoff error prevents tolerance from being achieved")
	ErrSingular         = errors.New("bad integrand behavior found in the integration interval")
	ErrExtrapolation    = errors.New("roundoff error detected in the extrapolation table")
	ErrDivergent        = errors.New("integral is divergent, or slowly convergent")
	ErrBadIntegrand     = errors.New("integrand is not finite")
)

// Func is a real integrand.
type Func func(x float64) float64

// Config controls the accuracy goals of QAGS.
type Config struct {
	EpsAbs float64
	EpsRel float64
	Limit  int
}

// DefaultConfig returns epsabs 0, epsrel 1e-3 and 1000 subintervals.
func DefaultConfig() Config {
	return Config{EpsAbs: 0, EpsRel: 1e-3, Limit: 1000}
}

// WithEpsRel returns a copy of c with the relative tolerance replaced.
func (c Config) WithEpsRel(epsrel float64) Config {
	c.EpsRel = epsrel
	return c
}

// QAGS integrates f over [a, b]. Reversed bounds are allowed and flip the sign.
func QAGS(f Func, a, b float64, cfg Config) (float64, error) {
	result, _, err := qags(f, a, b, cfg)
	return result, err
}

// QAGSWithError is QAGS that also returns the estimated absolute error.
func QAGSWithError(f Func, a, b float64, cfg Config) (float64, float64, error) {
	return qags(f, a, b, cfg)
}

func qags(f Func, a, b float64, cfg Config) (float64, float64, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultConfig().Limit
	}
	epsabs, epsrel := cfg.EpsAbs, cfg.EpsRel
	if epsabs <= 0 && (epsrel < 50*dblEpsilon || epsrel < 0.5e-28) {
		return 0, 0, ErrInvalidTolerance
	}

	w := newWorkspace(limit, a, b)

	result0, abserr0, resabs0, resasc0, err := qk21(f, a, b)
	if err != nil {
		return 0, 0, err
	}
	w.setInitialResult(result0, abserr0)

	tolerance := math.Max(epsabs, epsrel*math.Abs(result0))
	if abserr0 <= 100*dblEpsilon*resabs0 && abserr0 > tolerance {
		return result0, abserr0, ErrRoundoff
	} else if (abserr0 <= tolerance && abserr0 != resasc0) || abserr0 == 0 {
		return result0, abserr0, nil
	} else if limit == 1 {
		return result0, abserr0, ErrMaxIterations
	}

	var table extrapolationTable
	table.append(result0)

	area := result0
	errsum := abserr0
	resExt := result0
	errExt := dblMax
	positiveIntegrand := math.Abs(result0) >= (1-50*dblEpsilon)*resabs0

	var (
		roundoffType1, roundoffType2, roundoffType3 int
		errorType, errorType2                       int
		ktmin                                       int
		extrapolate, disallowExtrapolation          bool
		ertest, correc                              float64
		errorOverLargeIntervals                     float64
	)

	iteration := 1
	computeSum := false
	for iteration < limit {
		ai, bi, ri, ei := w.retrieve()
		currentLevel := w.level[w.i] + 1

		a1, b1 := ai, 0.5*(ai+bi)
		a2, b2 := b1, bi
		iteration++

		area1, error1, _, resasc1, err := qk21(f, a1, b1)
		if err != nil {
			return 0, 0, err
		}
		area2, error2, _, resasc2, err := qk21(f, a2, b2)
		if err != nil {
			return 0, 0, err
		}

		area12 := area1 + area2
		error12 := error1 + error2
		lastEi := ei

		errsum = errsum + error12 - ei
		area = area + area12 - ri

		tolerance = math.Max(epsabs, epsrel*math.Abs(area))

		if resasc1 != error1 && resasc2 != error2 {
			delta := ri - area12
			if math.Abs(delta) <= 1.0e-5*math.Abs(area12) && error12 >= 0.99*ei {
				if !extrapolate {
					roundoffType1++
				} else {
					roundoffType2++
				}
			}
			if iteration > 10 && error12 > ei {
				roundoffType3++
			}
		}

		if roundoffType1+roundoffType2 >= 10 || roundoffType3 >= 20 {
			errorType = 2
		}
		if roundoffType2 >= 5 {
			errorType2 = 1
		}
		if subintervalTooSmall(a1, a2, b2) {
			errorType = 4
		}

		w.update(a1, b1, area1, error1, a2, b2, area2, error2)

		if errsum <= tolerance {
			computeSum = true
			break
		}
		if errorType != 0 {
			break
		}
		if iteration >= limit-1 {
			errorType = 1
			break
		}

		if iteration == 2 {
			errorOverLargeIntervals = errsum
			ertest = tolerance
			table.append(area)
			continue
		}
		if disallowExtrapolation {
			continue
		}

		errorOverLargeIntervals += -lastEi
		if currentLevel < w.maximumLevel {
			errorOverLargeIntervals += error12
		}

		if !extrapolate {
			if w.largeInterval() {
				continue
			}
			extrapolate = true
			w.nrmax = 1
		}

		if errorType2 == 0 && errorOverLargeIntervals > ertest {
			if w.increaseNrmax() {
				continue
			}
		}

		table.append(area)
		reseps, abseps := table.qelg()

		ktmin++
		if ktmin > 5 && errExt < 0.001*errsum {
			errorType = 5
		}
		if abseps < errExt {
			ktmin = 0
			errExt = abseps
			resExt = reseps
			correc = errorOverLargeIntervals
			ertest = math.Max(epsabs, epsrel*math.Abs(reseps))
			if errExt <= ertest {
				break
			}
		}

		if table.n == 1 {
			disallowExtrapolation = true
		}
		if errorType == 5 {
			break
		}

		w.resetNrmax()
		extrapolate = false
		errorOverLargeIntervals = errsum
	}

	result, abserr := resExt, errExt
	if !computeSum {
		computeSum, errorType = finalize(&errExt, resExt, area, errsum, resabs0, correc, positiveIntegrand, errorType, errorType2)
		result, abserr = resExt, errExt
	}
	if computeSum {
		result = w.sum()
		abserr = errsum
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return result, abserr, ErrBadIntegrand
	}
	return result, abserr, statusError(errorType)
}

// finalize decides between the extrapolated and the summed result. It reports
// whether the plain sum over subintervals should be returned.
func finalize(errExt *float64, resExt, area, errsum, resabs0, correc float64, positive bool, errorType, errorType2 int) (bool, int) {
	if *errExt == dblMax {
		return true, errorType
	}
	if errorType != 0 || errorType2 != 0 {
		if errorType2 != 0 {
			*errExt += correc
		}
		if errorType == 0 {
			errorType = 3
		}
		if resExt != 0 && area != 0 {
			if *errExt/math.Abs(resExt) > errsum/math.Abs(area) {
				return true, errorType
			}
		} else if *errExt > errsum {
			return true, errorType
		} else if area == 0 {
			return false, errorType
		}
	}

	maxArea := math.Max(math.Abs(resExt), math.Abs(area))
	if !positive && maxArea < 0.01*resabs0 {
		return false, errorType
	}

	ratio := resExt / area
	if ratio < 0.01 || ratio > 100 || errsum > math.Abs(area) {
		errorType = 6
	}
	return false, errorType
}

func statusError(errorType int) error {
	if errorType > 2 {
		errorType--
	}
	switch errorType {
	case 0:
		return nil
	case 1:
		return ErrMaxIterations
	case 2:
		return ErrRoundoff
	case 3:
		return ErrSingular
	case 4:
		return ErrExtrapolation
	case 5:
		return ErrDivergent
	default:
		return fmt.Errorf("could not integrate function (error type %d)", errorType)
	}
}

func subintervalTooSmall(a1, a2, b2 float64) bool {
	tmp := (1 + 100*dblEpsilon) * (math.Abs(a2) + 1000*dblMin)
	return math.Abs(a1) <= tmp && math.Abs(b2) <= tmp
}
