package formfactor

import "math"

// Point holds the three form factors at one q2. Err is the first failure;
// the failing entries are NaN.
type Point struct {
	Q2    float64
	FPlus float64
	FZero float64
	FT    float64
	Err   error
}

// Tabulate evaluates ff at every q2.
func Tabulate(ff FormFactors, q2s []float64) []Point {
	out := make([]Point, len(q2s))
	for i, q2 := range q2s {
		pt := Point{Q2: q2}
		eval := func(f func(float64) (float64, error)) float64 {
			v, err := f(q2)
			if err != nil {
				if pt.Err == nil {
					pt.Err = err
				}
				return math.NaN()
			}
			return v
		}
		pt.FPlus = eval(ff.FPlus)
		pt.FZero = eval(ff.FZero)
		pt.FT = eval(ff.FT)
		out[i] = pt
	}
	return out
}
