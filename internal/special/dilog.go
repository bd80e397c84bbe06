// Package special provides the real dilogarithm and the exponential integral
// needed by the sum-rule kernels.
package special

import "math"

const pi2 = math.Pi * math.Pi

// ReLi2 returns the real part of the dilogarithm Li2(x) for real x.
func ReLi2(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x == 1:
		return pi2 / 6
	case x > 1:
		l := math.Log(x)
		return pi2/3 - 0.5*l*l - ReLi2(1/x)
	case x > 0.5:
		return pi2/6 - math.Log(x)*math.Log(1-x) - ReLi2(1-x)
	case x >= -0.5:
		return li2Series(x)
	case x >= -1:
		l := math.Log(1 - x)
		return -li2Series(x/(x-1)) - 0.5*l*l
	default:
		l := math.Log(-x)
		return -pi2/6 - 0.5*l*l - ReLi2(1/x)
	}
}

// li2Series sums x^k/k^2 for |x| <= 1/2.
func li2Series(x float64) float64 {
	sum, term := 0.0, 1.0
	for k := 1; k < 200; k++ {
		term *= x
		add := term / float64(k*k)
		sum += add
		if math.Abs(add) <= 1e-17*math.Abs(sum) {
			break
		}
	}
	return sum
}
