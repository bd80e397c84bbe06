package special

import "math"

const eulerGamma = 0.57721566490153286060651209008240243

// E1 returns the exponential integral E1(x), which equals the upper incomplete
// gamma function Gamma(0, x). It is NaN for x <= 0.
func E1(x float64) float64 {
	if x <= 0 || math.IsNaN(x) {
		return math.NaN()
	}
	if math.IsInf(x, 1) {
		return 0
	}
	if x <= 1 {
		sum, term := 0.0, 1.0
		for k := 1; k < 100; k++ {
			term *= -x / float64(k)
			add := term / float64(k)
			sum += add
			if math.Abs(add) < 1e-17*math.Abs(sum) {
				break
			}
		}
		return -eulerGamma - math.Log(x) - sum
	}

	// Modified Lentz evaluation of the continued fraction.
	const tiny = 1e-300
	b := x + 1
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i < 200; i++ {
		an := -float64(i * i)
		b += 2
		d = 1 / (an*d + b)
		c = b + an/c
		del := c * d
		h *= del
		if math.Abs(del-1) < 1e-16 {
			break
		}
	}
	return h * math.Exp(-x)
}
