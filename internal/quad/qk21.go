package quad

import "math"

// Gauss-Kronrod 21-point abscissae and weights.
var (
	xgk = [11]float64{
		0.995657163025808080735527280689003,
		0.973906528517171720077964012084452,
		0.930157491355708226001207180059508,
		0.865063366688984510732096688423493,
		0.780817726586416897063717578345042,
		0.679409568299024406234327365114874,
		0.562757134668604683339000099272694,
		0.433395394129247190799265943165784,
		0.294392862701460198131126603103866,
		0.148874338981631210884826001129720,
		0.000000000000000000000000000000000,
	}
	wg = [5]float64{
		0.066671344308688137593568809893332,
		0.149451349150580593145776339657697,
		0.219086362515982043995534934228163,
		0.269266719309996355091226921569469,
		0.295524224714752870173892994651338,
	}
	wgk = [11]float64{
		0.011694638867371874278064396062192,
		0.032558162307964727478818972459390,
		0.054755896574351996031381300244580,
		0.075039674810919952767043140916190,
		0.093125454583697605535065465083366,
		0.109387158802297641899210590325805,
		0.123491976262065851077208292373096,
		0.134709217311473325928054001771707,
		0.142775938577060080797094273138717,
		0.147739104901338491374841515972068,
		0.149445554002916905664936468389821,
	}
)

// qk21 applies the 21-point Kronrod rule on [a, b]. It returns the result, the
// error estimate, the integral of |f| and the integral of |f - mean|.
func qk21(f Func, a, b float64) (result, abserr, resabs, resasc float64, err error) {
	const n = 11
	var fv1, fv2 [n]float64

	center := 0.5 * (a + b)
	halfLength := 0.5 * (b - a)
	absHalfLength := math.Abs(halfLength)

	fCenter := f(center)
	if !finite(fCenter) {
		return 0, 0, 0, 0, ErrBadIntegrand
	}

	resultGauss := 0.0
	resultKronrod := fCenter * wgk[n-1]
	resultAbs := math.Abs(resultKronrod)

	for j := 0; j < (n-1)/2; j++ {
		jtw := 2*j + 1
		abscissa := halfLength * xgk[jtw]
		fval1 := f(center - abscissa)
		fval2 := f(center + abscissa)
		if !finite(fval1) || !finite(fval2) {
			return 0, 0, 0, 0, ErrBadIntegrand
		}
		fsum := fval1 + fval2
		fv1[jtw] = fval1
		fv2[jtw] = fval2
		resultGauss += wg[j] * fsum
		resultKronrod += wgk[jtw] * fsum
		resultAbs += wgk[jtw] * (math.Abs(fval1) + math.Abs(fval2))
	}

	for j := 0; j < n/2; j++ {
		jtwm1 := 2 * j
		abscissa := halfLength * xgk[jtwm1]
		fval1 := f(center - abscissa)
		fval2 := f(center + abscissa)
		if !finite(fval1) || !finite(fval2) {
			return 0, 0, 0, 0, ErrBadIntegrand
		}
		fv1[jtwm1] = fval1
		fv2[jtwm1] = fval2
		resultKronrod += wgk[jtwm1] * (fval1 + fval2)
		resultAbs += wgk[jtwm1] * (math.Abs(fval1) + math.Abs(fval2))
	}

	mean := resultKronrod * 0.5
	resultAsc := wgk[n-1] * math.Abs(fCenter-mean)
	for j := 0; j < n-1; j++ {
		resultAsc += wgk[j] * (math.Abs(fv1[j]-mean) + math.Abs(fv2[j]-mean))
	}

	e := (resultKronrod - resultGauss) * halfLength

	resultKronrod *= halfLength
	resultAbs *= absHalfLength
	resultAsc *= absHalfLength

	return resultKronrod, rescaleError(e, resultAbs, resultAsc), resultAbs, resultAsc, nil
}

func rescaleError(err, resultAbs, resultAsc float64) float64 {
	err = math.Abs(err)
	if resultAsc != 0 && err != 0 {
		scale := math.Pow(200*err/resultAsc, 1.5)
		if scale < 1 {
			err = resultAsc * scale
		} else {
			err = resultAsc
		}
	}
	if resultAbs > dblMin/(50*dblEpsilon) {
		if minErr := 50 * dblEpsilon * resultAbs; minErr > err {
			err = minErr
		}
	}
	return err
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
