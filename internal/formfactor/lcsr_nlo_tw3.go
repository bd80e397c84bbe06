package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/special"
)

// Imaginary parts of the twist-3 kernels of F. The p terms multiply
// phi_3;p, the sigma terms phi_3;sigma.

func (h *hard) t1Tw3pTheta1mRho(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	l1 := math.Log((r2 - r1) / (r2 - 1))
	l2 := lmu + math.Log((r2-1)*(r2-1)/r2)
	return (r1 - r2*(1+r1+r2)*l2) * l1 / (r2 * (r1 - r2))
}

func (h *hard) t1Tw3pThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	logr2 := math.Log(r2)
	l1 := math.Log((1 - r1) / (r2 - r1))
	dl1 := pi2/6 + special.ReLi2(1/r2) + logr2*(logr2-math.Log(r2-1))
	dl2 := -special.ReLi2(r1/r2) + special.ReLi2(r1) - 2*special.ReLi2((r2-1)/(r1-1)) -
		logr2*logr2/2 + logr2*math.Log(r2-r1) - 2*math.Log((r2-r1)/(1-r1))*math.Log(r2-1)

	return (dl1*(1+r1+r2) + dl2*(4*r1-1) +
		((r1+r2)*(r2-1)+(r1*(2-3*r2)+r2)*logr2)/(2*r2) +
		l1*(1-2*r1+lmu*(4*r1-1))) / (r2 - r1)
}

func (h *hard) t1Tw3pDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	l1mr1 := math.Log(1 - r1)
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	dlr1 := special.ReLi2(r1)
	dl1mr2 := special.ReLi2(1 - r2)

	return (6 - 2*r1 - pi2/6*(1+4*r1) +
		lr2*(l1mr1*r1-lr2m1*2*r1) +
		lr2m1*(lr2m1*(1+2*r1)-4+2*r1*(r2-1)/r2-l1mr1*2*r1+lmu*(1+r1)) +
		lmu*3/2*(r1-3) +
		l1mr1*(-l1mr1+2+r1+r1/r2-(1+r1)*lmu) -
		dlr1 + (1-2*r1)*dl1mr2) / (r2 - r1)
}

func (h *hard) t1Tw3SigmaTheta1mRho(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr2mr1 := math.Log(r2 - r1)

	return (-6*(r1*r1+2*(r2-1)*r2+r1*(-1+2*r2-2*r2*r2))/(r2*(r1-r2)*(r1-r2)) +
		lr2mr1*((lmu-lr2+2*lr2m1)*6*(1+r1+r2)/(r1-r2)-6*r1/(r2*(r1-r2))) +
		lr2m1*((-2*lr2m1-lmu+lr2)*6*(1+r1+r2)/(r1-r2)+
			6*(-2*(r2-1)*r2+r1*r2*(2*r2-5)+r1*r1*(1+2*r2))/((r2-r1)*(r2-r1)*r2)) +
		(lmu-lr2)*6*(r1-1)*(-1+r1+r2)/((r2-r1)*(r2-r1))) / (r2 - r1)
}

func (h *hard) t1Tw3SigmaThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	l1mr1 := math.Log(1 - r1)
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr2mr1 := math.Log(r2 - r1)
	l1 := 2*lr2m1 + lmu - lr2
	dl1 := special.ReLi2(r1) - special.ReLi2(r1/r2) - 2*special.ReLi2((r2-1)/(r1-1))
	dl2 := special.ReLi2(1/r2) - l1*l1
	d := (r1 - r2) * r2

	return 3 * (-dl1*2*(4*r1-1)*d -
		dl2*2*d*(1+r1+r2) +
		l1*(-l1*d*(5+4*r2)+
			lr2mr1*2*(4*r1-1)*d-
			lr2m1*2*(-5+5*r1-3*r2)*d-
			lmu*2*(-3+2*r1-2*r2)*d+
			r1*(r2-1)*r2-5*r2*r2+r1*r1*(2+r2-2*r2*r2)) +
		lr2mr1*(-2*(-1+2*r1)*d) +
		lr2m1*(lr2m1*4*(r1-r2)*(-2+3*r1-r2)*r2-
			l1mr1*4*(4*r1-1)*d+
			lmu*2*(-5+5*r1-3*r2)*d-
			2*r1*(-1+r2)*r2+2*r2*(2+3*r2)+r1*r1*(-4-2*r2+4*r2*r2)) +
		l1mr1*(-lmu*2*(4*r1-1)*d+
			2*(-1+2*r1)*d) +
		lmu*(lmu*(-3+2*r1-2*r2)*d-
			r1*(r2-1)*r2+r2*(2+3*r2)+r1*r1*(-2+r2*(-1+2*r2))) +
		(r2*r2*(pi2-3+(3+pi2)*r2)+
			r1*(6-(6+pi2)*r2)-
			r1*r1*(3+r2*(pi2-9+6*r2)))/3) / (pow3(r1-r2) * r2)
}

func (h *hard) t1Tw3SigmaDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	l1mr1 := math.Log(1 - r1)
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	l1 := 2*lr2m1 + lmu - lr2
	l2 := l1mr1 - 2*lr2m1
	dl1 := special.ReLi2(r1) + l1mr1*(l1mr1+lmu)
	dl2 := special.ReLi2(1-r2) + lr2m1*lr2m1

	return (dl1*6*(r1*(3-4*r2)+r2) +
		dl2*(-30*r2+6*r1*(-7+2*r1+10*r2)) +
		l1*l2*(-12*r2+6*r1*(-2+r1+3*r2)) +
		lr2m1*(lmu*(-18*r2+6*r1*(-5+r1+7*r2))-
			12*(r2+r1*(2-r1-3*r2+r2*r2))/r2) -
		l1mr1*6*((-2+r1)*r1-2*r2+r1*(5+r1)*r2+(2-5*r1)*r2*r2)/r2 +
		lmu*(-3*r1*(-17+r1-5*r2)+9*r2) +
		r1*(-72+pi2*(-5+4*r1)) + r2*(6*(-1+r1)*r1+pi2*(-7+8*r1)) -
		6*(1+3*r2)) / pow3(r1-r2)
}

func (l *LCSR) fNLOTw3(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	r1, lmu := h.r1, h.lmu()
	v, err := l.dispersion(FNLOTw3, p, q2, m2, w, l.S0Plus(q2), func(r2 float64) float64 {
		return 2/(r2-r1)*(h.t1Tw3pThetaRhom1(r2)+h.t1Tw3pTheta1mRho(r2)+h.t1Tw3pDeltaRhom1(r2)) +
			1.0/3*(h.t1Tw3SigmaThetaRhom1(r2)+h.t1Tw3SigmaTheta1mRho(r2)+h.t1Tw3SigmaDeltaRhom1(r2))
	})
	if err != nil {
		return 0, err
	}

	weight := (1 - float64(w)) + float64(w)*p.mc2
	local := (2/(1-r1)*(4-3*lmu) + 2*(1+r1)/pow2(1-r1)*(4-3*lmu)) * weight * math.Exp(-p.mc2/m2)
	return p.fpi * p.lcda.MuPi * p.mc * (v - local), nil
}
