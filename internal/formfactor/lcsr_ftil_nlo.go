package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/special"
)

// O(alpha_s) kernels of the combination F~ that enters the f0 sum rule.

func (h *hard) t1TilTw2Theta1mRho(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r14 * r1
	r16 := r13 * r13
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r24 * r2

	ca0 := -r1 + 2*r12 - r13 +
		r2*(1-r1-r12+r13) +
		r22*(-1+2*r1-r12)
	ca2 := -15 + 40*r1 - 36*r12 + 12*r13 - r14 +
		r2*(35-88*r1+72*r12-20*r13+r14) +
		r22*(-26+60*r1-42*r12+8*r13) +
		r23*(6-12*r1+6*r12)
	ca4 := -210 + 756*r1 - 1050*r12 + 700*r13 - 225*r14 + 30*r15 - r16 +
		r2*(714-2436*r1+3150*r12-1900*r13+525*r14-54*r15+r16) +
		r22*(-924+2940*r1-3450*r12+1800*r13-390*r14+24*r15) +
		r23*(560-1620*r1+1650*r12-680*r13+90*r14) +
		r24*(-155+390*r1-315*r12+80*r13) +
		r25*(15-30*r1+15*r12)

	return -6 / (r2 * powi(r1-r2, 7)) * (pow3(r1-r2)*ca0 + pow2(r1-r2)*ca2*h.a2 + ca4*h.a4)
}

func (h *hard) t1TilTw2ThetaRhom1(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r14 * r1
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r24 * r2
	r26 := r23 * r23
	r27 := r24 * r23
	Lr2 := math.Log(r2)

	ca00 := 1 - 2*r1 +
		r2*(-1+4*r1) +
		r22*(-1-2*r1) +
		r23
	ca0r2 := -r2*r1 + r22*(1+r1) - r23

	ca20 := (15 - 40*r1 + 36*r12 - 12*r13) +
		r2*(-35+93*r1-87*r12+24*r13) +
		r22*(21-45*r1+96*r12-12*r13) +
		r23*(-6-29*r1-45*r12) +
		r24*(-16+21*r1) +
		r25*21
	ca2r2 := r2*(-6*r13) +
		r22*(6*r13+18*r12) +
		r23*(12*r1+12*r12) +
		r24*(-24-12*r1) +
		r25*(-6)

	ca40 := 420 - 1512*r1 + 2100*r12 - 1400*r13 + 450*r14 - 60*r15 +
		r2*(-1428+4935*r1-6510*r12+4080*r13-1260*r14+120*r15) +
		r22*(1785-5775*r1+6900*r12-3600*r13+1590*r14-60*r15) +
		r23*(-1015+2820*r1-2040*r12+2240*r13-780*r14) +
		r24*(450-1200*r1-1080*r12-1320*r13) +
		r25*(-660-243*r1+630*r12) +
		r26*(313+975*r1) +
		r27*135
	ca4r2 := r2*(-15*r15) +
		r22*(75*r14+15*r15) +
		r23*(690*r13+135*r14) +
		r24*(150*r12+150*r13) +
		r25*(-705*r1-150*r12) +
		r26*(-195-135*r1) +
		r27*(-15)

	return -6 / (r2 * powi(r1-r2, 7)) * (pow4(r1-r2)*(ca00+ca0r2*Lr2) +
		pow2(r1-r2)*(ca20+ca2r2*Lr2)*h.a2 +
		(ca40/2+ca4r2*Lr2)*h.a4)
}

func (h *hard) t1TilTw2Delta(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r13 * r12
	r16 := r13 * r13
	r17 := r14 * r13
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r23 * r22
	r26 := r23 * r23
	L1mr1 := math.Log(1 - r1)

	ca00 := r1 - r12 + r2*(-1+r12) + r22*(1-r1)
	ca0r1 := r1 - 2*r12 + r13 +
		r2*(-1+r1+r12-r13) +
		r22*(1-2*r1+r12)

	ca20 := 5*r1 - 10*r12 + 6*r13 - r14 +
		r2*(-5+12*r12-8*r13+r14) +
		r22*(10-12*r1+2*r13) +
		r23*(-6+8*r1-2*r12) +
		r24*(1-r1)
	ca2r1 := 5*r1 - 15*r12 + 16*r13 - 7*r14 + r15 +
		r2*(-5+5*r1+12*r12-20*r13+9*r14-r15) +
		r22*(10-22*r1+12*r12+2*r13-2*r14) +
		r23*(-6+14*r1-10*r12+2*r13) +
		r24*(1-2*r1+r12)

	ca40 := 42*r1 - 126*r12 + 140*r13 - 70*r14 + 15*r15 - r16 +
		r2*(-42+210*r12-280*r13+135*r14-24*r15+r16) +
		r22*(126-210*r1+150*r13-75*r14+9*r15) +
		r23*(-140+280*r1-150*r12+10*r14) +
		r24*(70-135*r1+75*r12-10*r13) +
		r25*(-15+24*r1-9*r12) +
		r26*(1-r1)
	ca4r1 := 42*r1 - 168*r12 + 266*r13 - 210*r14 + 85*r15 - 16*r16 + r17 +
		r2*(-42+42*r1+210*r12-490*r13+415*r14-159*r15+25*r16-r17) +
		r22*(126-336*r1+210*r12+150*r13-225*r14+84*r15-9*r16) +
		r23*(-140+420*r1-430*r12+150*r13+10*r14-10*r15) +
		r24*(70-205*r1+210*r12-85*r13+10*r14) +
		r25*(-15+39*r1-33*r12+9*r13) +
		r26*(1-2*r1+r12)

	return -6 / (r1 * r1 * powi(r1-r2, 7)) * (pow4(r1-r2)*(ca00*r1+ca0r1*L1mr1) +
		6*pow2(r1-r2)*(ca20*r1+ca2r1*L1mr1)*h.a2 +
		15*(ca40*r1+ca4r1*L1mr1)*h.a4)
}

func (h *hard) t1TilTw3pTheta1mRho(r2 float64) float64 {
	l1 := math.Log((r2 - 1) / (r2 - h.r1))
	l2 := h.lmu() + math.Log((r2-1)*(r2-1)/r2)
	return 2 * l1 * (r2*l2 - 1)
}

func (h *hard) t1TilTw3pThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	logr1 := math.Log(math.Abs(r1))
	logr2 := math.Log(r2)
	log1mr1 := math.Log(1 - r1)
	logr2m1 := math.Log(r2 - 1)
	logr2mr1 := math.Log(r2 - r1)

	dl1 := (-1-5*pi2/3+2*(special.ReLi2(1/r2)+2*special.ReLi2(1/r1)+2*special.ReLi2(r2)-
		2*special.ReLi2(r2/r1)+4*special.ReLi2((r2-1)/(r1-1))))*r1*r2 + r1
	dl2 := ((3+4*logr1+2*logr2m1-4*logr2mr1)*r1-2)*r2 - 2*r1
	dl3 := 8 * (logr2mr1 - log1mr1) * r1 * r2
	dl4 := 2 * ((1-2*lmu)*r1 - 1) * r2
	dl5 := 2 * ((-1+2*lmu)*r1 + 1) * r2
	return (dl1 + dl2*logr2 + dl3*logr2m1 + dl4*log1mr1 + dl5*logr2mr1) / r1
}

func (h *hard) t1TilTw3pDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12 := r1 * r1
	logr2 := math.Log(r2)
	logr2m1 := math.Log(r2 - 1)
	log1mr1 := math.Log(1 - r1)
	l1 := math.Log((r2 - 1) / (1 - r1))

	dl1 := (3+4*pi2/3-2*lmu+4*special.ReLi2(1-r2))*r12*r2 + r1*r2
	dl2 := -2*r12 + (1-2*r1+r12)*r2
	dl3 := (4 - (6+4*l1)*r2) * r12
	dl4 := 2 * r12 * r2 * (logr2m1 + l1)
	dl5 := 2 * r12 * r2 * (1 - lmu)
	return (dl1 + dl2*log1mr1 + dl3*logr2m1 + dl4*logr2 + dl5*l1) / r12
}

func (h *hard) t1TilTw3SigmaTheta1mRho(r2 float64) float64 {
	r1 := h.r1
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr2mr1 := math.Log(r2 - r1)
	return -6 * ((r1-r2)*(lr2mr1-lr2m1) + r1 - 1) * (r2*(h.lmu()+2*lr2m1-lr2) - 1)
}

func (h *hard) t1TilTw3SigmaThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12, r22 := r1*r1, r2*r2
	lr1, l1mr1 := math.Log(math.Abs(r1)), math.Log(1-r1)
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr2mr1 := math.Log(r2 - r1)

	dil := -2 * (2*special.ReLi2(1/r1) + 4*special.ReLi2((r2-1)/(r1-1)) + special.ReLi2(1/r2) +
		2*special.ReLi2(r2) - 2*special.ReLi2(r2/r1) +
		4*math.Log((r1-r2)/(r1-1))*math.Log(r2-1)) * (r2 - r1) * r2
	dl1 := -(r2 - 1) * (2 - r2 + r1*(-1+2*r2))
	dl2 := ((r12*(r2-2)-r1*(r2-2)*r2+2*r22)/r1 + 2*(r2-r1)*r2*(2*(lr2mr1-lr1)-lr2m1)) * lr2
	dl3 := -2 * (r1 - 1) * r2 * (r2 - r1) * l1mr1 / r1
	dl4 := 2 * (r1 - 1) * r2 * (r2 - r1) * lr2mr1 / r1
	dl5 := 4 * (l1mr1 - lr2mr1) * (r2 - r1) * r2
	dl6 := 5 * (r2 - r1) * r2 / 3

	return 3 * (dl1 + dl2 + dl3 + dl4 + dl5*lmu + pi2*dl6 + dil)
}

func (h *hard) t1TilTw3SigmaDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12 := r1 * r1
	r13 := r12 * r1
	r22 := r2 * r2
	l1mr1 := math.Log(1 - r1)
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)

	dl1 := (-17*r1 - r12 + (1-r1+2*r12)*r2) / r1
	dl2 := 2 * (2*r1 + r2 - 3) / 3
	dl3 := -4 * (-2 + r1 + r2) * (-1 + r2*(2*lr2m1-lr2)) * lr2m1
	dl4 := (4*r12 - 2*r13 + (-r13-4*r12+r1)*r2 + (3*r12-2*r1+1)*r22 +
		2*r12*r2*(-2+r1+r2)*(2*lr2m1-lr2)) * l1mr1 / r12
	dl5 := -4*(r2-1)*l1mr1*l1mr1 + 4*(r1+2*r2-3)*lr2m1*lr2m1
	dl6 := 2 * (5 + r2 - (l1mr1-lr2m1)*(r2-r1))
	dl7 := 4*(-3+r1+2*r2)*special.ReLi2(1-r2) - 4*(r2-1)*special.ReLi2(r1)

	return 3 * ((dl1+pi2*dl2+dl5+dl6*lmu+dl7)*r2 + dl3 + dl4)
}

func (l *LCSR) ftilNLOTw2(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	v, err := l.dispersion(FtilNLOTw2, p, q2, m2, w, l.S0Zero(q2), func(r2 float64) float64 {
		return h.t1TilTw2Theta1mRho(r2) + h.t1TilTw2ThetaRhom1(r2) + h.t1TilTw2Delta(r2)
	})
	return p.mc2 * p.fpi * v, err
}

func (l *LCSR) ftilNLOTw3(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	r1 := h.r1
	v, err := l.dispersion(FtilNLOTw3, p, q2, m2, w, l.S0Zero(q2), func(r2 float64) float64 {
		return 1/(r2*(r2-r1))*(h.t1TilTw3pThetaRhom1(r2)+h.t1TilTw3pTheta1mRho(r2)+h.t1TilTw3pDeltaRhom1(r2)) +
			1/(3*r2*pow2(r2-r1))*(h.t1TilTw3SigmaTheta1mRho(r2)+h.t1TilTw3SigmaThetaRhom1(r2)+h.t1TilTw3SigmaDeltaRhom1(r2))
	})
	return p.fpi * p.lcda.MuPi * p.mc * v, err
}
