package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/special"
)

// hard carries the inputs of the O(alpha_s) hard-scattering kernels. The
// kernels are written in r1 = q2/mc^2 and r2 = s/mc^2, where s is the
// variable of the dispersion integral.
type hard struct {
	r1  float64
	mc2 float64
	mu  float64
	a2  float64
	a4  float64
}

func (p *point) hard(q2 float64) hard {
	return hard{r1: q2 / p.mc2, mc2: p.mc2, mu: p.mu, a2: p.lcda.A2, a4: p.lcda.A4}
}

// lmu is ln(mc^2/mu^2).
func (h *hard) lmu() float64 {
	return math.Log(h.mc2 / (h.mu * h.mu))
}

// Imaginary parts of the twist-2 kernel of F, integrated over rho.

func (h *hard) t1Tw2Theta1mRho(r2 float64) float64 {
	r1 := h.r1
	r12, r13 := r1*r1, r1*r1*r1
	r14 := r12 * r12
	r15 := r14 * r1
	r22, r23 := r2*r2, r2*r2*r2
	r24 := r22 * r22
	r25 := r24 * r2
	L := math.Log(pow2(r2-1) * h.mc2 / (h.mu * h.mu * r2))

	ca0 := pow4(r1-r2) * (-3 + r1 + r2*2)
	ca2 := pow2(r1-r2) * ((-125 + r1*155 - r12*43 + r13) +
		r2*(220-r1*224+r12*40) +
		r22*(-108+72*r1) +
		r23*12)
	ca4 := (-3087 + r1*6804 - r12*5096 + r13*1484 - r14*136 + r15) +
		r2*(8631-17024*r1+10836*r12-2424*r13+131*r14) +
		r22*(-8750+14700*r1-7200*r12+950*r13) +
		r23*(3850-r1*5000+r12*1450) +
		r24*(-675+r1*525) +
		r25*30

	cb0 := pow4(r1 - r2)
	cb2 := pow2(r1-r2) * (15 - r1*10 + r12 + r2*(-20+r1*8) + r22*6)
	cb4 := (210 - r1*336 + r12*168 - r13*28 + r14) +
		r2*(-504+r1*672-r12*252+r13*24) +
		r22*(420-r1*420+r12*90) +
		r23*(-140+r1*80) +
		r24*15

	ca := ca0 + ca2*h.a2 + ca4*h.a4
	cb := cb0 + cb2*h.a2 + cb4*h.a4
	return ((r1-r2)*(L-1/r2)*ca +
		(r1-1)*(1/r2-1)*(r2-r1)*cb +
		(1-r1)*(r1-1)*(L-1)*cb) * (r1 - 1) * 3 / powi(r1-r2, 8)
}

func (h *hard) t1Tw2ThetaRhom1(r2 float64) float64 {
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
	r26 := r23 * r23
	r27 := r24 * r23
	r28 := r24 * r24
	Lr2, Lr2m1, Lmu := math.Log(r2), math.Log(r2-1), h.lmu()

	ca00 := (-r1*4 + r12*4) +
		r2*(3+r1*12-r12*12) +
		r22*(-13-r1*4+r12*8) +
		r23*(13-r1*4) -
		r24*3
	ca0mu := r2*(1-r1*3+r12*2) +
		r22*(r1*2-r12*2) +
		r23*(-1+r1)
	ca0r2 := r2*(-1+r12) +
		r22*(3-r1*4+r12)
	ca0r2m1 := 2 * ca0mu

	ca20 := (r1*1680 - r12*3120 + r13*1728 - r14*288) +
		r2*(-1500-r1*8675+r12*17308-r13*8208+r14*864) +
		r22*(10895+r1*2160-r12*21084+r13*10080-r14*576) +
		r23*(-19396+r1*15264+r12*5412-r13*3600) +
		r24*(12516-r1*12880+r12*1484) +
		r25*(-2576+r1*2451) +
		r26*61
	ca2mu := r2*(-180+r1*1740-r12*2712+r13*1296-r14*144) +
		r22*(-840-r1*1536+r12*4248-r13*2016+r14*144) +
		r23*(2448-r1*1944-r12*1224+r13*720) +
		r24*(-1800+r1*2112-r12*312) +
		r25*(372-r1*372)
	ca2r2 := r2*(180+r1*840-r12*1728+r13*720-r14*72) +
		r22*(-1740+r1*1536+r12*144+r13*432-r14*72) +
		r23*(1992-r1*2448+r12*1512-r13*576) +
		r24*(-216-r1*672+r12*168) +
		r25*(-300+r1*300)
	ca2r2m1 := 2 * ca2mu

	ca40 := r1*98910 - r12*281610 + r13*294000 - r14*136500 + r15*27000 - r16*1800 +
		r2*(-92610-r1*628467+r12*2091411-r13*2110325+r14*869950-r15*136800+r16*5400) +
		r22*(865977-r1*51660-r12*3323460+r13*3765400-r14*1417650+r15*181800-r16*3600) +
		r23*(-2201451+r1*2911860+r12*894420-r13*2358600+r14*840450-r15*72000) +
		r24*(2437925-r1*4042510+r12*1372230+r13*345800-r14*156250) +
		r25*(-1293760+r1*2102595-r12*890655+r13*63725) +
		r26*(307725-r1*414708+r12*137664) +
		r27*(-23987+r1*23980) +
		r28*181
	ca4mu := r2*(-6300+r1*107730-r12*271530+r13*266700-r14*115950+r15*20250-r16*900) +
		r22*(-63630-r1*103320+r12*557550-r13*603000+r14*246600-r15*35100+r16*900) +
		r23*(242550-r1*299250-r12*210600+r13*411300-r14*158850+r15*14850) +
		r24*(-304500+r1*539400-r12*200700-r13*62400+r14*28200) +
		r25*(169650-r1*304200+r12*147150-r13*12600) +
		r26*(-40950+r1*62820-r12*21870) +
		r27*(3180-r1*3180)
	ca4r2 := r2*(6300+r1*63630-r12*204750+r13*210000-r14*87750+r15*12600-r16*450) +
		r22*(-107730+r1*103320+r12*166950-r13*237000+r14*74250+r15*3600-r16*450) +
		r23*(233730-r1*425250+r12*210600-r13*45000+r14*65700-r15*10800) +
		r24*(-172200+r1*300600-r12*165600+r13*71400-r14*23700) +
		r25*(34050-r1*16650-r12*54900+r13*8100) +
		r26*(8100-r1*38520+r12*17820) +
		r27*(-2730+r1*2730)
	ca4r2m1 := 2 * ca4mu

	return -3/(r2*pow4(r1-r2))*(ca00+ca0mu*Lmu+ca0r2*Lr2+ca0r2m1*Lr2m1) +
		1/(4*r2*powi(r1-r2, 6))*(ca20+ca2mu*Lmu+ca2r2*Lr2+ca2r2m1*Lr2m1)*h.a2 +
		1/(10*r2*powi(r1-r2, 8))*(ca40+ca4mu*Lmu+ca4r2*Lr2+ca4r2m1*Lr2m1)*h.a4
}

// deltaLogs are the logarithms and dilogarithms common to the delta(rho-1)
// kernels: ln(1-r1) - 2 ln(r2-1) and the second-order combination.
func (h *hard) deltaLogs(r2 float64) (x1, x2 float64) {
	L1mr1, Lr2, Lr2m1 := math.Log(1-h.r1), math.Log(r2), math.Log(r2-1)
	x1 = L1mr1 - 2*Lr2m1
	x2 = L1mr1*L1mr1 + Lr2m1*Lr2m1 - 2*Lr2*Lr2m1 + L1mr1*(Lr2-2*Lr2m1) +
		special.ReLi2(h.r1) - 3*special.ReLi2(1-r2)
	return x1, x2
}

func (h *hard) t1Tw2Delta(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r13 * r12
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r23 * r22
	r26 := r23 * r23
	Lmu := h.lmu()
	x1, x2 := h.deltaLogs(r2)

	ca00 := r2*(18+pi2-r1*(10+pi2)) + r22*(-10-pi2+r1*(2+pi2))
	ca0mu := r2*(-15+r1*9) + r22*(9-r1*3)
	ca0r1 := -2 + r1*2 + r2*(4-r1*4) + r22*(-2+r1*2)
	ca0r12 := r2*(-2+r1*2) + r22*(2-r1*2)

	ca20 := r2*(5*(34+pi2)-r1*10*(26+pi2)+r12*6*(18+pi2)+r13*(-10-pi2)) +
		r22*(-10*(26+pi2)+r1*18*(18+pi2)-r12*9*(10+pi2)+r13*(2+pi2)) +
		r23*(6*(18+pi2)-r1*9*(10+pi2)+r12*3*(2+pi2)) +
		r24*(-10-pi2+r1*(2+pi2))
	ca2mu := r2*(-135+r1*210-r12*90+r13*9) +
		r22*(210-r1*270+r12*81-r13*3) +
		r23*(-90+r1*81-r12*9) +
		r24*(9-r1*3)
	ca2r1 := -10 + r1*20 - r12*12 + r13*2 +
		r2*(30-r1*56+r12*30-r13*4) +
		r22*(-32+r1*54-r12*24+r13*2) +
		r23*(14-r1*20+r12*6) +
		r24*(-2+r1*2)
	ca2r12 := r2*(-10+r1*20-r12*12+r13*2) +
		r22*(20-r1*36+r12*18-r13*2) +
		r23*(-12+r1*18-r12*6) +
		r24*(2-r1*2)

	ca40 := r2*(42*(50+pi2)-r1*126*(42+pi2)+r12*140*(34+pi2)-r13*70*(26+pi2)+r14*15*(18+pi2)+r15*(-10-pi2)) +
		r22*(-126*(42+pi2)+r1*350*(34+pi2)-r12*350*(26+pi2)+r13*150*(18+pi2)-r14*25*(10+pi2)+r15*(2+pi2)) +
		r23*(140*(34+pi2)-r1*350*(26+pi2)+r12*300*(18+pi2)-r13*100*(10+pi2)+r14*10*(2+pi2)) +
		r24*(-70*(26+pi2)+r1*150*(18+pi2)-r12*100*(10+pi2)+r13*20*(2+pi2)) +
		r25*(15*(18+pi2)-r1*25*(10+pi2)+r12*10*(2+pi2)) +
		r26*(-10-pi2+r1*(2+pi2))
	ca4mu := r2*(-1638+r1*4158-r12*3780+r13*1470-r14*225+r15*9) +
		r22*(4158-r1*9450+r12*7350-r13*2250+r14*225-r15*3) +
		r23*(-3780+r1*7350-r12*4500+r13*900-r14*30) +
		r24*(1470-r1*2250+r12*900-r13*60) +
		r25*(-225+r1*225-r12*30) +
		r26*(9-r1*3)
	ca4r1 := -84 + r1*252 - r12*280 + r13*140 - r14*30 + r15*2 +
		r2*(336-r1*952+r12*980-r13*440+r14*80-r15*4) +
		r22*(-532+r1*1400-r12*1300+r13*500-r14*70+r15*2) +
		r23*(420-r1*1000+r12*800-r13*240+r14*20) +
		r24*(-170+r1*350-r12*220+r13*40) +
		r25*(32-r1*52+r12*20) +
		r26*(-2+r1*2)
	ca4r12 := r2*(-84+r1*252-r12*280+r13*140-r14*30+r15*2) +
		r22*(252-r1*700+r12*700-r13*300+r14*50-r15*2) +
		r23*(-280+r1*700-r12*600+r13*200-r14*20) +
		r24*(140-r1*300+r12*200-r13*40) +
		r25*(-30+r1*50-r12*20) +
		r26*(2-r1*2)

	return -3 / (r2 * powi(r1-r2, 7)) * (pow4(r1-r2)*(ca00+ca0mu*Lmu+ca0r1*x1+ca0r12*x2) +
		6*pow2(r1-r2)*(ca20+ca2mu*Lmu+ca2r1*x1+ca2r12*x2)*h.a2 +
		15*(ca40+ca4mu*Lmu+ca4r1*x1+ca4r12*x2)*h.a4)
}

// dispersion integrates an O(alpha_s) kernel in r2 from just above the
// charm threshold to s0/mc^2.
func (l *LCSR) dispersion(k Kernel, p point, q2, m2 float64, w Weight, s0 float64, t func(r2 float64) float64) (float64, error) {
	const eps = 1e-12
	f := func(r2 float64) float64 {
		weight := (1 - float64(w)) + float64(w)*p.mc2*r2
		return t(r2) * weight * math.Exp(-p.mc2*r2/m2)
	}
	return l.integrate(string(k), q2, f, 1+eps, s0/p.mc2)
}

func (l *LCSR) fNLOTw2(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	v, err := l.dispersion(FNLOTw2, p, q2, m2, w, l.S0Plus(q2), func(r2 float64) float64 {
		return -2 * (h.t1Tw2ThetaRhom1(r2) + h.t1Tw2Theta1mRho(r2) + h.t1Tw2Delta(r2))
	})
	return p.mc2 * p.fpi * v, err
}
