package formfactor

import (
	"math"

	"github.com/verte-zerg/semilep/internal/special"
)

// O(alpha_s) kernels of the tensor form factor.

// smallR1 is the |q2/mc^2| below which ln(1-r1)/r1 is replaced by its
// Taylor series.
var smallR1 = math.Sqrt(2.220446049250313e-16)

// log1mr1 returns ln(1-r1) and ln(1-r1)/r1, the latter from its series for
// tiny r1.
func (h *hard) log1mr1() (l, lOverR1 float64) {
	r1 := h.r1
	if math.Abs(r1) < smallR1 {
		ser := -1 - r1/2 - r1*r1/3 - r1*r1*r1/4
		return ser * r1, ser
	}
	l = math.Log(1 - r1)
	return l, l / r1
}

func (h *hard) t1TTw2Theta1mRho(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r14 * r1
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r24 * r2
	L := math.Log(pow2(r2-1) * h.mc2 / (h.mu * h.mu * r2))

	ca0 := pow4(r1-r2) * (-r1*2 + r2*(1+r1))
	ca2 := pow2(r1-r2) * (-2*(r1*55-r12*65+16*r13) +
		r2*(95-r1*15-r12*45+r13) +
		r22*2*(-35+r1*13+r12*4) +
		r23*6*(1+r1))
	ca4 := (-2877*r1 + 6258*r12 - r13*4592 + r14*1288 - r15*107) +
		r2*(2667-r1*462-r12*5502+r13*4228-r14*782+r15) +
		r22*6*(-791+r1*889-r12*21-r13*131+r14*4) +
		r23*10*(266-r1*280+r12*35+r13*9) +
		r24*10*(-49+r1*26+r12*8) +
		r25*15*(1+r1)

	cb0 := pow4(r1-r2) * (-1 - r1 + 2*r2)
	cb2 := pow2(r1-r2) * (-15 - r1*85 + r12*119 - r13*31 +
		r2*2*(65-r1*34-r12*13) +
		r22*12*(-8+r1*5) +
		r23*12)
	cb4 := (-210 - r1*2331 + r12*5754 - r13*4396 + r14*1259 - r15*106) +
		r2*3*(1127-r1*728-r12*1358+r13*1252-r14*243) +
		r22*30*(-189+r1*245-r12*52-r13*14) +
		r23*20*(161-r1*193+47*r12) +
		r24*15*(-43+33*r1) +
		r25*30

	return -(ca0 + ca2*h.a2 + ca4*h.a4 - L*r2*(cb0+cb2*h.a2+cb4*h.a4)) *
		(r1 - 1) * (r2 - 1) * 3 / (powi(r1-r2, 8) * r2)
}

func (h *hard) t1TTw2ThetaRhom1(r2 float64) float64 {
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
	Lr2, Lr2m1, Lmu := math.Log(r2), math.Log(r2-1), h.lmu()

	C0 := r2 - 1
	Clr2 := 60 * r2
	Cl := 60 * (r1 - 1) * (r2 - 1) * r2

	ca00 := -60 * (r1*2 +
		r2*(-1-r1*12+r12*4) +
		r22*2*(5-r1) +
		r23*(-1))
	ca0mu := -1 + 2*r1 - r2
	ca0r2 := 1 + r12 + r2*(-3-r1*2-r12*3) + r22*(4+r1*2)
	ca0r2m1 := 2 * ca0mu

	ca20 := -5 * (24*(r1*55-r12*90+r13*36) +
		r2*(-1140-r1*7475+r12*13780-r13*5544+r14*288) +
		r22*(8915-r1*3467-r12*8672+r13*2520) +
		r23*(-10097+r1*10501-r12*836) +
		r24*5*(-351*r1+599) +
		r25*(-37))
	ca2mu := -15 + r1*130 - r12*96 + r13*12 +
		r2*(-85-r1*68+r12*60) +
		r22*(119-r1*26) +
		r23*(-31)
	ca2r2 := 15 + r1*70 - r12*144 + r13*60 + r14*6 +
		r2*(-145+r1*128+r12*12-r13*24-r14*18) +
		r22*(166-r1*204+r12*54-r13*72) +
		r23*(-18+r1*40+r12*38) +
		r24*(-1+r1*37)
	ca2r2m1 := 2 * ca2mu

	ca40 := 2 * (-30*(r1*2877-r12*7875+r13*7700-r14*3150+r15*450) +
		r2*(80010+r1*544677-r12*1770111-25*(-r13*69041+2*(r14*13331-r15*1746+r16*36))) +
		r22*(-743127+r1*499947+r12*1581699-25*(r13*78527-r14*27488+r15*1944)) +
		r23*(1406664-r1*2265963+r12*539679+25*(r13*19705-r14*4702)) +
		r24*(-1010261+r1*1718047-r12*769551+r13*40025) +
		r25*(290999+2*(-r1*215674+51507*r12)) +
		r26*2*(-14213+9245*r1) +
		r27*121)
	ca4mu := -210 + r1*3381 - r12*5670 + r13*3220 - r14*645 + r15*30 +
		r2*(-2331-r1*2184+r12*7350-r13*3860+r14*495) +
		r22*(5754-r1*4074-r12*1560+r13*940) +
		r23*(-4396+r1*3756-r12*420) +
		r24*(1259-r1*729) +
		r25*(-106)
	ca4r2 := 210 + r1*2121 - r12*6825 + r13*7000 - r14*2925 + r15*420 + r16*15 +
		r2*(-3591+r1*3444+r12*5565-r13*7900+r14*2475-r15*90-r16*45) +
		r22*(7791-r1*14175+r12*7020-r13*1500+r14*270-r15*630) +
		r23*(-5740+r1*10020-r12*5520+r13*1480-r14*1090) +
		r24*(1135-r1*555+r12*180+r13*570) +
		r25*(270-r1*354+r12*864) +
		r26*(-31+121*r1)
	ca4r2m1 := 2 * ca4mu

	return -1 / (20 * r2 * powi(r1-r2, 8)) * (pow4(r1-r2)*(C0*ca00+Cl*ca0mu*Lmu+Clr2*ca0r2*Lr2+Cl*ca0r2m1*Lr2m1) +
		pow2(r1-r2)*(C0*ca20+Cl*ca2mu*Lmu+Clr2*ca2r2*Lr2+Cl*ca2r2m1*Lr2m1)*h.a2 +
		(C0*ca40+Cl*ca4mu*Lmu+Clr2*ca4r2*Lr2+Cl*ca4r2m1*Lr2m1)*h.a4)
}

func (h *hard) t1TTw2Delta(r2 float64) float64 {
	r1 := h.r1
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r12 * r12
	r15 := r13 * r12
	r16 := r13 * r13
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r22 * r22
	r25 := r23 * r22
	r26 := r23 * r23
	Lr2, Lr2m1, Lmu := math.Log(r2), math.Log(r2-1), h.lmu()
	L1mr1, L1mr1OverR1 := h.log1mr1()
	dilogr1 := special.ReLi2(r1)
	dilog1mr2 := special.ReLi2(1 - r2)

	ca00 := r2 * (-14 + 6*r1 + (6+2*r1)*r2 + pi2*(-1+r1+(1-r1)*r2))
	ca0mu := r2 * (11 - 5*r1 + (-5-r1)*r2)
	ca01mr1 := 2 * (r1 - r12 + (1-4*r1+3*r12)*r2 + (-1+3*r1-2*r12)*r22)
	ca0r2m1 := 4 * (-1 + r1 + (2-2*r1)*r2 + (-1+r1)*r22)
	ca0log2 := 2 * r2 * (1 - r1 + (-1+r1)*r2)
	ca0dlr1 := 2 * r2 * (1 - r1 + (-1+r1)*r2)
	ca0dl1mr2 := 2 * r2 * (-3 + 3*r1 + (3-3*r1)*r2)

	ca20 := r2*(10*(pi2+30)-20*(pi2+22)*r1+12*(pi2+14)*r12-2*(pi2+6)*r13) +
		r22*(-20*(pi2+22)+36*(pi2+14)*r1-18*(pi2+6)*r12+2*(pi2-2)*r13) +
		r23*(12*(pi2+14)-18*(pi2+6)*r1+6*(pi2-2)*r12) +
		r24*(-2*(pi2+6)+2*(pi2-2)*r1)
	ca2mu := r2*(-230+340*r1-132*r12+10*r13) +
		r22*(340-396*r1+90*r12+2*r13) +
		r23*(-132+90*r1+6*r12) +
		r24*(10+2*r1)
	ca2l2 := r2*(-10+20*r1-12*r12+2*r13) +
		r22*(20-36*r1+18*r12-2*r13) +
		r23*(-12+18*r1-6*r12) +
		r24*(2-2*r1)
	ca2r2m1 := 40 - 80*r1 + 48*r12 - 8*r13 +
		r2*(-120+224*r1-120*r12+16*r13) +
		r22*(128-216*r1+96*r12-8*r13) +
		r23*(-56+80*r1-24*r12) +
		r24*(8-8*r1)
	ca21mr1 := -20*r1 + 40*r12 - 24*r13 + 4*r14 +
		r2*(-20+120*r1-176*r12+88*r13-12*r14) +
		r22*(40-176*r1+216*r12-88*r13+8*r14) +
		r23*(-24+88*r1-88*r12+24*r13) +
		r24*(4-12*r1+8*r12)

	ca40 := r2*(42*(46+pi2)-126*(38+pi2)*r1+140*(30+pi2)*r12-70*(22+pi2)*r13+15*(14+pi2)*r14-(6+pi2)*r15) +
		r22*(-126*(38+pi2)+350*(30+pi2)*r1-350*(22+pi2)*r12+150*(14+pi2)*r13-25*(6+pi2)*r14+(-2+pi2)*r15) +
		r23*(140*(30+pi2)-350*(22+pi2)*r1+300*(14+pi2)*r12-100*(6+pi2)*r13+10*(-2+pi2)*r14) +
		r24*(-70*(22+pi2)+150*(14+pi2)*r1-100*(6+pi2)*r12+20*(-2+pi2)*r13) +
		r25*(15*(14+pi2)-25*(6+pi2)*r1+10*(-2+pi2)*r12) +
		r26*(-6-pi2+(-2+pi2)*r1)
	ca4mu := r2*(-1470+3654*r1-3220*r12+1190*r13-165*r14+5*r15) +
		r22*(3654-8050*r1+5950*r12-1650*r13+125*r14+r15) +
		r23*(-3220+5950*r1-3300*r12+500*r13+10*r14) +
		r24*(1190-1650*r1+500*r12+20*r13) +
		r25*(-165+125*r1+10*r12) +
		r26*(5+r1)
	ca4l2 := r2*(-42+126*r1-140*r12+70*r13-15*r14+r15) +
		r22*(126-350*r1+350*r12-150*r13+25*r14-r15) +
		r23*(-140+350*r1-300*r12+100*r13-10*r14) +
		r24*(70-150*r1+100*r12-20*r13) +
		r25*(-15+25*r1-10*r12) +
		r26*(1-r1)
	ca4r2m1 := 168 - 504*r1 + 560*r12 - 280*r13 + 60*r14 - 4*r15 +
		r2*(-672+1904*r1-1960*r12+880*r13-160*r14+8*r15) +
		r22*(1064-2800*r1+2600*r12-1000*r13+140*r14-4*r15) +
		r23*(-840+2000*r1-1600*r12+480*r13-40*r14) +
		r24*(340-700*r1+440*r12-80*r13) +
		r25*(-64+104*r1-40*r12) +
		r26*(4-4*r1)
	ca41mr1 := -84*r1 + 252*r12 - 280*r13 + 140*r14 - 30*r15 + 2*r16 +
		r2*(-84+672*r1-1484*r12+1400*r13-610*r14+112*r15-6*r16) +
		r22*(252-1484*r1+2800*r12-2300*r13+850*r14-122*r15+4*r16) +
		r23*(-280+1400*r1-2300*r12+1600*r13-460*r14+40*r15) +
		r24*(140-610*r1+850*r12-460*r13+80*r14) +
		r25*(-30+112*r1-122*r12+40*r13) +
		r26*(2-6*r1+4*r12)

	l2 := 2*pow2(L1mr1-Lr2m1) - 4*Lr2m1*Lr2 + 2*L1mr1*Lr2 + 2*dilogr1 - 6*dilog1mr2
	return -3 / (r2 * powi(r1-r2, 7)) * (pow4(r1-r2)*(ca00+ca0mu*Lmu+ca01mr1*L1mr1OverR1+ca0r2m1*Lr2m1+
		ca0log2*(L1mr1*(L1mr1+Lr2-2*Lr2m1)+Lr2m1*(Lr2m1-2*Lr2))+ca0dlr1*dilogr1+ca0dl1mr2*dilog1mr2) -
		3*pow2(r1-r2)*(ca20+ca2mu*Lmu+ca21mr1*L1mr1OverR1+ca2r2m1*Lr2m1+ca2l2*l2)*h.a2 -
		15*(ca40+ca4mu*Lmu+ca4r2m1*Lr2m1+ca41mr1*L1mr1OverR1+ca4l2*l2)*h.a4)
}

func (h *hard) t1TTw3pTheta1mRho(r2 float64) float64 {
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	l := math.Log((r2 - h.r1) / (r2 - 1))
	return l * (-1 + 6*lr2m1 - 3*lr2 + 3*h.lmu())
}

func (h *hard) t1TTw3pThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r13 * r1
	r22 := r2 * r2
	r23 := r22 * r2
	r24 := r23 * r2
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr1, l1mr1 := math.Log(math.Abs(r1)), math.Log(1-r1)
	lr2mr1, l := math.Log(r2-r1), math.Log((r1-r2)/(r1-1))

	var dl float64
	if math.Abs(r1) < smallR1 {
		dl = -6*special.ReLi2(1-r2) + 3*special.ReLi2(1/r2) - pi2 + 3*lr2*(3*lr2/2-lr2m1) +
			3*r1*(r2+(2*r2-1)*lr2-1)/r2 +
			3*r12*((4*r22-2)*lr2+(r2-1)*(5*r2+1))/(4*r22) +
			r13*((6*r23-3)*lr2+(r2-1)*(2*r2*(5*r2+2)+1))/(3*r23) +
			r14*(12*(2*r24-1)*lr2+(r2-1)*(r2*(r2*(47*r2+23)+11)+3))/(16*r24)
	} else {
		dl = -3 * (special.ReLi2(1/r1) + special.ReLi2(r2) - special.ReLi2(r2/r1) +
			2*special.ReLi2((r2-1)/(r1-1)) + lr2*(lr1+lr2m1-lr2mr1-lr2/2))
	}
	return 3*pi2/2 - 2*lr2 + 3*lmu*(l1mr1-lr2mr1) + l*(1-6*lr2m1) + dl
}

func (h *hard) t1TTw3pDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	l := math.Log((r2 - 1) / (1 - r1))
	dl := -special.ReLi2(r1) - special.ReLi2(1-r2)

	if math.Abs(r1) < smallR1 {
		_, ser := h.log1mr1()
		return -5*pi2/6 + (-1+(4+1/r2)*r1-ser*r1*r1)*ser +
			(-2-2/r2-2*ser*r1+3*lr2m1)*lr2m1 +
			(ser*r1-2*lr2m1)*lr2 + 2*l*lmu + dl
	}
	l1mr1 := math.Log(1 - r1)
	return -5*pi2/6 + (4-1/r1+1/r2-l1mr1)*l1mr1 +
		(-2-2/r2-2*l1mr1+3*lr2m1)*lr2m1 +
		(l1mr1-2*lr2m1)*lr2 + 2*l*lmu + dl
}

func (h *hard) t1TTw3SigmaTheta1mRho(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr2mr1 := math.Log(r2 - r1)
	return 3 * ((r1-1)*(-4+r2*(3-lr2+lmu+2*lr2m1)) +
		(r1-r2)*r2*(lr2m1*(1+3*lr2-6*lr2m1+6*lr2mr1-3*lmu)+
			lr2mr1*(-1-3*lr2+3*lmu)))
}

func (h *hard) t1TTw3SigmaThetaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12 := r1 * r1
	r13 := r12 * r1
	r14 := r13 * r1
	r22 := r2 * r2
	r23 := r22 * r2
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	lr1, l1mr1 := math.Log(math.Abs(r1)), math.Log(1-r1)
	lr2mr1 := math.Log(r2 - r1)

	var dl float64
	if math.Abs(r1) < smallR1 {
		dl = -r22*(6*special.ReLi2(1-r2)-3*special.ReLi2(1/r2)+pi2) +
			r1*r2*(6*special.ReLi2(1-r2)-3*special.ReLi2(1/r2)+3*r2+6*r2*lr2+pi2-3) +
			r12*3*(3-8*r2+5*r2+4*(r2-2)*r2*lr2)/4 +
			r13*(5/(4*r2)+6-69*r2/4+10*r22+3*(2*r2-3)*r2*lr2)/3 +
			r14*((r2-1)*(r2*(r2*(141*r2-91)-31)-7)+24*(3*r2-4)*r23*lr2)/(48*r22)
	} else {
		dl = r2 * (r1 - r2) * 3 * (special.ReLi2(1/r1) + special.ReLi2(r2) - special.ReLi2(r2/r1) +
			2*special.ReLi2((r2-1)/(r1-1)) + lr2*lr1)
	}
	return -3 * (4 - 9*r2 + 5*r22 -
		lr2*r2*(-3+2*r2-r1*(2*r2-3)) - 2*lr2m1*r2*(r2-1) - lmu*r2*(r2-1) -
		r2*(r1-r2)*(6*lr2*(lr2mr1-lr2m1+lr2/2)+12*lr2m1*(l1mr1-lr2mr1)+
			2*lr2mr1*(1-3*lmu)+2*l1mr1*(-1+3*lmu)+3*pi2)/2 +
		dl)
}

func (h *hard) t1TTw3SigmaDeltaRhom1(r2 float64) float64 {
	r1, lmu := h.r1, h.lmu()
	r12 := r1 * r1
	r22 := r2 * r2
	lr2, lr2m1 := math.Log(r2), math.Log(r2-1)
	l1mr1 := math.Log(1 - r1)
	_, l1mr1OverR1 := h.log1mr1()
	l := math.Log((r2 - 1) / (1 - r1))

	l0 := r2 * (26 - 5*r1 - 5*r2 - (-12+11*r1+r2)*pi2/6)
	l1 := -(4*r1 - 3*r12 + (-6*r1+2*r12)*r2 + (1+2*r1)*r22) * l1mr1OverR1
	l2 := 2 * (4 - 3*r1 + (-3+r1)*r2 + r22) * lr2m1
	l3 := r2 * (-14 + r1 + r2) * lmu
	dl1 := r2 * ((-4+r1+3*r2)*l1mr1*l1mr1 + (-4+5*r1-r2)*lr2m1*lr2m1 + (-4+3*r1+r2)*l1mr1*lr2 -
		2*(-4+3*r1+r2)*(l1mr1+lr2)*lr2m1 + 2*(r1-r2)*l*lmu)
	dl2 := r2 * ((-4+r1+3*r2)*special.ReLi2(r1) + (12-7*r1-5*r2)*special.ReLi2(1-r2))

	return 3 * (l0 + l1 + l2 + l3 + dl1 + dl2)
}

func (l *LCSR) fTNLOTw2(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	v, err := l.dispersion(FTNLOTw2, p, q2, m2, w, l.S0Tensor(q2), func(r2 float64) float64 {
		return 2 * (h.t1TTw2ThetaRhom1(r2) + h.t1TTw2Theta1mRho(r2) + h.t1TTw2Delta(r2))
	})
	return p.mc * p.fpi * v, err
}

func (l *LCSR) fTNLOTw3(p point, q2, m2 float64, w Weight) (float64, error) {
	h := p.hard(q2)
	r1, lmu := h.r1, h.lmu()
	v, err := l.dispersion(FTNLOTw3, p, q2, m2, w, l.S0Tensor(q2), func(r2 float64) float64 {
		return 2/pow2(r2-r1)*(h.t1TTw3pThetaRhom1(r2)+h.t1TTw3pTheta1mRho(r2)+h.t1TTw3pDeltaRhom1(r2)) +
			2/(3*r2*pow3(r2-r1))*(h.t1TTw3SigmaTheta1mRho(r2)+h.t1TTw3SigmaThetaRhom1(r2)+h.t1TTw3SigmaDeltaRhom1(r2))
	})
	if err != nil {
		return 0, err
	}

	weight := (1 - float64(w)) + float64(w)*p.mc2
	local := 4 * (4 - 3*lmu) * weight * math.Exp(-p.mc2/m2) / pow2(1-q2/p.mc2)
	return p.fpi * p.lcda.MuPi * (v - local), nil
}
