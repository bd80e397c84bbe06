// Package observable builds decay rates, asymmetries and kinematic
// distributions of D -> P l nu from the helicity amplitudes.
package observable

import (
	"math"
	"math/cmplx"

	"github.com/verte-zerg/semilep/internal/amplitude"
	"github.com/verte-zerg/semilep/internal/errs"
	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/kinematics"
	"github.com/verte-zerg/semilep/internal/model"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/process"
	"github.com/verte-zerg/semilep/internal/quad"
)

// DToPLNu is the decay D -> P l nu with D = (c qbar) and P = (Q qbar).
type DToPLNu struct {
	descriptor process.Descriptor
	lepton     model.Lepton
	amp        *amplitude.Engine
	ff         formfactor.FormFactors
	ckm        func() complex128

	tauD params.Parameter
	hbar params.Parameter

	user *params.User
	cfg  quad.Config
}

// New resolves the channel, model and form factors selected by o. Every
// configuration error surfaces here.
func New(p *params.Parameters, o options.Options) (*DToPLNu, error) {
	lepton, err := model.ParseLepton(o.Value(options.KeyLepton))
	if err != nil {
		return nil, err
	}
	d, err := process.ParseKey(o.Value(options.KeyHeavy), o.Value(options.KeySpectator), o.Value(options.KeyIsospin))
	if err != nil {
		return nil, err
	}
	cp, err := o.Bool(options.KeyCPConjugate, false)
	if err != nil {
		return nil, err
	}

	u := params.NewUser()
	m, err := model.Make(o.Value(options.KeyModel), p, u)
	if err != nil {
		return nil, err
	}
	ff, err := formfactor.Make(d.Process, o.Value(options.KeyFormFactors), p, o, u)
	if err != nil {
		return nil, err
	}
	amp, err := amplitude.New(amplitude.Config{Descriptor: d, Lepton: lepton, CPConjugate: cp}, m, ff, p, u)
	if err != nil {
		return nil, err
	}
	bundle, err := model.BundleFor(m, d.Heavy)
	if err != nil {
		return nil, err
	}

	b := params.NewBinder(p, u)
	obs := &DToPLNu{
		descriptor: d,
		lepton:     lepton,
		amp:        amp,
		ff:         ff,
		ckm:        bundle.CKM,
		tauD:       b.Bind("life_time::D_" + d.Spectator.String()),
		hbar:       b.Bind("QM::hbar"),
		user:       u,
		cfg:        quad.DefaultConfig().WithEpsRel(0.5e-3),
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return obs, nil
}

// Descriptor returns the resolved channel.
func (d *DToPLNu) Descriptor() process.Descriptor {
	return d.descriptor
}

// FormFactors returns the form factors the amplitudes are built from.
func (d *DToPLNu) FormFactors() formfactor.FormFactors {
	return d.ff
}

// Used lists the parameters the observables depend on.
func (d *DToPLNu) Used() []string {
	return d.user.Used()
}

// PhaseSpace is the physical q2 range [m_l^2, (m_D - m_P)^2].
func (d *DToPLNu) PhaseSpace() kinematics.PhaseSpace {
	return d.amp.PhaseSpace()
}

// RecoilRange is the physical range of w.
func (d *DToPLNu) RecoilRange() (wMin, wMax float64) {
	mD, mP := d.amp.Masses()
	return d.PhaseSpace().RecoilRange(mD, mP)
}

func norm(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

func re(z complex128) float64 {
	return real(z)
}

// NormalizedTwoDifferentialDecayWidth is d^2Gamma/(dq2 dcos(theta_l)) at
// |V_cQ| = 1.
func (d *DToPLNu) NormalizedTwoDifferentialDecayWidth(s, cosTheta float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	c2 := cosTheta * cosTheta
	sin2 := 1 - c2
	cos2 := 2*c2 - 1
	ml := math.Sqrt(1 - a.V)

	return 2 * a.NF * a.P * (norm(a.H0)*sin2 +
		(1-a.V)*norm(a.H0*complex(cosTheta, 0)-a.HtS) +
		8*(((2-a.V)+a.V*cos2)*norm(a.HT)-
			ml*re(a.HT*(cmplx.Conj(a.H0)-cmplx.Conj(a.HtS)*complex(cosTheta, 0))))), nil
}

// NormalizedDifferentialDecayWidth is dGamma/dq2 at |V_cQ| = 1.
func (d *DToPLNu) NormalizedDifferentialDecayWidth(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	return 4.0 / 3 * a.NF * a.P * (norm(a.H0)*(3-a.V) +
		3*norm(a.HtS)*(1-a.V) +
		16*norm(a.HT)*(3-2*a.V) -
		24*math.Sqrt(1-a.V)*re(a.HT*cmplx.Conj(a.H0))), nil
}

// normalizedDifferentialDecayWidthP is the part of dGamma/dq2 carried by f+.
func (d *DToPLNu) normalizedDifferentialDecayWidthP(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	return 4.0 / 3 * a.NF * a.P * norm(a.H0) * (3 - a.V), nil
}

// normalizedDifferentialDecayWidth0 is the part of dGamma/dq2 carried by f0.
func (d *DToPLNu) normalizedDifferentialDecayWidth0(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	return 4.0 / 3 * a.NF * a.P * 3 * norm(a.Ht) * (1 - a.V), nil
}

// numeratorAFB is the forward minus backward rate.
func (d *DToPLNu) numeratorAFB(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	return -4 * a.NF * a.P * (re(a.H0*cmplx.Conj(a.HtS))*(1-a.V) -
		4*math.Sqrt(1-a.V)*re(a.HT*cmplx.Conj(a.HtS))), nil
}

func (d *DToPLNu) numeratorFlatTerm(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	return a.NF * a.P * ((norm(a.H0)+norm(a.HtS))*(1-a.V) +
		16*norm(a.HT) -
		8*math.Sqrt(1-a.V)*re(a.HT*cmplx.Conj(a.H0))), nil
}

// numeratorLeptonPolarization is the rate of positive minus negative lepton
// helicity.
func (d *DToPLNu) numeratorLeptonPolarization(s float64) (float64, error) {
	a, err := d.amp.At(s)
	if err != nil {
		return 0, err
	}
	ml := math.Sqrt(1 - a.V)
	plus := (norm(a.H0)+3*norm(a.Ht))*(1-a.V)/2 +
		3.0/2*norm(a.HS) +
		8*norm(a.HT) -
		ml*re(3*a.Ht*cmplx.Conj(a.HS)+4*a.H0*cmplx.Conj(a.HT))
	minus := norm(a.H0) +
		16*norm(a.HT)*(1-a.V) -
		8*ml*re(a.H0*cmplx.Conj(a.HT))
	return 8.0 / 3 * a.NF * a.P * (plus - minus), nil
}

func (d *DToPLNu) lifetime() float64 {
	return d.tauD.Value() / d.hbar.Value()
}

// DifferentialBranchingRatio is dB/dq2.
func (d *DToPLNu) DifferentialBranchingRatio(s float64) (float64, error) {
	v, err := d.NormalizedDifferentialDecayWidth(s)
	if err != nil {
		return 0, err
	}
	return v * norm(d.ckm()) * d.lifetime(), nil
}

// NormalizedDifferentialBranchingRatio is dB/dq2 at |V_cQ| = 1.
func (d *DToPLNu) NormalizedDifferentialBranchingRatio(s float64) (float64, error) {
	v, err := d.NormalizedDifferentialDecayWidth(s)
	if err != nil {
		return 0, err
	}
	return v * d.lifetime(), nil
}

// ratio divides num by den at s. Both vanish at the phase-space endpoints,
// where the ratio is reported as ErrZeroDenominator.
func ratio(name string, num, den func(float64) (float64, error), s float64) (float64, error) {
	n, err := num(s)
	if err != nil {
		return 0, err
	}
	dd, err := den(s)
	if err != nil {
		return 0, err
	}
	return divide(name, s, n, dd)
}

func divide(name string, s, n, den float64) (float64, error) {
	if den == 0 {
		return 0, errs.Numerical(name, s, errs.ErrZeroDenominator)
	}
	return errs.Finite(name, s, n/den)
}

// DifferentialAFBLeptonic is the leptonic forward-backward asymmetry at q2.
func (d *DToPLNu) DifferentialAFBLeptonic(s float64) (float64, error) {
	return ratio("a_fb_leptonic", d.numeratorAFB, d.NormalizedDifferentialDecayWidth, s)
}

// DifferentialFlatTerm is the flat term F_H at q2.
func (d *DToPLNu) DifferentialFlatTerm(s float64) (float64, error) {
	return ratio("flat_term", d.numeratorFlatTerm, d.NormalizedDifferentialDecayWidth, s)
}

// DifferentialLeptonPolarization is the longitudinal lepton polarization at q2.
func (d *DToPLNu) DifferentialLeptonPolarization(s float64) (float64, error) {
	return ratio("lepton_polarization", d.numeratorLeptonPolarization, d.NormalizedDifferentialDecayWidth, s)
}

// DifferentialPDFQ2 is the normalized q2 distribution. The normalization is
// integrated over the full phase space on every call.
func (d *DToPLNu) DifferentialPDFQ2(q2 float64) (float64, error) {
	ps := d.PhaseSpace()
	num, err := d.NormalizedDifferentialBranchingRatio(q2)
	if err != nil {
		return 0, err
	}
	den, err := d.integrate("pdf_q2", d.NormalizedDifferentialBranchingRatio, ps.Min, ps.Max)
	if err != nil {
		return 0, err
	}
	return divide("pdf_q2", q2, num, den)
}

// DifferentialPDFW is the normalized distribution in the recoil w.
func (d *DToPLNu) DifferentialPDFW(w float64) (float64, error) {
	mD, mP := d.amp.Masses()
	v, err := d.DifferentialPDFQ2(kinematics.Q2FromRecoil(mD, mP, w))
	if err != nil {
		return 0, err
	}
	return 2 * mD * mP * v, nil
}

// integrate runs QAGS over an observable that can fail. The first failure of
// f aborts the quadrature and is returned as is. A reversed range, such as
// the phase space of a lepton heavier than the mass gap, is an error.
func (d *DToPLNu) integrate(name string, f func(float64) (float64, error), a, b float64) (float64, error) {
	if a > b {
		return 0, &errs.NumericalError{Kernel: name, Point: a, Bound: b, Err: errs.ErrEmptyRange}
	}
	var ferr error
	g := func(s float64) float64 {
		if ferr != nil {
			return math.NaN()
		}
		v, err := f(s)
		if err != nil {
			ferr = err
			return math.NaN()
		}
		return v
	}
	v, err := quad.QAGS(g, a, b, d.cfg)
	if ferr != nil {
		return 0, ferr
	}
	if err != nil {
		return 0, &errs.NumericalError{Kernel: name, Point: a, Bound: b, Err: err}
	}
	return errs.Finite(name, a, v)
}

// IntegratedBranchingRatio is B over [sMin, sMax].
func (d *DToPLNu) IntegratedBranchingRatio(sMin, sMax float64) (float64, error) {
	return d.integrate("integrated_branching_ratio", d.DifferentialBranchingRatio, sMin, sMax)
}

// NormalizedIntegratedBranchingRatio is B over [sMin, sMax] at |V_cQ| = 1.
func (d *DToPLNu) NormalizedIntegratedBranchingRatio(sMin, sMax float64) (float64, error) {
	return d.integrate("normalized_integrated_branching_ratio", d.NormalizedDifferentialBranchingRatio, sMin, sMax)
}

// NormalizedIntegratedDecayWidth is Gamma over [sMin, sMax] at |V_cQ| = 1.
func (d *DToPLNu) NormalizedIntegratedDecayWidth(sMin, sMax float64) (float64, error) {
	return d.integrate("normalized_integrated_decay_width", d.NormalizedDifferentialDecayWidth, sMin, sMax)
}

// NormalizedIntegratedDecayWidthP is the f+ part of NormalizedIntegratedDecayWidth.
func (d *DToPLNu) NormalizedIntegratedDecayWidthP(sMin, sMax float64) (float64, error) {
	return d.integrate("normalized_integrated_decay_width_p", d.normalizedDifferentialDecayWidthP, sMin, sMax)
}

// NormalizedIntegratedDecayWidth0 is the f0 part of NormalizedIntegratedDecayWidth.
func (d *DToPLNu) NormalizedIntegratedDecayWidth0(sMin, sMax float64) (float64, error) {
	return d.integrate("normalized_integrated_decay_width_0", d.normalizedDifferentialDecayWidth0, sMin, sMax)
}

// integratedRatio integrates numerator and denominator separately.
func (d *DToPLNu) integratedRatio(name string, num func(float64) (float64, error), sMin, sMax float64) (float64, error) {
	n, err := d.integrate(name, num, sMin, sMax)
	if err != nil {
		return 0, err
	}
	den, err := d.integrate(name, d.NormalizedDifferentialDecayWidth, sMin, sMax)
	if err != nil {
		return 0, err
	}
	return divide(name, sMin, n, den)
}

// IntegratedAFBLeptonic is the forward-backward asymmetry over [sMin, sMax].
func (d *DToPLNu) IntegratedAFBLeptonic(sMin, sMax float64) (float64, error) {
	return d.integratedRatio("integrated_a_fb_leptonic", d.numeratorAFB, sMin, sMax)
}

// IntegratedFlatTerm is the flat term over [sMin, sMax].
func (d *DToPLNu) IntegratedFlatTerm(sMin, sMax float64) (float64, error) {
	return d.integratedRatio("integrated_flat_term", d.numeratorFlatTerm, sMin, sMax)
}

// IntegratedLeptonPolarization is the lepton polarization over [sMin, sMax].
func (d *DToPLNu) IntegratedLeptonPolarization(sMin, sMax float64) (float64, error) {
	return d.integratedRatio("integrated_lepton_polarization", d.numeratorLeptonPolarization, sMin, sMax)
}

// IntegratedPDFQ2 is the mean of the q2 distribution over [q2Min, q2Max].
func (d *DToPLNu) IntegratedPDFQ2(q2Min, q2Max float64) (float64, error) {
	if q2Min >= q2Max {
		return 0, &errs.NumericalError{Kernel: "integrated_pdf_q2", Point: q2Min, Bound: q2Max, Err: errs.ErrEmptyRange}
	}
	ps := d.PhaseSpace()
	num, err := d.integrate("integrated_pdf_q2", d.NormalizedDifferentialBranchingRatio, q2Min, q2Max)
	if err != nil {
		return 0, err
	}
	den, err := d.integrate("integrated_pdf_q2", d.NormalizedDifferentialBranchingRatio, ps.Min, ps.Max)
	if err != nil {
		return 0, err
	}
	mean, err := divide("integrated_pdf_q2", q2Min, num, den)
	if err != nil {
		return 0, err
	}
	return mean / (q2Max - q2Min), nil
}

// IntegratedPDFW is the mean of the w distribution over [wMin, wMax].
func (d *DToPLNu) IntegratedPDFW(wMin, wMax float64) (float64, error) {
	if wMin >= wMax {
		return 0, &errs.NumericalError{Kernel: "integrated_pdf_w", Point: wMin, Bound: wMax, Err: errs.ErrEmptyRange}
	}
	mD, mP := d.amp.Masses()
	q2Max := kinematics.Q2FromRecoil(mD, mP, wMin)
	q2Min := kinematics.Q2FromRecoil(mD, mP, wMax)
	v, err := d.IntegratedPDFQ2(q2Min, q2Max)
	if err != nil {
		return 0, err
	}
	return v * (q2Max - q2Min) / (wMax - wMin), nil
}
