package params

// defaults is the reference parameter set. Masses in GeV, lifetimes in s.
var defaults = map[string]float64{
	// Meson and lepton masses.
	"mass::D_u":  1.86483,
	"mass::D_d":  1.86965,
	"mass::D_s":  1.96834,
	"mass::pi^0": 0.1349768,
	"mass::pi^+": 0.13957039,
	"mass::pi^-": 0.13957039,
	"mass::K_u":  0.493677,
	"mass::K_d":  0.497611,
	"mass::e":    0.000510999,
	"mass::mu":   0.1056584,
	"mass::tau":  1.77686,
	"mass::Z":    91.1876,

	// Quark masses: m_Q(m_Q) for heavy quarks, m_q(2 GeV) for light ones.
	"mass::c(MSbar)": 1.27,
	"mass::b(MSbar)": 4.18,
	"mass::u(2GeV)":  0.00216,
	"mass::d(2GeV)":  0.00467,
	"mass::s(2GeV)":  0.0934,

	"life_time::D_u": 4.101e-13,
	"life_time::D_d": 1.040e-12,
	"life_time::D_s": 5.04e-13,

	"QM::hbar":         6.582119514e-25,
	"WET::G_Fermi":     1.1663787e-5,
	"QCD::alpha_s(MZ)": 0.1181,

	// Wolfenstein parameters.
	"CKM::lambda": 0.22500,
	"CKM::A":      0.826,
	"CKM::rhobar": 0.159,
	"CKM::etabar": 0.348,

	// Renormalization scale of the effective couplings.
	"dcenue::mu":     2.0,
	"dcmunumu::mu":   2.0,
	"dctaunutau::mu": 2.0,
	"scenue::mu":     2.0,
	"scmunumu::mu":   2.0,
	"sctaunutau::mu": 2.0,

	// Pion decay constant and twist-2/3/4 LCDA parameters at 1 GeV.
	"decay-constant::pi": 0.1304,
	"pi::a2@1GeV":        0.17,
	"pi::a4@1GeV":        0.06,
	"pi::f3@1GeV":        0.0045,
	"pi::omega3@1GeV":    -1.5,
	"pi::omega4@1GeV":    0.2,
	"pi::delta^2@1GeV":   0.18,

	// Vacuum condensates.
	"QCD::m_0^2":   0.8,
	"QCD::cond_GG": 0.012,
	"QCD::r_vac":   1.0,

	// D -> pi light-cone sum rule.
	"D->pi::M^2@KKMO2009":        4.5,
	"D->pi::Mp^2@KKMO2009":       2.0,
	"D->pi::s_0^+(0)@KKMO2009":   7.0,
	"D->pi::s_0^+'(0)@KKMO2009":  0.0,
	"D->pi::s_0^+''(0)@KKMO2009": 0.0,
	"D->pi::s_0^0(0)@KKMO2009":   7.0,
	"D->pi::s_0^0'(0)@KKMO2009":  0.0,
	"D->pi::s_0^0''(0)@KKMO2009": 0.0,
	"D->pi::s_0^T(0)@KKMO2009":   7.0,
	"D->pi::s_0^T'(0)@KKMO2009":  0.0,
	"D->pi::s_0^T''(0)@KKMO2009": 0.0,
	"D->pi::sp_0^B@KKMO2009":     5.6,
	"D->pi::mu@KKMO2009":         1.5,
	"D->pi::zeta(NNLO)@KKMO2009": 0.0,

	// z-expansion coefficients.
	"D->pi::alpha^f+_0@BSZ2015": 0.63,
	"D->pi::alpha^f+_1@BSZ2015": -0.65,
	"D->pi::alpha^f+_2@BSZ2015": 0.0,
	"D->pi::alpha^f0_1@BSZ2015": 0.55,
	"D->pi::alpha^f0_2@BSZ2015": 0.0,
	"D->pi::alpha^fT_0@BSZ2015": 0.51,
	"D->pi::alpha^fT_1@BSZ2015": -0.9,
	"D->pi::alpha^fT_2@BSZ2015": 0.0,

	"D->K::alpha^f+_0@BSZ2015": 0.75,
	"D->K::alpha^f+_1@BSZ2015": -0.9,
	"D->K::alpha^f+_2@BSZ2015": 0.0,
	"D->K::alpha^f0_1@BSZ2015": 0.3,
	"D->K::alpha^f0_2@BSZ2015": 0.0,
	"D->K::alpha^fT_0@BSZ2015": 0.70,
	"D->K::alpha^fT_1@BSZ2015": -1.0,
	"D->K::alpha^fT_2@BSZ2015": 0.0,

	"D_s->K::alpha^f+_0@BSZ2015": 0.68,
	"D_s->K::alpha^f+_1@BSZ2015": -0.8,
	"D_s->K::alpha^f+_2@BSZ2015": 0.0,
	"D_s->K::alpha^f0_1@BSZ2015": 0.4,
	"D_s->K::alpha^f0_2@BSZ2015": 0.0,
	"D_s->K::alpha^fT_0@BSZ2015": 0.60,
	"D_s->K::alpha^fT_1@BSZ2015": -1.0,
	"D_s->K::alpha^fT_2@BSZ2015": 0.0,
}

func init() {
	// Wilson coefficients of the c -> (d, s) l nu effective Hamiltonian.
	for _, q := range []string{"d", "s"} {
		for _, l := range []string{"e", "mu", "tau"} {
			prefix := q + "c" + l + "nu" + l + "::"
			for _, c := range []string{"cVL", "cVR", "cSL", "cSR", "cT"} {
				re := 0.0
				if c == "cVL" {
					re = 1.0
				}
				defaults[prefix+"Re{"+c+"}"] = re
				defaults[prefix+"Im{"+c+"}"] = 0.0
			}
		}
	}
}
