// Package kinematics contains two-body kinematic relations for P -> P' l nu.
package kinematics

import "math"

// Lambda is the Källén function.
func Lambda(a, b, c float64) float64 {
	return a*a + b*b + c*c - 2*(a*b+b*c+c*a)
}

// Momentum returns the daughter three-momentum in the parent rest frame at
// momentum transfer s. A negative radicand yields zero.
func Momentum(mParent, mDaughter, s float64) float64 {
	l := Lambda(mParent*mParent, mDaughter*mDaughter, s)
	if l < 0 {
		return 0
	}
	return math.Sqrt(l) / (2 * mParent)
}

// LeptonVelocity returns v = 1 - m_l^2/s.
func LeptonVelocity(mLepton, s float64) float64 {
	return 1 - mLepton*mLepton/s
}

// Q2FromRecoil converts the recoil w into the momentum transfer q2.
func Q2FromRecoil(mParent, mDaughter, w float64) float64 {
	return mParent*mParent + mDaughter*mDaughter - 2*mParent*mDaughter*w
}

// RecoilFromQ2 converts the momentum transfer q2 into the recoil w.
func RecoilFromQ2(mParent, mDaughter, q2 float64) float64 {
	return (mParent*mParent + mDaughter*mDaughter - q2) / (2 * mParent * mDaughter)
}

// PhaseSpace is the physical q2 window [m_l^2, (m_parent - m_daughter)^2].
type PhaseSpace struct {
	Min float64
	Max float64
}

// NewPhaseSpace builds the q2 window for the given masses.
func NewPhaseSpace(mParent, mDaughter, mLepton float64) PhaseSpace {
	d := mParent - mDaughter
	return PhaseSpace{Min: mLepton * mLepton, Max: d * d}
}

// Contains reports whether s lies inside the closed window.
func (p PhaseSpace) Contains(s float64) bool {
	return p.Min <= s && s <= p.Max
}

// RecoilRange returns the recoil interval [1, w_max] matching the window.
func (p PhaseSpace) RecoilRange(mParent, mDaughter float64) (wMin, wMax float64) {
	return RecoilFromQ2(mParent, mDaughter, p.Max), RecoilFromQ2(mParent, mDaughter, p.Min)
}
