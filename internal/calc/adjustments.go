package calc

import "math"

type HSAParams struct {
	SelfLimit   float64
	FamilyLimit float64
	CatchUp     float64
	CatchUpAge  int
}

// HSADeduction caps the contribution at the coverage limit. capped reports
// whether any of it was disallowed.
func HSADeduction(contribution float64, family bool, age int, p HSAParams) (deduction float64, capped bool) {
	limit := p.SelfLimit
	if family {
		limit = p.FamilyLimit
	}
	if age >= p.CatchUpAge {
		limit += p.CatchUp
	}
	contribution = clampZero(contribution)
	if contribution > limit {
		return limit, true
	}
	return contribution, false
}

type StudentLoanParams struct {
	Cap      float64
	PhaseOut PhaseOutRange
	// Allowed is false for married filing separately.
	Allowed bool
}

// StudentLoanInterestDeduction applies the cap and the MAGI phase-out.
func StudentLoanInterestDeduction(interest, magi float64, p StudentLoanParams) float64 {
	if !p.Allowed {
		return 0
	}
	base := math.Min(clampZero(interest), p.Cap)
	return RoundDollars(base * (1 - p.PhaseOut.Fraction(magi)))
}

type EducationParams struct {
	Rate       float64
	ExpenseCap float64
	PhaseOut   PhaseOutRange
	Allowed    bool
}

// LifetimeLearningCredit computes the credit on net qualified expenses
// (tuition less scholarships).
func LifetimeLearningCredit(netExpenses, magi float64, p EducationParams) float64 {
	if !p.Allowed || netExpenses <= 0 {
		return 0
	}
	base := math.Min(netExpenses, p.ExpenseCap) * p.Rate
	return RoundCents(base * (1 - p.PhaseOut.Fraction(magi)))
}
