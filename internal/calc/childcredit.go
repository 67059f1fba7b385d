package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

type ChildCreditParams struct {
	PerChild              float64
	PerOtherDependent     float64
	RefundablePerChild    float64
	PhaseOutThreshold     float64
	PhaseOutStep          float64
	PhaseOutPerStep       float64
	EarnedIncomeThreshold float64
	EarnedIncomeRate      float64
}

type ChildCreditResult struct {
	QualifyingChildren int
	OtherDependents    int
	BaseCredit         float64
	PhaseOutReduction  float64
	CreditAfterPhase   float64
	Nonrefundable      float64
	Refundable         float64
}

// ChildTaxCredit computes the combined child tax credit and credit for other
// dependents. The phase-out applies to the combined credit; the nonrefundable
// part is limited to taxBeforeCredits and the unused remainder is refundable up
// to the per-child cap and the earned-income limit.
func ChildTaxCredit(children, others int, agi, taxBeforeCredits, earnedIncome float64, p ChildCreditParams) ChildCreditResult {
	res := ChildCreditResult{QualifyingChildren: children, OtherDependents: others}
	res.BaseCredit = float64(children)*p.PerChild + float64(others)*p.PerOtherDependent
	if res.BaseCredit == 0 {
		return res
	}

	if agi > p.PhaseOutThreshold && p.PhaseOutStep > 0 {
		steps := math.Ceil(RoundCents((agi - p.PhaseOutThreshold) / p.PhaseOutStep))
		res.PhaseOutReduction = math.Min(steps*p.PhaseOutPerStep, res.BaseCredit)
	}
	res.CreditAfterPhase = res.BaseCredit - res.PhaseOutReduction

	res.Nonrefundable = math.Min(res.CreditAfterPhase, clampZero(taxBeforeCredits))
	unused := res.CreditAfterPhase - res.Nonrefundable
	if unused <= 0 || children == 0 {
		return res
	}
	earnedCap := dec(clampZero(earnedIncome - p.EarnedIncomeThreshold)).Mul(dec(p.EarnedIncomeRate))
	refundable := decimal.Min(dec(unused), dec(float64(children)*p.RefundablePerChild), earnedCap)
	res.Refundable = refundable.Round(2).InexactFloat64()
	return res
}
