package calc

import (
	"fmt"
	"math"
)

type IRAParams struct {
	Limit      float64
	CatchUp    float64
	CatchUpAge int
	// Covered applies to a filer who is an active workplace-plan participant.
	Covered PhaseOutRange
	// SpousalCovered applies under joint filing to a filer who is not covered
	// but whose spouse is.
	SpousalCovered PhaseOutRange
}

type IRAPerson struct {
	Contribution  float64
	Age           int
	CoveredByPlan bool
}

type IRAPersonResult struct {
	Contribution float64
	Limit        float64
	Deductible   float64
	Capped       bool
	Reduced      bool
	Reason       string
}

type IRAResult struct {
	Taxpayer IRAPersonResult
	Spouse   IRAPersonResult
	Total    float64
}

// IRADeduction computes the deductible traditional IRA contributions.
// preliminaryAGI excludes the IRA deduction itself. spouse is only considered
// when joint is true.
func IRADeduction(taxpayer IRAPerson, spouse *IRAPerson, joint bool, preliminaryAGI float64, p IRAParams) IRAResult {
	var res IRAResult
	spouseCovered := joint && spouse != nil && spouse.CoveredByPlan
	res.Taxpayer = iraForPerson(taxpayer, spouseCovered, preliminaryAGI, p)
	if joint && spouse != nil {
		res.Spouse = iraForPerson(*spouse, taxpayer.CoveredByPlan, preliminaryAGI, p)
	}
	res.Total = res.Taxpayer.Deductible + res.Spouse.Deductible
	return res
}

func iraForPerson(person IRAPerson, spouseCovered bool, agi float64, p IRAParams) IRAPersonResult {
	limit := p.Limit
	if person.Age >= p.CatchUpAge {
		limit += p.CatchUp
	}
	res := IRAPersonResult{Contribution: clampZero(person.Contribution), Limit: limit}
	allowed := math.Min(res.Contribution, limit)
	if allowed < res.Contribution {
		res.Capped = true
		res.Reason = fmt.Sprintf("contribution of $%.0f exceeds the $%.0f annual limit", res.Contribution, limit)
	}
	if allowed == 0 {
		return res
	}

	var r PhaseOutRange
	var who string
	switch {
	case person.CoveredByPlan:
		r, who = p.Covered, "workplace-plan participants"
	case spouseCovered:
		r, who = p.SpousalCovered, "filers whose spouse has a workplace plan"
	default:
		res.Deductible = allowed
		return res
	}

	f := r.Fraction(agi)
	res.Deductible = RoundDollars(allowed * (1 - f))
	switch {
	case f >= 1:
		res.Reduced = true
		res.Reason = joinReason(res.Reason, fmt.Sprintf(
			"no deduction: preliminary AGI $%.0f is at or above the $%.0f limit for %s", agi, r.Upper, who))
	case f > 0:
		res.Reduced = true
		res.Reason = joinReason(res.Reason, fmt.Sprintf(
			"reduced to $%.0f: preliminary AGI $%.0f is inside the $%.0f-$%.0f phase-out for %s",
			res.Deductible, agi, r.Lower, r.Upper, who))
	}
	return res
}

func joinReason(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
