package calc

import "math"

const (
	MethodStandard = "standard"
	MethodItemized = "itemized"
)

type ItemizedInput struct {
	MedicalExpenses   float64
	StateLocalTaxes   float64
	RealEstateTaxes   float64
	MortgageInterest  float64
	CharitableCash    float64
	CharitableNonCash float64
	Other             float64
}

type ItemizedParams struct {
	SALTCap float64
	// Above PhaseDownThreshold the cap shrinks by PhaseDownRate of the excess,
	// never below SALTFloor. A zero threshold disables the phase-down.
	SALTFloor          float64
	PhaseDownThreshold float64
	PhaseDownRate      float64
	MedicalFloorRate   float64
}

type ItemizedResult struct {
	MedicalExpenses  float64
	MedicalFloor     float64
	Medical          float64
	SALTBeforeCap    float64
	SALTCap          float64
	SALT             float64
	MortgageInterest float64
	Charitable       float64
	Other            float64
	Total            float64
}

// ItemizedDeductions totals Schedule A with the SALT cap and the medical
// AGI floor applied.
func ItemizedDeductions(in ItemizedInput, agi float64, p ItemizedParams) ItemizedResult {
	res := ItemizedResult{
		MedicalExpenses:  clampZero(in.MedicalExpenses),
		MortgageInterest: clampZero(in.MortgageInterest),
		Charitable:       clampZero(in.CharitableCash) + clampZero(in.CharitableNonCash),
		Other:            clampZero(in.Other),
	}
	res.MedicalFloor = RoundCents(clampZero(agi) * p.MedicalFloorRate)
	res.Medical = clampZero(res.MedicalExpenses - res.MedicalFloor)

	res.SALTBeforeCap = clampZero(in.StateLocalTaxes) + clampZero(in.RealEstateTaxes)
	res.SALTCap = SALTCap(agi, p)
	res.SALT = math.Min(res.SALTBeforeCap, res.SALTCap)

	res.Total = RoundCents(res.Medical + res.SALT + res.MortgageInterest + res.Charitable + res.Other)
	return res
}

// SALTCap returns the state-and-local-tax ceiling at the given AGI.
func SALTCap(agi float64, p ItemizedParams) float64 {
	limit := p.SALTCap
	if p.PhaseDownThreshold > 0 && agi > p.PhaseDownThreshold {
		limit = math.Max(p.SALTFloor, limit-RoundCents((agi-p.PhaseDownThreshold)*p.PhaseDownRate))
	}
	return limit
}

// ChooseDeduction picks the larger deduction unless itemizing is forced.
func ChooseDeduction(standard, itemized float64, forceItemize bool) (float64, string) {
	if forceItemize || itemized > standard {
		return itemized, MethodItemized
	}
	return standard, MethodStandard
}
