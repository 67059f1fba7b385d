package calc

import "math"

// SSThresholds are the provisional-income base amounts of the benefits worksheet.
type SSThresholds struct {
	Lower float64
	Upper float64
}

type SSResult struct {
	ProvisionalIncome float64
	Taxable           float64
}

// TaxableSocialSecurity applies the two-tier benefits worksheet. otherIncome is
// the worksheet's line figure: all non-benefit income plus tax-exempt interest,
// less the adjustments that do not depend on AGI (HSA deduction and the
// deductible half of SE tax). The IRA and student-loan adjustments are not
// subtracted since they are computed from AGI afterwards. The result is rounded
// to the dollar.
func TaxableSocialSecurity(benefits, otherIncome float64, th SSThresholds) SSResult {
	if benefits <= 0 {
		return SSResult{ProvisionalIncome: otherIncome}
	}
	provisional := otherIncome + 0.5*benefits
	res := SSResult{ProvisionalIncome: provisional}

	switch {
	case provisional <= th.Lower:
		return res
	case provisional <= th.Upper:
		res.Taxable = math.Min(0.5*benefits, 0.5*(provisional-th.Lower))
	default:
		firstTier := math.Min(0.5*benefits, 0.5*(th.Upper-th.Lower))
		res.Taxable = math.Min(0.85*benefits, firstTier+0.85*(provisional-th.Upper))
	}
	res.Taxable = RoundDollars(res.Taxable)
	return res
}
