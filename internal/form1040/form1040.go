// Package form1040 lays TaxTotals out by Form 1040 line number and back.
package form1040

import (
	"math"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

// Project maps totals onto Form 1040 lines. It reads nothing but t.
func Project(t *model.TaxTotals, status model.FilingStatus) model.Form1040Record {
	r := model.Form1040Record{
		FilingStatus: status,

		Line1a: t.Wages,
		Line1z: t.Wages,
		Line2a: t.TaxExemptInterest,
		Line2b: t.TaxableInterest,
		Line3a: t.QualifiedDividends,
		Line3b: t.OrdinaryDividends,
		Line4a: t.IRADistributions,
		Line4b: t.IRADistributionsTaxable,
		Line5a: t.Pensions,
		Line5b: t.PensionsTaxable,
		Line6a: t.SocialSecurityBenefits,
		Line6b: t.SocialSecurityTaxable,
		Line7:  t.CapitalGains,
		Line8:  t.AdditionalIncome,
		Line9:  t.TotalIncome,
		Line10: t.TotalAdjustments,
		Line11: t.AdjustedGrossIncome,

		Line12:  t.DeductionUsed,
		Line13b: t.OBBBDeduction,
		Line14:  calc.RoundCents(t.DeductionUsed + t.OBBBDeduction),
		Line15:  t.TaxableIncome,

		Line16: t.IncomeTax,
		Line17: calc.RoundCents(t.TaxBeforeCredits - t.IncomeTax),
		Line18: t.TaxBeforeCredits,
		Line19: t.ChildTaxCredit,
		Line20: t.EducationCredit,
		Line21: t.NonrefundableCredits,
		Line22: math.Max(0, calc.RoundCents(t.TaxBeforeCredits-t.NonrefundableCredits)),
		Line23: t.OtherTaxes,
		Line24: t.TotalTax,

		Line25a: t.W2Withholding,
		Line25b: t.Form1099Withheld,
		Line25d: t.FederalWithheld,
		Line26:  t.EstimatedPayments,
		Line28:  t.AdditionalChildTaxCredit,
		Line32:  t.RefundableCredits,
		Line33:  t.TotalPayments,

		Line34:  t.Refund,
		Line35a: t.Refund,
		Line37:  t.AmountOwed,
	}
	return r
}

// Totals recovers every TaxTotals field that has its own Form 1040 line.
// Fields without one (schedule detail, per-kind OBBB parts) are left zero.
func Totals(r *model.Form1040Record) model.TaxTotals {
	return model.TaxTotals{
		Wages:                    r.Line1z,
		TaxExemptInterest:        r.Line2a,
		TaxableInterest:          r.Line2b,
		QualifiedDividends:       r.Line3a,
		OrdinaryDividends:        r.Line3b,
		IRADistributions:         r.Line4a,
		IRADistributionsTaxable:  r.Line4b,
		Pensions:                 r.Line5a,
		PensionsTaxable:          r.Line5b,
		SocialSecurityBenefits:   r.Line6a,
		SocialSecurityTaxable:    r.Line6b,
		CapitalGains:             r.Line7,
		AdditionalIncome:         r.Line8,
		TotalIncome:              r.Line9,
		TotalAdjustments:         r.Line10,
		AdjustedGrossIncome:      r.Line11,
		DeductionUsed:            r.Line12,
		OBBBDeduction:            r.Line13b,
		TaxableIncome:            r.Line15,
		IncomeTax:                r.Line16,
		TaxBeforeCredits:         r.Line18,
		ChildTaxCredit:           r.Line19,
		EducationCredit:          r.Line20,
		NonrefundableCredits:     r.Line21,
		OtherTaxes:               r.Line23,
		TotalTax:                 r.Line24,
		W2Withholding:            r.Line25a,
		Form1099Withheld:         r.Line25b,
		FederalWithheld:          r.Line25d,
		EstimatedPayments:        r.Line26,
		AdditionalChildTaxCredit: r.Line28,
		RefundableCredits:        r.Line32,
		TotalPayments:            r.Line33,
		Refund:                   r.Line35a,
		AmountOwed:               r.Line37,
	}
}
