package income

import (
	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

// PersonIncome is the part of the aggregate that must stay per filer.
type PersonIncome struct {
	Wages               float64
	SocialSecurityWages float64
	// RetirementPlan is true when any of the person's W-2s has box 13 checked.
	RetirementPlan bool
}

// Summary is the document-level reduction of a sanitized situation. Joint
// documents count toward the taxpayer in the per-person figures.
type Summary struct {
	Wages             float64
	TaxableInterest   float64
	TaxExemptInterest float64

	OrdinaryDividends        float64
	QualifiedDividends       float64
	CapitalGainDistributions float64

	ShortTermGain float64
	LongTermGain  float64
	Sales         int

	IRADistributions float64
	IRATaxable       float64
	Pensions         float64
	PensionsTaxable  float64

	Unemployment           float64
	SocialSecurityBenefits float64
	NonemployeeComp        float64

	MortgageInterest    float64
	QualifiedTuition    float64
	Scholarships        float64
	StudentLoanInterest float64

	W2Withheld       float64
	Form1099Withheld float64

	Taxpayer PersonIncome
	Spouse   PersonIncome
}

// FederalWithheld is the total of every withholding box.
func (s Summary) FederalWithheld() float64 {
	return calc.RoundCents(s.W2Withheld + s.Form1099Withheld)
}

// Person returns the per-person figures for owner.
func (s *Summary) Person(owner model.Owner) *PersonIncome {
	if owner == model.OwnerSpouse {
		return &s.Spouse
	}
	return &s.Taxpayer
}

// Aggregate sums every document box into a Summary. Documents must already be
// sanitized; amounts are added as-is.
func Aggregate(docs *model.Documents) Summary {
	var s Summary

	for _, w := range docs.W2 {
		s.Wages += w.Wages.Float()
		s.W2Withheld += w.FederalWithheld.Float()
		p := s.Person(w.Owner)
		p.Wages += w.Wages.Float()
		p.SocialSecurityWages += w.SocialSecurityWages.Float()
		p.RetirementPlan = p.RetirementPlan || w.RetirementPlan
	}
	for _, d := range docs.INT {
		s.TaxableInterest += d.Interest.Float() + d.TreasuryInterest.Float()
		s.TaxExemptInterest += d.TaxExemptInterest.Float()
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.DIV {
		s.OrdinaryDividends += d.OrdinaryDividends.Float()
		s.QualifiedDividends += d.QualifiedDividends.Float()
		s.CapitalGainDistributions += d.CapitalGainDistributions.Float()
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.NEC {
		s.NonemployeeComp += d.Compensation.Float()
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.B {
		gain := SaleGain(d)
		if d.LongTerm {
			s.LongTermGain += gain
		} else {
			s.ShortTermGain += gain
		}
		s.Sales++
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.R {
		taxable := d.TaxableAmount.Float()
		if d.IRA {
			s.IRADistributions += d.GrossDistribution.Float()
			s.IRATaxable += taxable
		} else {
			s.Pensions += d.GrossDistribution.Float()
			s.PensionsTaxable += taxable
		}
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.G {
		s.Unemployment += d.Unemployment.Float()
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.SSA {
		s.SocialSecurityBenefits += d.NetBenefits.Float()
		s.Form1099Withheld += d.FederalWithheld.Float()
	}
	for _, d := range docs.F1098 {
		s.MortgageInterest += d.MortgageInterest.Float() + d.Points.Float()
	}
	for _, d := range docs.F1098T {
		s.QualifiedTuition += d.QualifiedTuition.Float()
		s.Scholarships += d.Scholarships.Float()
	}
	for _, d := range docs.F1098E {
		s.StudentLoanInterest += d.StudentLoanInterest.Float()
	}

	s.round()
	return s
}

// SaleGain is proceeds minus basis, with any disallowed wash-sale loss added
// back. It may be negative.
func SaleGain(d model.Form1099B) float64 {
	return calc.RoundCents(d.Proceeds.Float() - d.CostBasis.Float() + d.WashSaleDisallowed.Float())
}

func (s *Summary) round() {
	for _, f := range []*float64{
		&s.Wages, &s.TaxableInterest, &s.TaxExemptInterest,
		&s.OrdinaryDividends, &s.QualifiedDividends, &s.CapitalGainDistributions,
		&s.ShortTermGain, &s.LongTermGain,
		&s.IRADistributions, &s.IRATaxable, &s.Pensions, &s.PensionsTaxable,
		&s.Unemployment, &s.SocialSecurityBenefits, &s.NonemployeeComp,
		&s.MortgageInterest, &s.QualifiedTuition, &s.Scholarships, &s.StudentLoanInterest,
		&s.W2Withheld, &s.Form1099Withheld,
		&s.Taxpayer.Wages, &s.Taxpayer.SocialSecurityWages,
		&s.Spouse.Wages, &s.Spouse.SocialSecurityWages,
	} {
		*f = calc.RoundCents(*f)
	}
}
