// Package report renders a computed return as a per-category summary.
package report

import (
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

// Line is one labeled amount. Total lines are always printed; others are
// skipped when zero.
type Line struct {
	Label  string
	Amount float64
	Total  bool
}

type Section struct {
	Title string
	Lines []Line
}

type Summary struct {
	TaxYear       int
	FilingStatus  model.FilingStatus
	Sections      []Section
	MarginalRate  float64
	EffectiveRate float64
	Refund        float64
	AmountOwed    float64
}

// Build groups the totals of ret by category. brackets are the ordinary
// brackets ret was computed with and only feed the marginal rate.
func Build(ret *model.TaxReturn, brackets []calc.Bracket) Summary {
	t := ret.Totals
	s := Summary{
		TaxYear:      ret.TaxYear,
		FilingStatus: ret.FilingStatus,
		MarginalRate: calc.MarginalRate(t.TaxableIncome, brackets),
		Refund:       t.Refund,
		AmountOwed:   t.AmountOwed,
	}
	if t.AdjustedGrossIncome > 0 {
		s.EffectiveRate = t.TotalTax / t.AdjustedGrossIncome
	}

	s.Sections = []Section{
		{Title: "Income", Lines: []Line{
			{Label: "Wages", Amount: t.Wages},
			{Label: "Taxable interest", Amount: t.TaxableInterest},
			{Label: "Ordinary dividends", Amount: t.OrdinaryDividends},
			{Label: "Capital gain or loss", Amount: t.CapitalGains},
			{Label: "IRA distributions (taxable)", Amount: t.IRADistributionsTaxable},
			{Label: "Pensions (taxable)", Amount: t.PensionsTaxable},
			{Label: "Social Security (taxable)", Amount: t.SocialSecurityTaxable},
			{Label: "Business income", Amount: t.BusinessIncome},
			{Label: "Rental income", Amount: t.RentalIncome},
			{Label: "Unemployment", Amount: t.Unemployment},
			{Label: "Total income", Amount: t.TotalIncome, Total: true},
		}},
		{Title: "Adjustments", Lines: []Line{
			{Label: "HSA deduction", Amount: t.HSADeduction},
			{Label: "Deductible part of SE tax", Amount: t.SEDeduction},
			{Label: "IRA deduction", Amount: t.IRADeduction},
			{Label: "Student loan interest", Amount: t.StudentLoanInterest},
			{Label: "Adjusted gross income", Amount: t.AdjustedGrossIncome, Total: true},
		}},
		{Title: "Deductions", Lines: []Line{
			{Label: deductionLabel(t.DeductionMethod), Amount: t.DeductionUsed},
			{Label: "Tips", Amount: t.TipsDeduction},
			{Label: "Overtime", Amount: t.OvertimeDeduction},
			{Label: "Car loan interest", Amount: t.CarLoanDeduction},
			{Label: "Senior", Amount: t.SeniorDeduction},
			{Label: "Taxable income", Amount: t.TaxableIncome, Total: true},
		}},
		{Title: "Tax and credits", Lines: []Line{
			{Label: "Income tax", Amount: t.IncomeTax},
			{Label: "Child and dependent credit", Amount: t.ChildTaxCredit},
			{Label: "Education credit", Amount: t.EducationCredit},
			{Label: "Self-employment tax", Amount: t.SETax},
			{Label: "Total tax", Amount: t.TotalTax, Total: true},
		}},
		{Title: "Payments", Lines: []Line{
			{Label: "Federal income tax withheld", Amount: t.FederalWithheld},
			{Label: "Estimated payments", Amount: t.EstimatedPayments},
			{Label: "Additional child tax credit", Amount: t.AdditionalChildTaxCredit},
			{Label: "Total payments", Amount: t.TotalPayments, Total: true},
		}},
	}
	return s
}

func deductionLabel(method string) string {
	if method == "itemized" {
		return "Itemized deductions"
	}
	return "Standard deduction"
}

// Write prints s formatted for tag, with grouped currency amounts.
func (s Summary) Write(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)

	if _, err := p.Fprintf(w, "Federal return %s (%s)\n", strconv.Itoa(s.TaxYear), s.FilingStatus); err != nil {
		return err
	}
	for _, sec := range s.Sections {
		if _, err := p.Fprintf(w, "\n%s\n", sec.Title); err != nil {
			return err
		}
		for _, l := range sec.Lines {
			if l.Amount == 0 && !l.Total {
				continue
			}
			if _, err := p.Fprintf(w, "  %-32s %16s\n", l.Label, money(p, l.Amount)); err != nil {
				return err
			}
		}
	}

	if _, err := p.Fprintf(w, "\n  %-32s %15.1f%%\n  %-32s %15.1f%%\n",
		"Marginal rate", s.MarginalRate*100,
		"Effective rate", s.EffectiveRate*100); err != nil {
		return err
	}

	label, amount := "Refund", s.Refund
	if s.AmountOwed > 0 {
		label, amount = "Amount owed", s.AmountOwed
	}
	_, err := p.Fprintf(w, "  %-32s %16s\n", label, money(p, amount))
	return err
}

func money(p *message.Printer, v float64) string {
	if v < 0 {
		return p.Sprintf("-$%.2f", -v)
	}
	return p.Sprintf("$%.2f", v)
}
