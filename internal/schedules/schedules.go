// Package schedules reshapes sanitized inputs and aggregated income into the
// line items of the supporting IRS schedules. Every builder is a pure function
// of its arguments and is re-run in full on each calculation.
package schedules

import (
	"sort"

	"tax-engine/internal/calc"
	"tax-engine/internal/income"
	"tax-engine/internal/model"
)

// ScheduleBThreshold is the interest or dividend total above which Schedule B
// must be filed.
const ScheduleBThreshold = 1500

func BuildB(docs *model.Documents) model.ScheduleB {
	b := model.ScheduleB{Interest: []model.PayerAmount{}, Dividends: []model.PayerAmount{}}
	for _, d := range docs.INT {
		amt := calc.RoundCents(d.Interest.Float() + d.TreasuryInterest.Float())
		b.Interest = append(b.Interest, model.PayerAmount{DocumentID: d.ID, Payer: d.Payer, Amount: amt})
		b.TotalInterest += amt
	}
	for _, d := range docs.DIV {
		amt := d.OrdinaryDividends.Float()
		b.Dividends = append(b.Dividends, model.PayerAmount{DocumentID: d.ID, Payer: d.Payer, Amount: amt})
		b.TotalDividends += amt
	}
	b.TotalInterest = calc.RoundCents(b.TotalInterest)
	b.TotalDividends = calc.RoundCents(b.TotalDividends)
	b.Required = b.TotalInterest > ScheduleBThreshold || b.TotalDividends > ScheduleBThreshold
	return b
}

// BuildC returns one Schedule C per business. 1099-NEC compensation is added
// to the gross receipts of the business it names, or of the owner's first
// business. An owner with NEC income but no business gets an implicit one.
func BuildC(businesses []model.Business, nec []model.Form1099NEC) []model.ScheduleC {
	out := make([]model.ScheduleC, 0, len(businesses))
	byID := map[string]int{}
	firstByOwner := map[model.Owner]int{}
	for _, b := range businesses {
		owner := filerOf(b.Owner)
		byID[b.ID] = len(out)
		if _, ok := firstByOwner[owner]; !ok {
			firstByOwner[owner] = len(out)
		}
		out = append(out, model.ScheduleC{
			BusinessID:    b.ID,
			Owner:         owner,
			Name:          b.Name,
			GrossReceipts: b.GrossReceipts.Float(),
			Expenses:      b.Expenses.Float(),
		})
	}

	for _, d := range nec {
		owner := filerOf(d.Owner)
		idx, ok := byID[d.BusinessID]
		if d.BusinessID == "" || !ok {
			idx, ok = firstByOwner[owner]
		}
		if !ok {
			id := "nec-" + string(owner)
			idx = len(out)
			byID[id] = idx
			firstByOwner[owner] = idx
			out = append(out, model.ScheduleC{BusinessID: id, Owner: owner, Name: d.Payer})
		}
		out[idx].GrossReceipts += d.Compensation.Float()
		out[idx].NECDocuments = append(out[idx].NECDocuments, d.ID)
	}

	for i := range out {
		out[i].GrossReceipts = calc.RoundCents(out[i].GrossReceipts)
		out[i].NetProfit = calc.RoundCents(out[i].GrossReceipts - out[i].Expenses)
	}
	return out
}

// BuildD nets the year's sales and capital gain distributions and applies the
// capital loss limit. limited reports whether part of a loss was carried over.
func BuildD(s income.Summary, lossLimit float64) (d model.ScheduleD, limited bool) {
	d.ShortTermGain = s.ShortTermGain
	d.CapitalGainDistributions = s.CapitalGainDistributions
	d.LongTermGain = calc.RoundCents(s.LongTermGain + s.CapitalGainDistributions)
	d.NetGain = calc.RoundCents(d.ShortTermGain + d.LongTermGain)
	d.AllowedGain = calc.LimitCapitalLoss(d.NetGain, lossLimit)
	d.Transactions = s.Sales
	return d, d.AllowedGain != d.NetGain
}

// BuildE lists rental properties. Net losses flow through unchanged.
func BuildE(properties []model.RentalProperty) model.ScheduleE {
	e := model.ScheduleE{Properties: make([]model.ScheduleEProperty, 0, len(properties))}
	for _, p := range properties {
		row := model.ScheduleEProperty{
			PropertyID:   p.ID,
			Owner:        filerOf(p.Owner),
			Address:      p.Address,
			Rents:        p.Rents.Float(),
			Expenses:     p.Expenses.Float(),
			Depreciation: p.Depreciation.Float(),
		}
		row.Net = calc.RoundCents(row.Rents - row.Expenses - row.Depreciation)
		e.Total += row.Net
		e.Properties = append(e.Properties, row)
	}
	e.Total = calc.RoundCents(e.Total)
	return e
}

// BuildSE computes self-employment tax separately for each filer with
// Schedule C profit. Each filer's W-2 Social Security wages reduce their own
// wage base.
func BuildSE(cs []model.ScheduleC, s income.Summary, p calc.SEParams) []model.ScheduleSE {
	profit := map[model.Owner]float64{}
	for _, c := range cs {
		profit[c.Owner] += c.NetProfit
	}
	owners := make([]model.Owner, 0, len(profit))
	for o := range profit {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })

	out := []model.ScheduleSE{}
	for _, o := range owners {
		net := calc.RoundCents(profit[o])
		if net <= 0 {
			continue
		}
		r := calc.SelfEmploymentTax(net, s.Person(o).SocialSecurityWages, p)
		if r.Tax == 0 {
			continue
		}
		out = append(out, model.ScheduleSE{
			Owner:             o,
			NetProfit:         r.NetProfit,
			TaxableBase:       r.TaxableBase,
			SocialSecurityTax: r.SocialSecurityTax,
			MedicareTax:       r.MedicareTax,
			Tax:               r.Tax,
			DeductibleHalf:    r.DeductibleHalf,
		})
	}
	return out
}

// SETotals sums the tax and deductible half across Schedule SE records.
func SETotals(se []model.ScheduleSE) (tax, deductible float64) {
	for _, s := range se {
		tax += s.Tax
		deductible += s.DeductibleHalf
	}
	return calc.RoundCents(tax), calc.RoundCents(deductible)
}

// BusinessIncome is the Schedule 1 line 3 total across every Schedule C.
func BusinessIncome(cs []model.ScheduleC) float64 {
	var total float64
	for _, c := range cs {
		total += c.NetProfit
	}
	return calc.RoundCents(total)
}

func Build1(t *model.TaxTotals) model.Schedule1 {
	return model.Schedule1{
		BusinessIncome:      t.BusinessIncome,
		RentalIncome:        t.RentalIncome,
		Unemployment:        t.Unemployment,
		AdditionalIncome:    t.AdditionalIncome,
		HSADeduction:        t.HSADeduction,
		SEDeduction:         t.SEDeduction,
		IRADeduction:        t.IRADeduction,
		StudentLoanInterest: t.StudentLoanInterest,
		TotalAdjustments:    t.TotalAdjustments,
	}
}

func Build1A(t *model.TaxTotals) model.Schedule1A {
	return model.Schedule1A{
		Tips:     t.TipsDeduction,
		Overtime: t.OvertimeDeduction,
		CarLoan:  t.CarLoanDeduction,
		Senior:   t.SeniorDeduction,
		Total:    t.OBBBDeduction,
	}
}

func Build2(t *model.TaxTotals) model.Schedule2 {
	return model.Schedule2{SETax: t.SETax, TotalOtherTaxes: t.OtherTaxes}
}

// Build3 carries nonrefundable credits other than the child credits. It has no
// refundable payments yet.
func Build3(t *model.TaxTotals) model.Schedule3 {
	return model.Schedule3{
		EducationCredit:    t.EducationCredit,
		TotalNonrefundable: t.EducationCredit,
	}
}

func filerOf(o model.Owner) model.Owner {
	if o == model.OwnerSpouse {
		return model.OwnerSpouse
	}
	return model.OwnerTaxpayer
}

// AdditionalIncome is Schedule 1 line 10: business, rental and unemployment.
func AdditionalIncome(business, rental, unemployment float64) float64 {
	return calc.RoundCents(business + rental + unemployment)
}
