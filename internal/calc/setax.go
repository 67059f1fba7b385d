package calc

import "github.com/shopspring/decimal"

// SEParams are the year-dependent self-employment tax constants.
type SEParams struct {
	WageBase           float64
	NetEarningsFactor  float64
	SocialSecurityRate float64
	MedicareRate       float64
	// Minimum is the net-earnings floor at or below which no SE tax is due.
	Minimum float64
}

type SEResult struct {
	NetProfit         float64
	TaxableBase       float64
	SocialSecurityTax float64
	MedicareTax       float64
	Tax               float64
	DeductibleHalf    float64
}

// SelfEmploymentTax computes Schedule SE for one person. ssWages are the
// person's W-2 Social Security wages, which use up part of the wage base.
func SelfEmploymentTax(profit, ssWages float64, p SEParams) SEResult {
	res := SEResult{NetProfit: profit}
	if profit <= p.Minimum {
		return res
	}

	base := dec(profit).Mul(dec(p.NetEarningsFactor))
	room := decimal.Max(decimal.Zero, dec(p.WageBase).Sub(dec(clampZero(ssWages))))
	ss := decimal.Min(base, room).Mul(dec(p.SocialSecurityRate))
	medicare := base.Mul(dec(p.MedicareRate))
	tax := ss.Add(medicare).Round(2)

	res.TaxableBase = base.Round(2).InexactFloat64()
	res.SocialSecurityTax = ss.Round(2).InexactFloat64()
	res.MedicareTax = medicare.Round(2).InexactFloat64()
	res.Tax = tax.InexactFloat64()
	res.DeductibleHalf = tax.Div(decimal.NewFromInt(2)).Round(2).InexactFloat64()
	return res
}
