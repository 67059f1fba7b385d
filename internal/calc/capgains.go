package calc

import "math"

// CapitalGainThresholds are the taxable-income tops of the 0% and 15% rate
// bands for qualified dividends and long-term gains.
type CapitalGainThresholds struct {
	ZeroRateMax    float64
	FifteenRateMax float64
}

// PreferentialTax follows the Qualified Dividends and Capital Gain Tax
// worksheet. preferential is qualified dividends plus net capital gain. With
// no preferential income it is BracketTax(taxable).
func PreferentialTax(taxable, preferential float64, brackets []Bracket, th CapitalGainThresholds) float64 {
	if taxable <= 0 {
		return 0
	}
	regular := BracketTax(taxable, brackets)
	if preferential <= 0 {
		return regular
	}

	pref := math.Min(preferential, taxable)
	ordinary := taxable - pref

	zeroBand := math.Min(taxable, th.ZeroRateMax)
	zeroTaxed := clampZero(zeroBand - math.Min(ordinary, zeroBand))

	fifteenRoom := clampZero(math.Min(taxable, th.FifteenRateMax) - (ordinary + zeroTaxed))
	fifteenTaxed := math.Min(pref-zeroTaxed, fifteenRoom)
	twentyTaxed := pref - zeroTaxed - fifteenTaxed

	total := dec(BracketTax(ordinary, brackets)).
		Add(dec(fifteenTaxed).Mul(dec(0.15))).
		Add(dec(twentyTaxed).Mul(dec(0.20))).
		Round(2).InexactFloat64()

	return math.Min(total, regular)
}

// NetCapitalGain is the preferential part of capital gains: the smaller of net
// long-term gain and total net gain, never negative.
func NetCapitalGain(shortTerm, longTerm float64) float64 {
	return clampZero(math.Min(longTerm, shortTerm+longTerm))
}

// LimitCapitalLoss caps a net capital loss at limit.
func LimitCapitalLoss(net, limit float64) float64 {
	if net < -limit {
		return -limit
	}
	return net
}
