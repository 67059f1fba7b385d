package calc

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Bracket is one slice of a progressive schedule. The last bracket of a table
// has UpperBound +Inf.
type Bracket struct {
	UpperBound float64
	Rate       float64
}

// BracketTax applies the brackets marginally to taxable income and rounds the
// total, not each slice, to the cent.
func BracketTax(taxable float64, brackets []Bracket) float64 {
	if taxable <= 0 {
		return 0
	}
	income := dec(taxable)
	total := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if !income.GreaterThan(lower) {
			break
		}
		top := income
		if !math.IsInf(b.UpperBound, 1) {
			upper := dec(b.UpperBound)
			if upper.LessThan(top) {
				top = upper
			}
			total = total.Add(top.Sub(lower).Mul(dec(b.Rate)))
			lower = upper
			continue
		}
		total = total.Add(top.Sub(lower).Mul(dec(b.Rate)))
		break
	}
	return total.Round(2).InexactFloat64()
}

// MarginalRate returns the rate of the bracket taxable income ends in.
func MarginalRate(taxable float64, brackets []Bracket) float64 {
	for _, b := range brackets {
		if taxable <= b.UpperBound {
			return b.Rate
		}
	}
	return 0
}

var errNoBrackets = errors.New("bracket table is empty")

// ValidateBrackets checks that bounds ascend strictly, rates lie in [0,1] and
// the final bracket is unbounded.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return errNoBrackets
	}
	prev := 0.0
	for i, b := range brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket %d: rate %v outside [0,1]", i, b.Rate)
		}
		if b.UpperBound <= prev {
			return fmt.Errorf("bracket %d: upper bound %v not above %v", i, b.UpperBound, prev)
		}
		if math.IsInf(b.UpperBound, 1) && i != len(brackets)-1 {
			return fmt.Errorf("bracket %d: unbounded bracket must be last", i)
		}
		prev = b.UpperBound
	}
	if !math.IsInf(brackets[len(brackets)-1].UpperBound, 1) {
		return errors.New("final bracket must be unbounded")
	}
	return nil
}
