package calc

// PhaseOutRange is an income range over which a benefit shrinks linearly to zero.
type PhaseOutRange struct {
	Lower float64
	Upper float64
}

// Fraction returns the share of the benefit lost at income, clamped to [0,1].
func (r PhaseOutRange) Fraction(income float64) float64 {
	if income <= r.Lower {
		return 0
	}
	if income >= r.Upper || r.Upper <= r.Lower {
		return 1
	}
	f := (income - r.Lower) / (r.Upper - r.Lower)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
