package model

import (
	"math"
	"strconv"
	"strings"
)

// Amount is a numeric box value on an income document or questionnaire answer.
// It decodes JSON numbers and numeric strings ("1,234.50", "$12"). Null, empty
// strings and anything unreadable decode to a NaN marker instead of failing the
// whole request, so the aggregator can zero the field and report it. A required
// document box whose key is missing decodes as Absent.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = Amount(math.NaN())
		return nil
	}
	if s[0] == '"' {
		unq, err := strconv.Unquote(s)
		if err != nil {
			*a = Amount(math.NaN())
			return nil
		}
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(unq)
		if s == "" {
			*a = Amount(math.NaN())
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		*a = Amount(math.NaN())
		return nil
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Invalid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(a), 'f', -1, 64), nil
}

// absentAmount marks a required box whose key was missing from the input.
// Decoding maps infinities to NaN, so it cannot collide with a decoded value.
var absentAmount = Amount(math.Inf(1))

// Absent reports whether a required box was left out of the input.
func (a Amount) Absent() bool {
	return math.IsInf(float64(a), 1)
}

// Invalid reports whether the value is the NaN marker or infinite.
func (a Amount) Invalid() bool {
	f := float64(a)
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// Float returns the value, treating an invalid amount as zero.
func (a Amount) Float() float64 {
	if a.Invalid() {
		return 0
	}
	return float64(a)
}
