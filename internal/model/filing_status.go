package model

import (
	"fmt"
	"strings"
)

type FilingStatus string

const (
	Single                    FilingStatus = "single"
	MarriedFilingJointly      FilingStatus = "married_filing_jointly"
	MarriedFilingSeparately   FilingStatus = "married_filing_separately"
	HeadOfHousehold           FilingStatus = "head_of_household"
	QualifyingSurvivingSpouse FilingStatus = "qualifying_widow"
)

// FilingStatuses lists every status a tax-year table must cover.
var FilingStatuses = []FilingStatus{
	Single,
	MarriedFilingJointly,
	MarriedFilingSeparately,
	HeadOfHousehold,
	QualifyingSurvivingSpouse,
}

var filingStatusAliases = map[string]FilingStatus{
	"single":                      Single,
	"s":                           Single,
	"married_filing_jointly":      MarriedFilingJointly,
	"mfj":                         MarriedFilingJointly,
	"married_filing_separately":   MarriedFilingSeparately,
	"mfs":                         MarriedFilingSeparately,
	"head_of_household":           HeadOfHousehold,
	"hoh":                         HeadOfHousehold,
	"qualifying_widow":            QualifyingSurvivingSpouse,
	"qualifying_widower":          QualifyingSurvivingSpouse,
	"qualifying_surviving_spouse": QualifyingSurvivingSpouse,
	"qw":                          QualifyingSurvivingSpouse,
	"qss":                         QualifyingSurvivingSpouse,
}

// ParseFilingStatus normalizes a user-supplied status. Unknown values are an
// error; there is no fallback status.
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if fs, ok := filingStatusAliases[key]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

func (f FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if f == s {
			return true
		}
	}
	return false
}

// Joint reports married filing jointly, the only status with two filers on the return.
func (f FilingStatus) Joint() bool {
	return f == MarriedFilingJointly
}
