package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

var brackets = []calc.Bracket{
	{UpperBound: 11925, Rate: 0.10},
	{UpperBound: 48475, Rate: 0.12},
	{UpperBound: math.Inf(1), Rate: 0.22},
}

func sample() *model.TaxReturn {
	return &model.TaxReturn{
		TaxYear:      2025,
		FilingStatus: model.Single,
		Totals: model.TaxTotals{
			Wages:               60000,
			TotalIncome:         60000,
			AdjustedGrossIncome: 60000,
			DeductionMethod:     "standard",
			DeductionUsed:       15750,
			TaxableIncome:       44250,
			IncomeTax:           5071.50,
			TotalTax:            5071.50,
			FederalWithheld:     7000,
			TotalPayments:       7000,
			Refund:              1928.50,
		},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sample(), brackets)
	require.Equal(t, 0.12, s.MarginalRate)
	require.InDelta(t, 0.0845, s.EffectiveRate, 0.0001)
	require.Len(t, s.Sections, 5)
	require.Equal(t, "Income", s.Sections[0].Title)
	require.Equal(t, "Standard deduction", s.Sections[2].Lines[0].Label)
}

func TestWriteGroupsCurrency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(sample(), brackets).Write(&buf, language.English))
	out := buf.String()

	require.Contains(t, out, "Federal return 2025 (single)")
	require.Contains(t, out, "$60,000.00")
	require.Contains(t, out, "$15,750.00")
	require.Contains(t, out, "$1,928.50")
	require.Contains(t, out, "12.0%")
	require.Contains(t, out, "Refund")
	require.NotContains(t, out, "Amount owed")
	// zero detail lines are skipped
	require.NotContains(t, out, "Rental income")
}

func TestWriteAmountOwed(t *testing.T) {
	ret := sample()
	ret.Totals.Refund = 0
	ret.Totals.AmountOwed = 1887.54
	ret.Totals.DeductionMethod = "itemized"

	var buf bytes.Buffer
	require.NoError(t, Build(ret, brackets).Write(&buf, language.English))
	out := buf.String()
	require.True(t, strings.Contains(out, "Amount owed"))
	require.Contains(t, out, "$1,887.54")
	require.Contains(t, out, "Itemized deductions")
}
