package schedules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tax-engine/internal/calc"
	"tax-engine/internal/income"
	"tax-engine/internal/model"
)

var se2025 = calc.SEParams{
	WageBase:           176100,
	NetEarningsFactor:  0.9235,
	SocialSecurityRate: 0.124,
	MedicareRate:       0.029,
	Minimum:            400,
}

func TestBuildB(t *testing.T) {
	docs := &model.Documents{
		INT: []model.Form1099INT{
			{DocumentMeta: model.DocumentMeta{ID: "i1"}, Payer: "Bank", Interest: 1000, TreasuryInterest: 200},
			{DocumentMeta: model.DocumentMeta{ID: "i2"}, Payer: "Credit Union", Interest: 400.5},
		},
		DIV: []model.Form1099DIV{
			{DocumentMeta: model.DocumentMeta{ID: "d1"}, Payer: "Fund", OrdinaryDividends: 300},
		},
	}
	b := BuildB(docs)
	require.Len(t, b.Interest, 2)
	require.Equal(t, 1200.0, b.Interest[0].Amount)
	require.Equal(t, 1600.5, b.TotalInterest)
	require.Equal(t, 300.0, b.TotalDividends)
	require.True(t, b.Required)

	empty := BuildB(&model.Documents{})
	require.False(t, empty.Required)
	require.NotNil(t, empty.Interest)
}

func TestBuildCLinksNECToBusiness(t *testing.T) {
	businesses := []model.Business{
		{ID: "consulting", Owner: model.OwnerTaxpayer, Name: "Consulting", GrossReceipts: 5000, Expenses: 2000},
		{ID: "bakery", Owner: model.OwnerTaxpayer, Name: "Bakery", GrossReceipts: 1000, Expenses: 1500},
	}
	nec := []model.Form1099NEC{
		{DocumentMeta: model.DocumentMeta{ID: "n1", Owner: model.OwnerTaxpayer}, BusinessID: "bakery", Compensation: 700},
		{DocumentMeta: model.DocumentMeta{ID: "n2", Owner: model.OwnerTaxpayer}, Compensation: 3000},
		{DocumentMeta: model.DocumentMeta{ID: "n3", Owner: model.OwnerSpouse}, Payer: "Acme", Compensation: 9000},
	}

	cs := BuildC(businesses, nec)
	require.Len(t, cs, 3)

	require.Equal(t, 8000.0, cs[0].GrossReceipts)
	require.Equal(t, 6000.0, cs[0].NetProfit)
	require.Equal(t, []string{"n2"}, cs[0].NECDocuments)

	require.Equal(t, 1700.0, cs[1].GrossReceipts)
	require.Equal(t, 200.0, cs[1].NetProfit)

	require.Equal(t, "nec-spouse", cs[2].BusinessID)
	require.Equal(t, model.OwnerSpouse, cs[2].Owner)
	require.Equal(t, "Acme", cs[2].Name)
	require.Equal(t, 9000.0, cs[2].NetProfit)

	require.Equal(t, 15200.0, BusinessIncome(cs))
}

func TestBuildDAppliesLossLimit(t *testing.T) {
	d, limited := BuildD(income.Summary{ShortTermGain: -8000, LongTermGain: 1000, CapitalGainDistributions: 500, Sales: 3}, 3000)
	require.True(t, limited)
	require.Equal(t, 1500.0, d.LongTermGain)
	require.Equal(t, -6500.0, d.NetGain)
	require.Equal(t, -3000.0, d.AllowedGain)
	require.Equal(t, 3, d.Transactions)

	d, limited = BuildD(income.Summary{ShortTermGain: 200, LongTermGain: 800}, 3000)
	require.False(t, limited)
	require.Equal(t, 1000.0, d.AllowedGain)
}

func TestBuildE(t *testing.T) {
	e := BuildE([]model.RentalProperty{
		{ID: "p1", Address: "1 Main St", Rents: 24000, Expenses: 9000, Depreciation: 5000},
		{ID: "p2", Owner: model.OwnerSpouse, Rents: 6000, Expenses: 8000},
	})
	require.Equal(t, 10000.0, e.Properties[0].Net)
	require.Equal(t, model.OwnerTaxpayer, e.Properties[0].Owner)
	require.Equal(t, -2000.0, e.Properties[1].Net)
	require.Equal(t, 8000.0, e.Total)
}

func TestBuildSEPerPerson(t *testing.T) {
	cs := []model.ScheduleC{
		{Owner: model.OwnerTaxpayer, NetProfit: 100000},
		{Owner: model.OwnerSpouse, NetProfit: 100000},
		{Owner: model.OwnerSpouse, NetProfit: -99700},
	}
	s := income.Summary{Taxpayer: income.PersonIncome{SocialSecurityWages: 170000}}

	se := BuildSE(cs, s, se2025)
	require.Len(t, se, 1, "spouse net profit of 300 is under the floor")
	require.Equal(t, model.OwnerTaxpayer, se[0].Owner)
	require.Equal(t, 756.40, se[0].SocialSecurityTax)
	require.Equal(t, 2678.15, se[0].MedicareTax)
	require.Equal(t, 3434.55, se[0].Tax)
	require.Equal(t, 1717.28, se[0].DeductibleHalf)

	tax, half := SETotals(se)
	require.Equal(t, 3434.55, tax)
	require.Equal(t, 1717.28, half)
}

func TestBuildSENoWages(t *testing.T) {
	se := BuildSE([]model.ScheduleC{{Owner: model.OwnerTaxpayer, NetProfit: 100000}}, income.Summary{}, se2025)
	require.Len(t, se, 1)
	require.Equal(t, 14129.55, se[0].Tax)
	require.Equal(t, 7064.78, se[0].DeductibleHalf)
}

func TestSummarySchedules(t *testing.T) {
	totals := &model.TaxTotals{
		BusinessIncome:   1000,
		SEDeduction:      70.65,
		TotalAdjustments: 70.65,
		TipsDeduction:    500,
		OBBBDeduction:    500,
		SETax:            141.30,
		OtherTaxes:       141.30,
		EducationCredit:  300,
	}
	require.Equal(t, 70.65, Build1(totals).SEDeduction)
	require.Equal(t, 500.0, Build1A(totals).Total)
	require.Equal(t, 141.30, Build2(totals).TotalOtherTaxes)
	require.Equal(t, 300.0, Build3(totals).TotalNonrefundable)
	require.Equal(t, 3500.0, AdditionalIncome(1000, 500, 2000))
}
