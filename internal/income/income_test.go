package income

import (
	"fmt"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"tax-engine/internal/model"
)

func decode(t *testing.T, raw string) *model.Situation {
	t.Helper()
	var sit model.Situation
	require.NoError(t, json.Unmarshal([]byte(raw), &sit))
	return &sit
}

func codes(msgs []model.CalculationMessage) map[string][]string {
	out := map[string][]string{}
	for _, m := range msgs {
		out[m.Code] = append(out[m.Code], m.Field)
	}
	return out
}

func TestSanitizeDefaultsMissingAndClampsNegative(t *testing.T) {
	sit := decode(t, `{
		"profile": {"filing_status": "single"},
		"documents": {
			"w2": [{"id": "w2-1", "box1_wages": "52,000.50", "box2_federal_withheld": null}],
			"1099_int": [{"id": "int-1", "box1_interest": -40, "box8_tax_exempt_interest": "n/a"}]
		},
		"answers": {"hsa_contribution": null}
	}`)

	out := Sanitize(sit)

	w2 := out.Situation.Documents.W2[0]
	require.Equal(t, model.Amount(52000.50), w2.Wages)
	require.Equal(t, model.Amount(0), w2.FederalWithheld)
	require.Equal(t, model.OwnerTaxpayer, w2.Owner)
	require.Equal(t, model.Amount(0), out.Situation.Documents.INT[0].Interest)

	got := codes(out.Messages)
	require.ElementsMatch(t, []string{
		"documents.w2[0].box2_federal_withheld",
		"documents.1099_int[0].box8_tax_exempt_interest",
		"answers.hsa_contribution",
	}, got[model.CodeFieldDefaulted])
	require.Equal(t, []string{"documents.1099_int[0].box1_interest"}, got[model.CodeNegativeFieldClamped])
	require.Len(t, out.Defaulted, 4)

	// absent optional boxes are silently zero
	require.Equal(t, model.Amount(0), w2.SocialSecurityWages)
	require.NotContains(t, got[model.CodeFieldDefaulted], "documents.w2[0].box3_social_security_wages")
}

func TestSanitizeFlagsAbsentRequiredBoxes(t *testing.T) {
	sit := decode(t, `{
		"profile": {"filing_status": "single"},
		"documents": {
			"w2": [{"employer": "Acme", "box2_federal_withheld": 5000}],
			"1099_b": [{"box1d_proceeds": 800}],
			"1099_r": [{"box1_gross_distribution": 3000}],
			"ssa_1099": [{}]
		}
	}`)
	require.True(t, sit.Documents.W2[0].Wages.Absent())

	out := Sanitize(sit)
	require.Equal(t, model.Amount(0), out.Situation.Documents.W2[0].Wages)
	require.Equal(t, model.Amount(5000), out.Situation.Documents.W2[0].FederalWithheld)
	require.Equal(t, model.Amount(0), out.Situation.Documents.B[0].CostBasis)

	require.ElementsMatch(t, []string{
		"documents.w2[0].box1_wages",
		"documents.1099_b[0].box1e_cost_basis",
		"documents.1099_r[0].box2a_taxable_amount",
		"documents.ssa_1099[0].box5_net_benefits",
	}, codes(out.Messages)[model.CodeFieldDefaulted])
	for _, d := range out.Defaulted {
		require.Equal(t, "absent", d.Raw)
	}

	// an explicit zero is a real value
	explicit := Sanitize(decode(t, `{"profile": {"filing_status": "single"}, "documents": {"w2": [{"box1_wages": 0}]}}`))
	require.Empty(t, explicit.Defaulted)
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	sit := decode(t, `{"documents": {"w2": [{"box1_wages": -5}]}}`)
	_ = Sanitize(sit)
	if sit.Documents.W2[0].Wages != -5 {
		t.Fatalf("expected input untouched, got %v", sit.Documents.W2[0].Wages)
	}
	if sit.Documents.W2[0].Owner != "" {
		t.Fatalf("expected owner untouched, got %q", sit.Documents.W2[0].Owner)
	}
}

func TestSanitizeSpouseEntriesOnSeparateReturn(t *testing.T) {
	raw := `{
		"profile": {"filing_status": "%s"},
		"documents": {"w2": [
			{"id": "a", "owner": "taxpayer", "box1_wages": 1000},
			{"id": "b", "owner": "spouse", "box1_wages": 2000},
			{"id": "c", "owner": "joint", "box1_wages": 3000},
			{"id": "d", "owner": "roommate", "box1_wages": 4000}
		]},
		"businesses": [{"id": "biz", "owner": "spouse", "gross_receipts": 10}]
	}`

	single := Sanitize(decode(t, fmt.Sprintf(raw, "married_filing_separately")))
	ids := []string{}
	for _, w := range single.Situation.Documents.W2 {
		ids = append(ids, w.ID)
	}
	require.Equal(t, []string{"a", "c", "d"}, ids)
	require.Empty(t, single.Situation.Businesses)
	got := codes(single.Messages)
	require.Equal(t, []string{"documents.w2[1].owner", "businesses[0].owner"}, got[model.CodeSpouseDocumentIgnored])
	require.Equal(t, []string{"documents.w2[3].owner"}, got[model.CodeOwnerDefaulted])

	joint := Sanitize(decode(t, fmt.Sprintf(raw, "married_filing_jointly")))
	require.Len(t, joint.Situation.Documents.W2, 4)
	require.Len(t, joint.Situation.Businesses, 1)
}

func TestAggregate(t *testing.T) {
	sit := decode(t, `{
		"profile": {"filing_status": "married_filing_jointly"},
		"documents": {
			"w2": [
				{"owner": "taxpayer", "box1_wages": 60000, "box2_federal_withheld": 6000, "box3_social_security_wages": 62000, "box13_retirement_plan": true},
				{"owner": "spouse", "box1_wages": 40000, "box2_federal_withheld": 3000, "box3_social_security_wages": 40000}
			],
			"1099_int": [{"box1_interest": 120.10, "box3_treasury_interest": 30, "box4_federal_withheld": 10, "box8_tax_exempt_interest": 55}],
			"1099_div": [{"box1a_ordinary_dividends": 900, "box1b_qualified_dividends": 600, "box2a_capital_gain_distributions": 75}],
			"1099_b": [
				{"box1d_proceeds": 5000, "box1e_cost_basis": 3000, "long_term": true},
				{"box1d_proceeds": 1000, "box1e_cost_basis": 1800, "box1g_wash_sale_disallowed": 300}
			],
			"1099_r": [
				{"box1_gross_distribution": 10000, "box2a_taxable_amount": 10000, "ira_sep_simple": true},
				{"box1_gross_distribution": 8000, "box2a_taxable_amount": 6000, "box4_federal_withheld": 800}
			],
			"1099_g": [{"box1_unemployment_compensation": 2500}],
			"ssa_1099": [{"box5_net_benefits": 18000}],
			"1099_nec": [{"box1_nonemployee_compensation": 7000}],
			"1098": [{"box1_mortgage_interest": 9000, "box6_points": 500}],
			"1098_t": [{"box1_qualified_tuition": 4000, "box5_scholarships": 1000}],
			"1098_e": [{"box1_student_loan_interest": 1200}]
		}
	}`)
	clean := Sanitize(sit)
	s := Aggregate(&clean.Situation.Documents)

	require.Equal(t, 100000.0, s.Wages)
	require.Equal(t, 150.10, s.TaxableInterest)
	require.Equal(t, 55.0, s.TaxExemptInterest)
	require.Equal(t, 900.0, s.OrdinaryDividends)
	require.Equal(t, 600.0, s.QualifiedDividends)
	require.Equal(t, 75.0, s.CapitalGainDistributions)
	require.Equal(t, 2000.0, s.LongTermGain)
	require.Equal(t, -500.0, s.ShortTermGain)
	require.Equal(t, 2, s.Sales)
	require.Equal(t, 10000.0, s.IRATaxable)
	require.Equal(t, 8000.0, s.Pensions)
	require.Equal(t, 6000.0, s.PensionsTaxable)
	require.Equal(t, 2500.0, s.Unemployment)
	require.Equal(t, 18000.0, s.SocialSecurityBenefits)
	require.Equal(t, 7000.0, s.NonemployeeComp)
	require.Equal(t, 9500.0, s.MortgageInterest)
	require.Equal(t, 4000.0, s.QualifiedTuition)
	require.Equal(t, 1000.0, s.Scholarships)
	require.Equal(t, 1200.0, s.StudentLoanInterest)

	require.Equal(t, 9000.0, s.W2Withheld)
	require.Equal(t, 810.0, s.Form1099Withheld)
	require.Equal(t, 9810.0, s.FederalWithheld())

	require.Equal(t, PersonIncome{Wages: 60000, SocialSecurityWages: 62000, RetirementPlan: true}, s.Taxpayer)
	require.Equal(t, PersonIncome{Wages: 40000, SocialSecurityWages: 40000}, s.Spouse)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(&model.Documents{})
	if s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}
