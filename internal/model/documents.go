package model

import (
	"reflect"

	json "github.com/goccy/go-json"
)

// Owner tags which filer a document or entry belongs to.
type Owner string

const (
	OwnerTaxpayer Owner = "taxpayer"
	OwnerSpouse   Owner = "spouse"
	OwnerJoint    Owner = "joint"
)

// Document kinds, also the JSON keys of Documents.
const (
	KindW2      = "w2"
	Kind1099INT = "1099_int"
	Kind1099DIV = "1099_div"
	Kind1099NEC = "1099_nec"
	Kind1099B   = "1099_b"
	Kind1099R   = "1099_r"
	Kind1099G   = "1099_g"
	KindSSA1099 = "ssa_1099"
	Kind1098    = "1098"
	Kind1098T   = "1098_t"
	Kind1098E   = "1098_e"
)

// DocumentMeta is embedded in every income document.
type DocumentMeta struct {
	ID    string `json:"id"`
	Owner Owner  `json:"owner"`
}

func (m *DocumentMeta) Meta() *DocumentMeta { return m }

// W2 is a wage and tax statement.
type W2 struct {
	DocumentMeta
	Employer            string `json:"employer"`
	Wages               Amount `json:"box1_wages" box:"required"`
	FederalWithheld     Amount `json:"box2_federal_withheld"`
	SocialSecurityWages Amount `json:"box3_social_security_wages"`
	MedicareWages       Amount `json:"box5_medicare_wages"`
	RetirementPlan      bool   `json:"box13_retirement_plan"`
}

type Form1099INT struct {
	DocumentMeta
	Payer             string `json:"payer"`
	Interest          Amount `json:"box1_interest" box:"required"`
	TreasuryInterest  Amount `json:"box3_treasury_interest"`
	FederalWithheld   Amount `json:"box4_federal_withheld"`
	TaxExemptInterest Amount `json:"box8_tax_exempt_interest"`
}

type Form1099DIV struct {
	DocumentMeta
	Payer                    string `json:"payer"`
	OrdinaryDividends        Amount `json:"box1a_ordinary_dividends" box:"required"`
	QualifiedDividends       Amount `json:"box1b_qualified_dividends"`
	CapitalGainDistributions Amount `json:"box2a_capital_gain_distributions"`
	FederalWithheld          Amount `json:"box4_federal_withheld"`
}

// Form1099NEC reports nonemployee compensation. BusinessID links it to a
// Schedule C business; when empty the filer's first business is used.
type Form1099NEC struct {
	DocumentMeta
	Payer           string `json:"payer"`
	BusinessID      string `json:"business_id,omitempty"`
	Compensation    Amount `json:"box1_nonemployee_compensation" box:"required"`
	FederalWithheld Amount `json:"box4_federal_withheld"`
}

// Form1099B is one brokerage sale.
type Form1099B struct {
	DocumentMeta
	Broker             string `json:"broker"`
	Description        string `json:"description"`
	Proceeds           Amount `json:"box1d_proceeds" box:"required"`
	CostBasis          Amount `json:"box1e_cost_basis" box:"required"`
	WashSaleDisallowed Amount `json:"box1g_wash_sale_disallowed"`
	LongTerm           bool   `json:"long_term"`
	FederalWithheld    Amount `json:"box4_federal_withheld"`
}

type Form1099R struct {
	DocumentMeta
	Payer             string `json:"payer"`
	GrossDistribution Amount `json:"box1_gross_distribution"`
	TaxableAmount     Amount `json:"box2a_taxable_amount" box:"required"`
	FederalWithheld   Amount `json:"box4_federal_withheld"`
	IRA               bool   `json:"ira_sep_simple"`
}

type Form1099G struct {
	DocumentMeta
	Payer           string `json:"payer"`
	Unemployment    Amount `json:"box1_unemployment_compensation" box:"required"`
	FederalWithheld Amount `json:"box4_federal_withheld"`
}

type SSA1099 struct {
	DocumentMeta
	NetBenefits     Amount `json:"box5_net_benefits" box:"required"`
	FederalWithheld Amount `json:"box6_federal_withheld"`
}

type Form1098 struct {
	DocumentMeta
	Lender           string `json:"lender"`
	MortgageInterest Amount `json:"box1_mortgage_interest" box:"required"`
	Points           Amount `json:"box6_points"`
}

type Form1098T struct {
	DocumentMeta
	Institution      string `json:"institution"`
	QualifiedTuition Amount `json:"box1_qualified_tuition" box:"required"`
	Scholarships     Amount `json:"box5_scholarships"`
}

type Form1098E struct {
	DocumentMeta
	Lender              string `json:"lender"`
	StudentLoanInterest Amount `json:"box1_student_loan_interest" box:"required"`
}

func (d *W2) UnmarshalJSON(b []byte) error {
	type plain W2
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099INT) UnmarshalJSON(b []byte) error {
	type plain Form1099INT
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099DIV) UnmarshalJSON(b []byte) error {
	type plain Form1099DIV
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099NEC) UnmarshalJSON(b []byte) error {
	type plain Form1099NEC
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099B) UnmarshalJSON(b []byte) error {
	type plain Form1099B
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099R) UnmarshalJSON(b []byte) error {
	type plain Form1099R
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1099G) UnmarshalJSON(b []byte) error {
	type plain Form1099G
	return decodeDocument(b, (*plain)(d))
}

func (d *SSA1099) UnmarshalJSON(b []byte) error {
	type plain SSA1099
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1098) UnmarshalJSON(b []byte) error {
	type plain Form1098
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1098T) UnmarshalJSON(b []byte) error {
	type plain Form1098T
	return decodeDocument(b, (*plain)(d))
}

func (d *Form1098E) UnmarshalJSON(b []byte) error {
	type plain Form1098E
	return decodeDocument(b, (*plain)(d))
}

// Documents holds every uploaded income document, grouped by kind.
type Documents struct {
	W2     []W2          `json:"w2"`
	INT    []Form1099INT `json:"1099_int"`
	DIV    []Form1099DIV `json:"1099_div"`
	NEC    []Form1099NEC `json:"1099_nec"`
	B      []Form1099B   `json:"1099_b"`
	R      []Form1099R   `json:"1099_r"`
	G      []Form1099G   `json:"1099_g"`
	SSA    []SSA1099     `json:"ssa_1099"`
	F1098  []Form1098    `json:"1098"`
	F1098T []Form1098T   `json:"1098_t"`
	F1098E []Form1098E   `json:"1098_e"`
}

// Count returns the number of documents across all kinds.
func (d *Documents) Count() int {
	return len(d.W2) + len(d.INT) + len(d.DIV) + len(d.NEC) + len(d.B) + len(d.R) +
		len(d.G) + len(d.SSA) + len(d.F1098) + len(d.F1098T) + len(d.F1098E)
}

func (d Documents) Clone() Documents {
	return Documents{
		W2:     cloneSlice(d.W2),
		INT:    cloneSlice(d.INT),
		DIV:    cloneSlice(d.DIV),
		NEC:    cloneSlice(d.NEC),
		B:      cloneSlice(d.B),
		R:      cloneSlice(d.R),
		G:      cloneSlice(d.G),
		SSA:    cloneSlice(d.SSA),
		F1098:  cloneSlice(d.F1098),
		F1098T: cloneSlice(d.F1098T),
		F1098E: cloneSlice(d.F1098E),
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// decodeDocument decodes b into dst, a pointer to a document struct without
// its own UnmarshalJSON. Boxes tagged box:"required" that b leaves out come
// back Absent.
func decodeDocument(b []byte, dst any) error {
	v := reflect.ValueOf(dst).Elem()
	v.SetZero()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("box") == "required" {
			v.Field(i).SetFloat(float64(absentAmount))
		}
	}
	return json.Unmarshal(b, dst)
}
