package model

// Situation is the raw input of one return: everything the filer has entered or
// uploaded. All derived data is recomputed from it.
type Situation struct {
	TaxYear    int              `json:"tax_year"`
	Profile    FilingProfile    `json:"profile"`
	Documents  Documents        `json:"documents"`
	Answers    Answers          `json:"answers"`
	Businesses []Business       `json:"businesses"`
	Properties []RentalProperty `json:"rental_properties"`
}

type FilingProfile struct {
	Status     FilingStatus `json:"filing_status"`
	Taxpayer   Person       `json:"taxpayer"`
	Spouse     *Person      `json:"spouse,omitempty"`
	Dependents []Dependent  `json:"dependents"`
	// MFSLivedApart is set when a married-filing-separately filer did not live
	// with their spouse at any time during the year.
	MFSLivedApart bool `json:"mfs_lived_apart_all_year,omitempty"`
}

type Person struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

// Dependent relationships.
const (
	RelationshipSon         = "son"
	RelationshipDaughter    = "daughter"
	RelationshipStepchild   = "stepchild"
	RelationshipFosterChild = "foster_child"
	RelationshipSibling     = "sibling"
	RelationshipGrandchild  = "grandchild"
	RelationshipNieceNephew = "niece_nephew"
	RelationshipParent      = "parent"
	RelationshipOther       = "other_relative"
)

type Dependent struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
	MonthsInHome int    `json:"months_in_home"`
	Student      bool   `json:"full_time_student"`
	Disabled     bool   `json:"permanently_disabled"`
}

// Answers are the questionnaire values that do not come from a document.
type Answers struct {
	HSAContribution Amount `json:"hsa_contribution"`
	// HSACoverage is "self" or "family".
	HSACoverage string `json:"hsa_coverage"`

	IRAContributionTaxpayer Amount `json:"ira_contribution_taxpayer"`
	IRAContributionSpouse   Amount `json:"ira_contribution_spouse"`
	// Workplace plan flags override W-2 box 13 when set.
	TaxpayerWorkplacePlan *bool `json:"taxpayer_workplace_plan,omitempty"`
	SpouseWorkplacePlan   *bool `json:"spouse_workplace_plan,omitempty"`

	Tips            Amount `json:"qualified_tips"`
	Overtime        Amount `json:"qualified_overtime"`
	CarLoanInterest Amount `json:"car_loan_interest"`
	VehicleNew      bool   `json:"vehicle_new"`
	VehicleDomestic bool   `json:"vehicle_domestic"`

	EstimatedPayments Amount `json:"estimated_payments"`

	MedicalExpenses   Amount `json:"medical_expenses"`
	StateLocalTaxes   Amount `json:"state_local_taxes"`
	RealEstateTaxes   Amount `json:"real_estate_taxes"`
	CharitableCash    Amount `json:"charitable_cash"`
	CharitableNonCash Amount `json:"charitable_noncash"`
	OtherItemized     Amount `json:"other_itemized"`
	ForceItemize      bool   `json:"force_itemize"`
}

// Business is a Schedule C sole proprietorship. Receipts reported on 1099-NEC
// are added to GrossReceipts.
type Business struct {
	ID            string `json:"id"`
	Owner         Owner  `json:"owner"`
	Name          string `json:"name"`
	GrossReceipts Amount `json:"gross_receipts"`
	Expenses      Amount `json:"expenses"`
}

// RentalProperty is a Schedule E property.
type RentalProperty struct {
	ID           string `json:"id"`
	Owner        Owner  `json:"owner"`
	Address      string `json:"address"`
	Rents        Amount `json:"rents_received"`
	Expenses     Amount `json:"expenses"`
	Depreciation Amount `json:"depreciation"`
}

// Clone returns a deep copy safe to mutate independently.
func (s *Situation) Clone() Situation {
	out := *s
	out.Documents = s.Documents.Clone()
	out.Businesses = cloneSlice(s.Businesses)
	out.Properties = cloneSlice(s.Properties)
	out.Profile.Dependents = cloneSlice(s.Profile.Dependents)
	if s.Profile.Spouse != nil {
		sp := *s.Profile.Spouse
		out.Profile.Spouse = &sp
	}
	out.Answers.TaxpayerWorkplacePlan = cloneBool(s.Answers.TaxpayerWorkplacePlan)
	out.Answers.SpouseWorkplacePlan = cloneBool(s.Answers.SpouseWorkplacePlan)
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
