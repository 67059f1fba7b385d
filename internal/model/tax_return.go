package model

// TaxReturn is the full derived record of one calculation: totals, the
// schedules they were built from, the Form 1040 view and the per-item detail
// needed to explain each number.
type TaxReturn struct {
	TaxYear      int               `json:"tax_year"`
	FilingStatus FilingStatus      `json:"filing_status"`
	Totals       TaxTotals         `json:"totals"`
	Schedules    Schedules         `json:"schedules"`
	Form1040     Form1040Record    `json:"form_1040"`
	Dependents   []DependentCredit `json:"dependents"`
	IRA          IRADetail         `json:"ira"`
	Itemized     ItemizedDetail    `json:"itemized"`
	Defaulted    []DefaultedField  `json:"defaulted_fields"`
}

// DependentCredit is the credit classification of one dependent. CTCEligible
// and ODCEligible are never both true.
type DependentCredit struct {
	DependentID  string  `json:"dependent_id"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	CTCEligible  bool    `json:"ctc_eligible"`
	ODCEligible  bool    `json:"odc_eligible"`
	CreditAmount float64 `json:"credit_amount"`
	Reason       string  `json:"reason,omitempty"`
}

type IRADetail struct {
	PreliminaryAGI float64         `json:"preliminary_agi"`
	Taxpayer       IRAPersonDetail `json:"taxpayer"`
	Spouse         IRAPersonDetail `json:"spouse"`
	Total          float64         `json:"total"`
}

type IRAPersonDetail struct {
	Contribution  float64 `json:"contribution"`
	Limit         float64 `json:"limit"`
	CoveredByPlan bool    `json:"covered_by_plan"`
	Deductible    float64 `json:"deductible"`
	Reason        string  `json:"reason,omitempty"`
}

type ItemizedDetail struct {
	MedicalExpenses  float64 `json:"medical_expenses"`
	MedicalFloor     float64 `json:"medical_floor"`
	Medical          float64 `json:"medical"`
	SALTBeforeCap    float64 `json:"salt_before_cap"`
	SALTCap          float64 `json:"salt_cap"`
	SALT             float64 `json:"salt"`
	MortgageInterest float64 `json:"mortgage_interest"`
	Charitable       float64 `json:"charitable"`
	Other            float64 `json:"other"`
	Total            float64 `json:"total"`
}

// DefaultedField records an input value that was zeroed or clamped.
type DefaultedField struct {
	Path   string `json:"path"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}
