package model

// PayerAmount is one Schedule B line.
type PayerAmount struct {
	DocumentID string  `json:"document_id"`
	Payer      string  `json:"payer"`
	Amount     float64 `json:"amount"`
}

// ScheduleB lists interest and ordinary dividends by payer.
type ScheduleB struct {
	Interest       []PayerAmount `json:"interest"`
	TotalInterest  float64       `json:"line_4_total_interest"`
	Dividends      []PayerAmount `json:"dividends"`
	TotalDividends float64       `json:"line_6_total_dividends"`
	Required       bool          `json:"required"`
}

// ScheduleC is one sole proprietorship.
type ScheduleC struct {
	BusinessID    string   `json:"business_id"`
	Owner         Owner    `json:"owner"`
	Name          string   `json:"name"`
	GrossReceipts float64  `json:"line_1_gross_receipts"`
	Expenses      float64  `json:"line_28_total_expenses"`
	NetProfit     float64  `json:"line_31_net_profit"`
	NECDocuments  []string `json:"nec_documents,omitempty"`
}

type ScheduleD struct {
	ShortTermGain            float64 `json:"line_7_net_short_term"`
	CapitalGainDistributions float64 `json:"line_13_capital_gain_distributions"`
	LongTermGain             float64 `json:"line_15_net_long_term"`
	NetGain                  float64 `json:"line_16_net_gain"`
	// AllowedGain is the amount carried to Form 1040 line 7 after the loss limit.
	AllowedGain  float64 `json:"line_21_allowed"`
	Transactions int     `json:"transactions"`
}

type ScheduleEProperty struct {
	PropertyID   string  `json:"property_id"`
	Owner        Owner   `json:"owner"`
	Address      string  `json:"address"`
	Rents        float64 `json:"line_3_rents"`
	Expenses     float64 `json:"expenses"`
	Depreciation float64 `json:"line_18_depreciation"`
	Net          float64 `json:"line_21_net"`
}

type ScheduleE struct {
	Properties []ScheduleEProperty `json:"properties"`
	Total      float64             `json:"line_26_total"`
}

// ScheduleSE is computed separately for each filer with self-employment income.
type ScheduleSE struct {
	Owner             Owner   `json:"owner"`
	NetProfit         float64 `json:"line_3_net_profit"`
	TaxableBase       float64 `json:"line_4a_net_earnings"`
	SocialSecurityTax float64 `json:"line_10_social_security"`
	MedicareTax       float64 `json:"line_11_medicare"`
	Tax               float64 `json:"line_12_se_tax"`
	DeductibleHalf    float64 `json:"line_13_deductible_half"`
}

type Schedule1 struct {
	BusinessIncome      float64 `json:"line_3_business_income"`
	RentalIncome        float64 `json:"line_5_rental_income"`
	Unemployment        float64 `json:"line_7_unemployment"`
	AdditionalIncome    float64 `json:"line_10_additional_income"`
	HSADeduction        float64 `json:"line_13_hsa_deduction"`
	SEDeduction         float64 `json:"line_15_se_deduction"`
	IRADeduction        float64 `json:"line_20_ira_deduction"`
	StudentLoanInterest float64 `json:"line_21_student_loan_interest"`
	TotalAdjustments    float64 `json:"line_26_total_adjustments"`
}

// Schedule1A carries the tips, overtime, car-loan interest and senior deductions.
type Schedule1A struct {
	Tips     float64 `json:"tips"`
	Overtime float64 `json:"overtime"`
	CarLoan  float64 `json:"car_loan_interest"`
	Senior   float64 `json:"senior"`
	Total    float64 `json:"total"`
}

type Schedule2 struct {
	SETax           float64 `json:"line_4_se_tax"`
	TotalOtherTaxes float64 `json:"line_21_total_other_taxes"`
}

type Schedule3 struct {
	EducationCredit    float64 `json:"line_3_education_credit"`
	TotalNonrefundable float64 `json:"line_8_total_nonrefundable"`
	TotalOtherPayments float64 `json:"line_15_total_other_payments"`
}

type Schedules struct {
	B     ScheduleB    `json:"schedule_b"`
	C     []ScheduleC  `json:"schedule_c"`
	D     ScheduleD    `json:"schedule_d"`
	E     ScheduleE    `json:"schedule_e"`
	SE    []ScheduleSE `json:"schedule_se"`
	One   Schedule1    `json:"schedule_1"`
	OneA  Schedule1A   `json:"schedule_1a"`
	Two   Schedule2    `json:"schedule_2"`
	Three Schedule3    `json:"schedule_3"`
}
