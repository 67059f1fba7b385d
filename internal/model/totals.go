package model

// TaxTotals holds every computed subtotal of a return. It is rebuilt in full on
// each calculation. At most one of Refund and AmountOwed is nonzero.
type TaxTotals struct {
	// Income
	Wages                   float64 `json:"wages"`
	TaxableInterest         float64 `json:"taxable_interest"`
	TaxExemptInterest       float64 `json:"tax_exempt_interest"`
	OrdinaryDividends       float64 `json:"ordinary_dividends"`
	QualifiedDividends      float64 `json:"qualified_dividends"`
	CapitalGains            float64 `json:"capital_gains"`
	IRADistributions        float64 `json:"ira_distributions"`
	IRADistributionsTaxable float64 `json:"ira_distributions_taxable"`
	Pensions                float64 `json:"pensions"`
	PensionsTaxable         float64 `json:"pensions_taxable"`
	BusinessIncome          float64 `json:"business_income"`
	RentalIncome            float64 `json:"rental_income"`
	Unemployment            float64 `json:"unemployment"`
	SocialSecurityBenefits  float64 `json:"social_security_benefits"`
	SocialSecurityTaxable   float64 `json:"social_security_taxable"`
	AdditionalIncome        float64 `json:"additional_income"`
	TotalIncome             float64 `json:"total_income"`

	// Adjustments
	HSADeduction        float64 `json:"hsa_deduction"`
	SEDeduction         float64 `json:"se_deduction"`
	IRADeduction        float64 `json:"ira_deduction"`
	StudentLoanInterest float64 `json:"student_loan_interest_deduction"`
	TotalAdjustments    float64 `json:"total_adjustments"`
	AdjustedGrossIncome float64 `json:"adjusted_gross_income"`
	PreliminaryAGI      float64 `json:"preliminary_agi"`

	// Deductions
	StandardDeduction float64 `json:"standard_deduction"`
	ItemizedDeduction float64 `json:"itemized_deduction"`
	DeductionUsed     float64 `json:"deduction_used"`
	DeductionMethod   string  `json:"deduction_method"`

	TipsDeduction     float64 `json:"tips_deduction"`
	OvertimeDeduction float64 `json:"overtime_deduction"`
	CarLoanDeduction  float64 `json:"car_loan_interest_deduction"`
	SeniorDeduction   float64 `json:"senior_deduction"`
	OBBBDeduction     float64 `json:"obbb_deduction"`

	TaxableIncome float64 `json:"taxable_income"`

	// Tax
	IncomeTax        float64 `json:"income_tax"`
	TaxBeforeCredits float64 `json:"tax_before_credits"`
	SETax            float64 `json:"se_tax"`

	// Credits
	ChildCreditBeforePhaseOut float64 `json:"child_credit_before_phase_out"`
	ChildCreditPhaseOut       float64 `json:"child_credit_phase_out"`
	ChildTaxCredit            float64 `json:"child_tax_credit"`
	AdditionalChildTaxCredit  float64 `json:"additional_child_tax_credit"`
	EducationCredit           float64 `json:"education_credit"`
	NonrefundableCredits      float64 `json:"nonrefundable_credits"`
	RefundableCredits         float64 `json:"refundable_credits"`

	OtherTaxes float64 `json:"other_taxes"`
	TotalTax   float64 `json:"total_tax"`

	// Payments
	W2Withholding     float64 `json:"w2_withholding"`
	Form1099Withheld  float64 `json:"form_1099_withholding"`
	FederalWithheld   float64 `json:"federal_withheld"`
	EstimatedPayments float64 `json:"estimated_payments"`
	TotalPayments     float64 `json:"total_payments"`

	Refund     float64 `json:"refund"`
	AmountOwed float64 `json:"amount_owed"`
}
