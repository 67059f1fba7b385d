package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field is the input path the message refers to, when there is one.
	Field string `json:"field,omitempty"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
	LevelInfo     = "INFO"
)

// Message codes.
const (
	CodeFieldDefaulted        = "FIELD_DEFAULTED"
	CodeNegativeFieldClamped  = "NEGATIVE_FIELD_CLAMPED"
	CodeOwnerDefaulted        = "OWNER_DEFAULTED"
	CodeSpouseDocumentIgnored = "SPOUSE_DOCUMENT_IGNORED"
	CodeInvalidFilingStatus   = "INVALID_FILING_STATUS"
	CodeInvalidBirthDate      = "INVALID_BIRTH_DATE"
	CodeConfigurationError    = "CONFIGURATION_ERROR"
	CodeUnknownMutation       = "UNKNOWN_MUTATION"
	CodeIRAContributionCapped = "IRA_CONTRIBUTION_CAPPED"
	CodeIRADeductionReduced   = "IRA_DEDUCTION_REDUCED"
	CodeSpouseIRAIgnored      = "SPOUSE_IRA_IGNORED"
	CodeHSAContributionCapped = "HSA_CONTRIBUTION_CAPPED"
	CodeCarLoanNotQualified   = "CAR_LOAN_NOT_QUALIFIED"
	CodeNoIncomeDocuments     = "NO_INCOME_DOCUMENTS"
	CodeCapitalLossLimited    = "CAPITAL_LOSS_LIMITED"
	CodeDependentIneligible   = "DEPENDENT_INELIGIBLE"
	CodeNotAllowedSeparate    = "NOT_ALLOWED_MFS"
)

// Mutation validation codes.
const (
	CodeInvalidProperties   = "INVALID_MUTATION_PROPERTIES"
	CodeUnknownDocumentKind = "UNKNOWN_DOCUMENT_KIND"
	CodeDocumentNotFound    = "DOCUMENT_NOT_FOUND"
	CodeDuplicateID         = "DUPLICATE_ID"
	CodeInvalidOwner        = "INVALID_OWNER"
	CodeInvalidName         = "INVALID_NAME"
	CodeDependentNotFound   = "DEPENDENT_NOT_FOUND"
	CodeSpouseRequired      = "SPOUSE_REQUIRED"
)
