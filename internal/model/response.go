package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	ReturnID               string `json:"return_id"`
	TaxYear                int    `json:"tax_year"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages  []CalculationMessage `json:"messages"`
	Mutations []ProcessedMutation  `json:"mutations"`
	Situation Situation            `json:"situation"`
	// Return is nil when the calculation failed.
	Return *TaxReturn `json:"return"`
}

type ProcessedMutation struct {
	Mutation                  Mutation `json:"mutation"`
	CalculationMessageIndexes []int    `json:"calculation_message_indexes,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
