package model

import json "github.com/goccy/go-json"

// CalculationRequest computes one return. Situation is the starting input
// (empty when nil); mutations are applied to it in order before the engine runs.
type CalculationRequest struct {
	ReturnID                string                  `json:"return_id"`
	TaxYear                 int                     `json:"tax_year"`
	Situation               *Situation              `json:"situation,omitempty"`
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Mutations []Mutation `json:"mutations"`
}

type Mutation struct {
	MutationID             string          `json:"mutation_id"`
	MutationDefinitionName string          `json:"mutation_definition_name"`
	MutationProperties     json.RawMessage `json:"mutation_properties"`
}
