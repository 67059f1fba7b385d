package mutations

import (
	"fmt"

	json "github.com/goccy/go-json"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

// MutationHandler is one kind of change to a return's raw input. Validate must
// not modify state; Apply is only called when Validate raised nothing critical.
type MutationHandler interface {
	Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage
	Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage
}

func critical(code, format string, args ...any) []model.CalculationMessage {
	return []model.CalculationMessage{{
		Level:   model.LevelCritical,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}}
}

func decodeProps(mutation *model.Mutation, v any) []model.CalculationMessage {
	if len(mutation.MutationProperties) == 0 {
		return critical(model.CodeInvalidProperties, "mutation_properties is required")
	}
	if err := json.Unmarshal(mutation.MutationProperties, v); err != nil {
		return critical(model.CodeInvalidProperties, "mutation_properties: %v", err)
	}
	return nil
}

func validOwner(o model.Owner) bool {
	switch o {
	case "", model.OwnerTaxpayer, model.OwnerSpouse, model.OwnerJoint:
		return true
	}
	return false
}

// validBirthDate accepts an empty date; anything else must be a real
// YYYY-MM-DD date no later than the end of the tax year.
func validBirthDate(s string, taxYear int) bool {
	if s == "" {
		return true
	}
	t, ok := calc.ParseDate(s)
	if !ok {
		return false
	}
	return taxYear <= 0 || t.Year() <= taxYear
}
