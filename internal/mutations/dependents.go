package mutations

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"tax-engine/internal/model"
)

type AddDependentHandler struct{}

func (h *AddDependentHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var d model.Dependent
	if msgs := decodeProps(mutation, &d); msgs != nil {
		return msgs
	}
	if strings.TrimSpace(d.FirstName) == "" {
		return critical(model.CodeInvalidName, "Dependent first name is empty or blank")
	}
	if d.DateOfBirth == "" || !validBirthDate(d.DateOfBirth, state.TaxYear) {
		return critical(model.CodeInvalidBirthDate, "Birth date %q is invalid or after the tax year", d.DateOfBirth)
	}
	if d.MonthsInHome < 0 || d.MonthsInHome > 12 {
		return critical(model.CodeInvalidProperties, "months_in_home must be between 0 and 12")
	}
	if d.ID != "" {
		for _, existing := range state.Profile.Dependents {
			if existing.ID == d.ID {
				return critical(model.CodeDuplicateID, "A dependent with id %s already exists", d.ID)
			}
		}
	}

	var msgs []model.CalculationMessage
	if d.Relationship == "" {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeDependentIneligible,
			Message: "No relationship given; the dependent is treated as a qualifying relative",
		})
	}
	return msgs
}

func (h *AddDependentHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var d model.Dependent
	json.Unmarshal(mutation.MutationProperties, &d)
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Relationship == "" {
		d.Relationship = model.RelationshipOther
	}
	state.Profile.Dependents = append(state.Profile.Dependents, d)
	return nil
}

type removeDependentProps struct {
	ID string `json:"id"`
}

type RemoveDependentHandler struct{}

func (h *RemoveDependentHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props removeDependentProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	if dependentIndex(state, props.ID) < 0 {
		return critical(model.CodeDependentNotFound, "No dependent with id %q", props.ID)
	}
	return nil
}

func (h *RemoveDependentHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props removeDependentProps
	json.Unmarshal(mutation.MutationProperties, &props)
	i := dependentIndex(state, props.ID)
	deps := state.Profile.Dependents
	state.Profile.Dependents = append(deps[:i:i], deps[i+1:]...)
	return nil
}

func dependentIndex(state *model.Situation, id string) int {
	for i, d := range state.Profile.Dependents {
		if id != "" && d.ID == id {
			return i
		}
	}
	return -1
}
