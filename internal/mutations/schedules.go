package mutations

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"tax-engine/internal/model"
)

type AddBusinessHandler struct{}

func (h *AddBusinessHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var b model.Business
	if msgs := decodeProps(mutation, &b); msgs != nil {
		return msgs
	}
	if strings.TrimSpace(b.Name) == "" {
		return critical(model.CodeInvalidName, "Business name is empty or blank")
	}
	if !validOwner(b.Owner) {
		return critical(model.CodeInvalidOwner, "Owner must be taxpayer, spouse or joint, got %q", b.Owner)
	}
	for _, existing := range state.Businesses {
		if b.ID != "" && existing.ID == b.ID {
			return critical(model.CodeDuplicateID, "A business with id %s already exists", b.ID)
		}
	}
	return nil
}

func (h *AddBusinessHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var b model.Business
	json.Unmarshal(mutation.MutationProperties, &b)
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	state.Businesses = append(state.Businesses, b)
	return nil
}

type AddRentalPropertyHandler struct{}

func (h *AddRentalPropertyHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var p model.RentalProperty
	if msgs := decodeProps(mutation, &p); msgs != nil {
		return msgs
	}
	if strings.TrimSpace(p.Address) == "" {
		return critical(model.CodeInvalidName, "Property address is empty or blank")
	}
	if !validOwner(p.Owner) {
		return critical(model.CodeInvalidOwner, "Owner must be taxpayer, spouse or joint, got %q", p.Owner)
	}
	for _, existing := range state.Properties {
		if p.ID != "" && existing.ID == p.ID {
			return critical(model.CodeDuplicateID, "A rental property with id %s already exists", p.ID)
		}
	}
	return nil
}

func (h *AddRentalPropertyHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var p model.RentalProperty
	json.Unmarshal(mutation.MutationProperties, &p)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	state.Properties = append(state.Properties, p)
	return nil
}
