package mutations

import (
	json "github.com/goccy/go-json"

	"tax-engine/internal/model"
)

type setFilingProfileProps struct {
	TaxYear       int           `json:"tax_year"`
	FilingStatus  string        `json:"filing_status"`
	Taxpayer      *model.Person `json:"taxpayer"`
	Spouse        *model.Person `json:"spouse"`
	MFSLivedApart bool          `json:"mfs_lived_apart_all_year"`
}

// SetFilingProfileHandler sets the filing status and the filers. Dependents
// are managed by their own mutations and are left alone.
type SetFilingProfileHandler struct{}

func (h *SetFilingProfileHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setFilingProfileProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	status, err := model.ParseFilingStatus(props.FilingStatus)
	if err != nil {
		return critical(model.CodeInvalidFilingStatus, "%v", err)
	}
	if status.Joint() && props.Spouse == nil && state.Profile.Spouse == nil {
		return critical(model.CodeSpouseRequired, "A joint return needs spouse details")
	}
	year := state.TaxYear
	if props.TaxYear > 0 {
		year = props.TaxYear
	}
	if props.Taxpayer != nil && !validBirthDate(props.Taxpayer.DateOfBirth, year) {
		return critical(model.CodeInvalidBirthDate, "Taxpayer birth date %q is invalid or after the tax year", props.Taxpayer.DateOfBirth)
	}
	if props.Spouse != nil && !validBirthDate(props.Spouse.DateOfBirth, year) {
		return critical(model.CodeInvalidBirthDate, "Spouse birth date %q is invalid or after the tax year", props.Spouse.DateOfBirth)
	}
	return nil
}

func (h *SetFilingProfileHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props setFilingProfileProps
	json.Unmarshal(mutation.MutationProperties, &props)
	status, _ := model.ParseFilingStatus(props.FilingStatus)

	if props.TaxYear > 0 {
		state.TaxYear = props.TaxYear
	}
	state.Profile.Status = status
	state.Profile.MFSLivedApart = props.MFSLivedApart
	if props.Taxpayer != nil {
		state.Profile.Taxpayer = *props.Taxpayer
	}
	if props.Spouse != nil {
		sp := *props.Spouse
		state.Profile.Spouse = &sp
	}
	return nil
}

// SetAnswersHandler merges questionnaire answers: keys present in the
// properties overwrite, absent keys keep their current value.
type SetAnswersHandler struct{}

func (h *SetAnswersHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	if len(mutation.MutationProperties) == 0 {
		return critical(model.CodeInvalidProperties, "mutation_properties is required")
	}
	answers, err := mergeAnswers(state.Answers, mutation.MutationProperties)
	if err != nil {
		return critical(model.CodeInvalidProperties, "mutation_properties: %v", err)
	}
	if answers.HSACoverage != "" && answers.HSACoverage != "self" && answers.HSACoverage != "family" {
		return critical(model.CodeInvalidProperties, "hsa_coverage must be self or family, got %q", answers.HSACoverage)
	}
	return nil
}

func (h *SetAnswersHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	answers, _ := mergeAnswers(state.Answers, mutation.MutationProperties)
	state.Answers = answers
	return nil
}

// mergeAnswers decodes raw over a copy of current. The workplace-plan pointers
// are detached first so decoding never writes through to current.
func mergeAnswers(current model.Answers, raw json.RawMessage) (model.Answers, error) {
	answers := current
	answers.TaxpayerWorkplacePlan = nil
	answers.SpouseWorkplacePlan = nil
	if err := json.Unmarshal(raw, &answers); err != nil {
		return current, err
	}
	if answers.TaxpayerWorkplacePlan == nil {
		answers.TaxpayerWorkplacePlan = current.TaxpayerWorkplacePlan
	}
	if answers.SpouseWorkplacePlan == nil {
		answers.SpouseWorkplacePlan = current.SpouseWorkplacePlan
	}
	return answers, nil
}
