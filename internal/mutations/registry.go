package mutations

import "sort"

var registry = map[string]MutationHandler{
	"add_income_document":     &AddIncomeDocumentHandler{},
	"correct_income_document": &CorrectIncomeDocumentHandler{},
	"remove_income_document":  &RemoveIncomeDocumentHandler{},
	"add_dependent":           &AddDependentHandler{},
	"remove_dependent":        &RemoveDependentHandler{},
	"set_filing_profile":      &SetFilingProfileHandler{},
	"set_answers":             &SetAnswersHandler{},
	"add_business":            &AddBusinessHandler{},
	"add_rental_property":     &AddRentalPropertyHandler{},
}

func Get(name string) (MutationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Names lists the registered mutation names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
