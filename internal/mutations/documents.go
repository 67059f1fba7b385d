package mutations

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"tax-engine/internal/model"
)

// docKind manipulates one typed slice of model.Documents.
type docKind interface {
	decode(raw json.RawMessage) (*model.DocumentMeta, error)
	has(d *model.Documents, id string) bool
	add(d *model.Documents, raw json.RawMessage, id string) error
	replace(d *model.Documents, id string, raw json.RawMessage) error
	remove(d *model.Documents, id string) bool
}

type docList[T any, P interface {
	*T
	Meta() *model.DocumentMeta
}] struct {
	slice func(d *model.Documents) *[]T
}

func (k docList[T, P]) decode(raw json.RawMessage) (*model.DocumentMeta, error) {
	var doc T
	if len(raw) == 0 {
		return nil, fmt.Errorf("document is required")
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return P(&doc).Meta(), nil
}

func (k docList[T, P]) index(d *model.Documents, id string) int {
	s := *k.slice(d)
	for i := range s {
		if P(&s[i]).Meta().ID == id {
			return i
		}
	}
	return -1
}

func (k docList[T, P]) has(d *model.Documents, id string) bool {
	return id != "" && k.index(d, id) >= 0
}

func (k docList[T, P]) add(d *model.Documents, raw json.RawMessage, id string) error {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	P(&doc).Meta().ID = id
	s := k.slice(d)
	*s = append(*s, doc)
	return nil
}

func (k docList[T, P]) replace(d *model.Documents, id string, raw json.RawMessage) error {
	i := k.index(d, id)
	if i < 0 {
		return fmt.Errorf("document %s not found", id)
	}
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	s := *k.slice(d)
	owner := P(&doc).Meta().Owner
	if owner == "" {
		owner = P(&s[i]).Meta().Owner
	}
	*P(&doc).Meta() = model.DocumentMeta{ID: id, Owner: owner}
	s[i] = doc
	return nil
}

func (k docList[T, P]) remove(d *model.Documents, id string) bool {
	i := k.index(d, id)
	if i < 0 {
		return false
	}
	s := k.slice(d)
	*s = append((*s)[:i:i], (*s)[i+1:]...)
	return true
}

var documentKinds = map[string]docKind{
	model.KindW2:      docList[model.W2, *model.W2]{func(d *model.Documents) *[]model.W2 { return &d.W2 }},
	model.Kind1099INT: docList[model.Form1099INT, *model.Form1099INT]{func(d *model.Documents) *[]model.Form1099INT { return &d.INT }},
	model.Kind1099DIV: docList[model.Form1099DIV, *model.Form1099DIV]{func(d *model.Documents) *[]model.Form1099DIV { return &d.DIV }},
	model.Kind1099NEC: docList[model.Form1099NEC, *model.Form1099NEC]{func(d *model.Documents) *[]model.Form1099NEC { return &d.NEC }},
	model.Kind1099B:   docList[model.Form1099B, *model.Form1099B]{func(d *model.Documents) *[]model.Form1099B { return &d.B }},
	model.Kind1099R:   docList[model.Form1099R, *model.Form1099R]{func(d *model.Documents) *[]model.Form1099R { return &d.R }},
	model.Kind1099G:   docList[model.Form1099G, *model.Form1099G]{func(d *model.Documents) *[]model.Form1099G { return &d.G }},
	model.KindSSA1099: docList[model.SSA1099, *model.SSA1099]{func(d *model.Documents) *[]model.SSA1099 { return &d.SSA }},
	model.Kind1098:    docList[model.Form1098, *model.Form1098]{func(d *model.Documents) *[]model.Form1098 { return &d.F1098 }},
	model.Kind1098T:   docList[model.Form1098T, *model.Form1098T]{func(d *model.Documents) *[]model.Form1098T { return &d.F1098T }},
	model.Kind1098E:   docList[model.Form1098E, *model.Form1098E]{func(d *model.Documents) *[]model.Form1098E { return &d.F1098E }},
}

type documentProps struct {
	Kind     string          `json:"kind"`
	ID       string          `json:"id"`
	Document json.RawMessage `json:"document"`
}

func (p *documentProps) kind() (docKind, []model.CalculationMessage) {
	k, ok := documentKinds[p.Kind]
	if !ok {
		return nil, critical(model.CodeUnknownDocumentKind, "Unknown document kind: %s", p.Kind)
	}
	return k, nil
}

// documentID is the id named by the properties, falling back to the id inside
// the document itself.
func (p *documentProps) documentID(meta *model.DocumentMeta) string {
	if p.ID != "" {
		return p.ID
	}
	if meta != nil {
		return meta.ID
	}
	return ""
}

type AddIncomeDocumentHandler struct{}

func (h *AddIncomeDocumentHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	k, msgs := props.kind()
	if msgs != nil {
		return msgs
	}
	meta, err := k.decode(props.Document)
	if err != nil {
		return critical(model.CodeInvalidProperties, "%s document: %v", props.Kind, err)
	}
	if !validOwner(meta.Owner) {
		return critical(model.CodeInvalidOwner, "Owner must be taxpayer, spouse or joint, got %q", meta.Owner)
	}
	if id := props.documentID(meta); k.has(&state.Documents, id) {
		return critical(model.CodeDuplicateID, "A %s document with id %s already exists", props.Kind, id)
	}
	return nil
}

func (h *AddIncomeDocumentHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	json.Unmarshal(mutation.MutationProperties, &props)
	k := documentKinds[props.Kind]
	meta, _ := k.decode(props.Document)

	id := props.documentID(meta)
	if id == "" {
		id = uuid.New().String()
	}
	if err := k.add(&state.Documents, props.Document, id); err != nil {
		return critical(model.CodeInvalidProperties, "%s document: %v", props.Kind, err)
	}
	return nil
}

// CorrectIncomeDocumentHandler replaces a document's boxes, keeping its id.
type CorrectIncomeDocumentHandler struct{}

func (h *CorrectIncomeDocumentHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	k, msgs := props.kind()
	if msgs != nil {
		return msgs
	}
	meta, err := k.decode(props.Document)
	if err != nil {
		return critical(model.CodeInvalidProperties, "%s document: %v", props.Kind, err)
	}
	if !validOwner(meta.Owner) {
		return critical(model.CodeInvalidOwner, "Owner must be taxpayer, spouse or joint, got %q", meta.Owner)
	}
	if id := props.documentID(meta); !k.has(&state.Documents, id) {
		return critical(model.CodeDocumentNotFound, "No %s document with id %q", props.Kind, id)
	}
	return nil
}

func (h *CorrectIncomeDocumentHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	json.Unmarshal(mutation.MutationProperties, &props)
	k := documentKinds[props.Kind]
	meta, _ := k.decode(props.Document)

	if err := k.replace(&state.Documents, props.documentID(meta), props.Document); err != nil {
		return critical(model.CodeDocumentNotFound, "%v", err)
	}
	return nil
}

type RemoveIncomeDocumentHandler struct{}

func (h *RemoveIncomeDocumentHandler) Validate(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	if msgs := decodeProps(mutation, &props); msgs != nil {
		return msgs
	}
	k, msgs := props.kind()
	if msgs != nil {
		return msgs
	}
	if !k.has(&state.Documents, props.ID) {
		return critical(model.CodeDocumentNotFound, "No %s document with id %q", props.Kind, props.ID)
	}
	return nil
}

func (h *RemoveIncomeDocumentHandler) Apply(state *model.Situation, mutation *model.Mutation) []model.CalculationMessage {
	var props documentProps
	json.Unmarshal(mutation.MutationProperties, &props)
	documentKinds[props.Kind].remove(&state.Documents, props.ID)
	return nil
}
