// Package income cleans raw income documents and reduces them to the sums the
// return is built from.
package income

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"tax-engine/internal/model"
)

var amountType = reflect.TypeOf(model.Amount(0))

// Sanitized is a situation whose every amount is finite and non-negative,
// together with a record of what had to change to get there.
type Sanitized struct {
	Situation model.Situation
	Defaulted []model.DefaultedField
	Messages  []model.CalculationMessage
}

// Sanitize copies sit and repairs it:
//   - null or unreadable amounts, and required boxes left out of a document,
//     become 0 (FIELD_DEFAULTED)
//   - negative amounts become 0 (NEGATIVE_FIELD_CLAMPED)
//   - documents without an owner belong to the taxpayer
//   - spouse-owned entries are dropped unless filing jointly
//
// Optional boxes that were absent stay 0 without a message.
func Sanitize(sit *model.Situation) Sanitized {
	s := &sanitizer{out: Sanitized{Situation: sit.Clone()}}
	joint := sit.Profile.Status.Joint()
	d := &s.out.Situation.Documents

	d.W2 = sanitizeDocs(s, model.KindW2, d.W2, joint)
	d.INT = sanitizeDocs(s, model.Kind1099INT, d.INT, joint)
	d.DIV = sanitizeDocs(s, model.Kind1099DIV, d.DIV, joint)
	d.NEC = sanitizeDocs(s, model.Kind1099NEC, d.NEC, joint)
	d.B = sanitizeDocs(s, model.Kind1099B, d.B, joint)
	d.R = sanitizeDocs(s, model.Kind1099R, d.R, joint)
	d.G = sanitizeDocs(s, model.Kind1099G, d.G, joint)
	d.SSA = sanitizeDocs(s, model.KindSSA1099, d.SSA, joint)
	d.F1098 = sanitizeDocs(s, model.Kind1098, d.F1098, joint)
	d.F1098T = sanitizeDocs(s, model.Kind1098T, d.F1098T, joint)
	d.F1098E = sanitizeDocs(s, model.Kind1098E, d.F1098E, joint)

	s.walk("answers", reflect.ValueOf(&s.out.Situation.Answers).Elem())

	var businesses []model.Business
	for i := range s.out.Situation.Businesses {
		b := s.out.Situation.Businesses[i]
		path := "businesses[" + strconv.Itoa(i) + "]"
		if !s.keepOwner(path, &b.Owner, joint) {
			continue
		}
		s.walk(path, reflect.ValueOf(&b).Elem())
		businesses = append(businesses, b)
	}
	s.out.Situation.Businesses = businesses

	var properties []model.RentalProperty
	for i := range s.out.Situation.Properties {
		p := s.out.Situation.Properties[i]
		path := "rental_properties[" + strconv.Itoa(i) + "]"
		if !s.keepOwner(path, &p.Owner, joint) {
			continue
		}
		s.walk(path, reflect.ValueOf(&p).Elem())
		properties = append(properties, p)
	}
	s.out.Situation.Properties = properties

	return s.out
}

type metaDocument interface {
	Meta() *model.DocumentMeta
}

func sanitizeDocs[T any, P interface {
	*T
	metaDocument
}](s *sanitizer, kind string, docs []T, joint bool) []T {
	if len(docs) == 0 {
		return docs
	}
	kept := make([]T, 0, len(docs))
	for i := range docs {
		doc := docs[i]
		path := fmt.Sprintf("documents.%s[%d]", kind, i)
		if !s.keepOwner(path, &P(&doc).Meta().Owner, joint) {
			continue
		}
		s.walk(path, reflect.ValueOf(&doc).Elem())
		kept = append(kept, doc)
	}
	return kept
}

type sanitizer struct {
	out Sanitized
}

func (s *sanitizer) keepOwner(path string, owner *model.Owner, joint bool) bool {
	switch *owner {
	case model.OwnerTaxpayer, model.OwnerJoint:
		return true
	case model.OwnerSpouse:
		if joint {
			return true
		}
		s.message(model.LevelWarning, model.CodeSpouseDocumentIgnored, path+".owner",
			"entry belongs to the spouse and is excluded from a return that is not filed jointly")
		return false
	case "":
		*owner = model.OwnerTaxpayer
		return true
	default:
		s.message(model.LevelInfo, model.CodeOwnerDefaulted, path+".owner",
			fmt.Sprintf("unknown owner %q treated as taxpayer", string(*owner)))
		*owner = model.OwnerTaxpayer
		return true
	}
}

// walk repairs every Amount reachable through v's exported fields, including
// embedded structs.
func (s *sanitizer) walk(path string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			s.walk(path, fv)
			continue
		}
		if f.Type != amountType {
			continue
		}
		field := path + "." + jsonName(f)
		a := model.Amount(fv.Float())
		switch {
		case a.Absent():
			s.defaulted(field, "absent", model.CodeFieldDefaulted, "required box missing, using 0")
			fv.SetFloat(0)
		case a.Invalid():
			s.defaulted(field, "null", model.CodeFieldDefaulted, "value missing or unreadable, using 0")
			fv.SetFloat(0)
		case a < 0:
			raw := strconv.FormatFloat(float64(a), 'f', -1, 64)
			s.defaulted(field, raw, model.CodeNegativeFieldClamped, "negative value "+raw+" clamped to 0")
			fv.SetFloat(0)
		}
	}
}

func (s *sanitizer) defaulted(field, raw, code, msg string) {
	s.out.Defaulted = append(s.out.Defaulted, model.DefaultedField{Path: field, Raw: raw, Reason: code})
	s.message(model.LevelWarning, code, field, msg)
}

func (s *sanitizer) message(level, code, field, msg string) {
	s.out.Messages = append(s.out.Messages, model.CalculationMessage{
		Level:   level,
		Code:    code,
		Message: msg,
		Field:   field,
	})
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
		return name
	}
	return f.Name
}
