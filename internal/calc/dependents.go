package calc

import "fmt"

var childRelationships = map[string]bool{
	"son":          true,
	"daughter":     true,
	"child":        true,
	"stepchild":    true,
	"foster_child": true,
	"sibling":      true,
	"grandchild":   true,
	"niece_nephew": true,
}

// DependentTest is what dependent classification needs to know.
type DependentTest struct {
	Age          int
	Relationship string
	MonthsInHome int
	Student      bool
	Disabled     bool
}

// DependentClass is the outcome of ClassifyDependent. At most one of CTC and
// ODC is true.
type DependentClass struct {
	CTC    bool
	ODC    bool
	Reason string
}

// ClassifyDependent decides whether a dependent qualifies for the child tax
// credit (qualifying child under ctcAge at year end) or the credit for other
// dependents.
func ClassifyDependent(d DependentTest, ctcAge int) DependentClass {
	if d.Age < 0 {
		return DependentClass{Reason: "born after the end of the tax year"}
	}
	if !childRelationships[d.Relationship] {
		return DependentClass{ODC: true, Reason: "qualifying relative"}
	}
	if d.MonthsInHome <= 6 && d.Age > 0 {
		return DependentClass{ODC: true, Reason: "did not live in the home more than half the year"}
	}
	ageTest := d.Age < 19 || (d.Student && d.Age < 24) || d.Disabled
	if !ageTest {
		return DependentClass{Reason: "too old to be a qualifying child"}
	}
	if d.Age < ctcAge {
		return DependentClass{CTC: true}
	}
	return DependentClass{ODC: true, Reason: fmt.Sprintf("qualifying child aged %d or older", ctcAge)}
}
