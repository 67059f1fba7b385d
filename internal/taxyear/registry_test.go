package taxyear

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

func TestGetEmbeddedYears(t *testing.T) {
	r := NewRegistry("")

	t25, err := r.Get(2025)
	require.NoError(t, err)
	require.Equal(t, 2025, t25.Year)
	require.Equal(t, 15750.0, t25.StandardDeductionFor(model.Single))
	require.Equal(t, 176100.0, t25.SEParams().WageBase)
	require.Equal(t, 2200.0, t25.ChildCreditParams(model.Single).PerChild)
	_, ok := t25.OBBBParams()
	require.True(t, ok)

	t24, err := r.Get(2024)
	require.NoError(t, err)
	require.Equal(t, 168600.0, t24.SEParams().WageBase)
	require.Equal(t, 2000.0, t24.ChildCreditParams(model.Single).PerChild)
	_, ok = t24.OBBBParams()
	require.False(t, ok, "2024 has no OBBB deductions")

	again, err := r.Get(2025)
	require.NoError(t, err)
	require.Same(t, t25, again, "tables are cached")
}

func TestGetUnsupportedYear(t *testing.T) {
	_, err := NewRegistry("").Get(1999)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupportedYear))
}

func TestQualifyingWidowSharesJointBrackets(t *testing.T) {
	tbl, err := NewRegistry("").Get(2025)
	require.NoError(t, err)

	mfj, err := tbl.Brackets(model.MarriedFilingJointly)
	require.NoError(t, err)
	qw, err := tbl.Brackets(model.QualifyingSurvivingSpouse)
	require.NoError(t, err)
	require.Equal(t, mfj, qw)
	require.True(t, mfj[len(mfj)-1].UpperBound > 1e12, "top bracket is unbounded")
}

func TestPerStatusParameters(t *testing.T) {
	tbl, err := NewRegistry("").Get(2025)
	require.NoError(t, err)

	require.Equal(t, calc.SSThresholds{Lower: 0, Upper: 0}, tbl.SSThresholds(model.MarriedFilingSeparately, false))
	require.Equal(t, calc.SSThresholds{Lower: 25000, Upper: 34000}, tbl.SSThresholds(model.MarriedFilingSeparately, true))
	require.Equal(t, 1500.0, tbl.CapitalLossLimitFor(model.MarriedFilingSeparately))
	require.Equal(t, 3000.0, tbl.CapitalLossLimitFor(model.HeadOfHousehold))
	require.Equal(t, 20000.0, tbl.ItemizedParams(model.MarriedFilingSeparately).SALTCap)
	require.False(t, tbl.StudentLoanParams(model.MarriedFilingSeparately).Allowed)
	require.True(t, tbl.EducationParams(model.Single).Allowed)
	require.Equal(t, 400000.0, tbl.ChildCreditParams(model.MarriedFilingJointly).PhaseOutThreshold)
}

func TestOverrideDirectoryTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	data, err := embedded.ReadFile("tables/2025.yaml")
	require.NoError(t, err)
	patched := strings.Replace(string(data), "wage_base: 176100", "wage_base: 180000", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.yaml"), []byte(patched), 0o644))

	tbl, err := NewRegistry(dir).Get(2025)
	require.NoError(t, err)
	require.Equal(t, 180000.0, tbl.SEParams().WageBase)

	tbl24, err := NewRegistry(dir).Get(2024)
	require.NoError(t, err, "years missing from the override dir fall back to embedded tables")
	require.Equal(t, 2024, tbl24.Year)
}

func TestMissingBracketTableIsRejected(t *testing.T) {
	dir := t.TempDir()
	data, err := embedded.ReadFile("tables/2025.yaml")
	require.NoError(t, err)
	patched := strings.Replace(string(data), "  qualifying_widow: *mfj_brackets\n", "", 1)
	require.NotEqual(t, string(data), patched)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.yaml"), []byte(patched), 0o644))

	_, err = NewRegistry(dir).Get(2025)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingTable), "got %v", err)
}

func TestDescendingBracketsAreRejected(t *testing.T) {
	dir := t.TempDir()
	data, err := embedded.ReadFile("tables/2025.yaml")
	require.NoError(t, err)
	patched := strings.Replace(string(data), "{upper: 48475, rate: 0.12}", "{upper: 5000, rate: 0.12}", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025.yaml"), []byte(patched), 0o644))

	_, err = NewRegistry(dir).Get(2025)
	require.True(t, errors.Is(err, ErrInvalidTable), "got %v", err)
}

func TestYearMismatchIsRejected(t *testing.T) {
	dir := t.TempDir()
	data, err := embedded.ReadFile("tables/2024.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2026.yaml"), data, 0o644))

	_, err = NewRegistry(dir).Get(2026)
	require.True(t, errors.Is(err, ErrInvalidTable), "got %v", err)
}

func TestYears(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2030.yaml"), []byte("year: 2030"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	require.Equal(t, []int{2024, 2025, 2030}, NewRegistry(dir).Years())
	require.Equal(t, []int{2024, 2025}, NewRegistry("").Years())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("year: [1, 2"))
	require.True(t, errors.Is(err, ErrInvalidTable))
}
