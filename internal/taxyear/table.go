package taxyear

import (
	"fmt"
	"math"

	"tax-engine/internal/calc"
	"tax-engine/internal/model"
)

// Table holds every constant that changes from one tax year to the next.
type Table struct {
	Year                   int                                    `yaml:"year"`
	StandardDeduction      map[model.FilingStatus]float64         `yaml:"standard_deduction"`
	BracketTables          map[model.FilingStatus][]BracketSpec   `yaml:"brackets"`
	CapitalGains           map[model.FilingStatus]CapitalGainSpec `yaml:"capital_gains"`
	CapitalLossLimit       LossLimitSpec                          `yaml:"capital_loss_limit"`
	SelfEmployment         SESpec                                 `yaml:"self_employment"`
	SocialSecurityBenefits map[model.FilingStatus]RangeSpec       `yaml:"social_security_benefits"`
	IRA                    IRASpec                                `yaml:"ira"`
	HSA                    HSASpec                                `yaml:"hsa"`
	ChildCredit            ChildCreditSpec                        `yaml:"child_credit"`
	Itemized               ItemizedSpec                           `yaml:"itemized"`
	StudentLoanInterest    PhaseOutSpec                           `yaml:"student_loan_interest"`
	LifetimeLearning       EducationSpec                          `yaml:"lifetime_learning_credit"`
	// OBBB is nil for years before the tips/overtime/car-loan/senior deductions.
	OBBB *OBBBSpec `yaml:"obbb,omitempty"`
}

// BracketSpec is one bracket row; a missing upper bound means unbounded.
type BracketSpec struct {
	Upper *float64 `yaml:"upper,omitempty"`
	Rate  float64  `yaml:"rate"`
}

type CapitalGainSpec struct {
	ZeroRateMax    float64 `yaml:"zero_rate_max"`
	FifteenRateMax float64 `yaml:"fifteen_rate_max"`
}

type LossLimitSpec struct {
	Default  float64 `yaml:"default"`
	Separate float64 `yaml:"separate"`
}

type SESpec struct {
	WageBase           float64 `yaml:"wage_base"`
	NetEarningsFactor  float64 `yaml:"net_earnings_factor"`
	SocialSecurityRate float64 `yaml:"social_security_rate"`
	MedicareRate       float64 `yaml:"medicare_rate"`
	Minimum            float64 `yaml:"minimum"`
}

type RangeSpec struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

type IRASpec struct {
	Limit          float64                          `yaml:"limit"`
	CatchUp        float64                          `yaml:"catch_up"`
	CatchUpAge     int                              `yaml:"catch_up_age"`
	Covered        map[model.FilingStatus]RangeSpec `yaml:"covered"`
	SpousalCovered RangeSpec                        `yaml:"spousal_covered"`
}

type HSASpec struct {
	SelfLimit   float64 `yaml:"self_limit"`
	FamilyLimit float64 `yaml:"family_limit"`
	CatchUp     float64 `yaml:"catch_up"`
	CatchUpAge  int     `yaml:"catch_up_age"`
}

type ChildCreditSpec struct {
	PerChild              float64                        `yaml:"per_child"`
	PerOtherDependent     float64                        `yaml:"per_other_dependent"`
	RefundablePerChild    float64                        `yaml:"refundable_per_child"`
	QualifyingAge         int                            `yaml:"qualifying_age"`
	PhaseOutStep          float64                        `yaml:"phase_out_step"`
	PhaseOutPerStep       float64                        `yaml:"phase_out_per_step"`
	EarnedIncomeThreshold float64                        `yaml:"earned_income_threshold"`
	EarnedIncomeRate      float64                        `yaml:"earned_income_rate"`
	PhaseOutThreshold     map[model.FilingStatus]float64 `yaml:"phase_out_threshold"`
}

type ItemizedSpec struct {
	SALTCap                    float64 `yaml:"salt_cap"`
	SALTCapSeparate            float64 `yaml:"salt_cap_separate"`
	SALTFloor                  float64 `yaml:"salt_floor"`
	SALTFloorSeparate          float64 `yaml:"salt_floor_separate"`
	PhaseDownThreshold         float64 `yaml:"phase_down_threshold"`
	PhaseDownThresholdSeparate float64 `yaml:"phase_down_threshold_separate"`
	PhaseDownRate              float64 `yaml:"phase_down_rate"`
	MedicalFloorRate           float64 `yaml:"medical_floor_rate"`
}

// PhaseOutSpec is a capped benefit with a MAGI phase-out. Statuses without a
// range may not claim it.
type PhaseOutSpec struct {
	Cap      float64                          `yaml:"cap"`
	PhaseOut map[model.FilingStatus]RangeSpec `yaml:"phase_out"`
}

type EducationSpec struct {
	Rate       float64                          `yaml:"rate"`
	ExpenseCap float64                          `yaml:"expense_cap"`
	PhaseOut   map[model.FilingStatus]RangeSpec `yaml:"phase_out"`
}

type OBBBSpec struct {
	TipsCap          float64 `yaml:"tips_cap"`
	OvertimeCap      float64 `yaml:"overtime_cap"`
	OvertimeCapJoint float64 `yaml:"overtime_cap_joint"`
	CarLoanCap       float64 `yaml:"car_loan_cap"`
	SeniorAmount     float64 `yaml:"senior_amount"`
	SeniorAge        int     `yaml:"senior_age"`
}

func (r RangeSpec) phaseOut() calc.PhaseOutRange {
	return calc.PhaseOutRange{Lower: r.Lower, Upper: r.Upper}
}

// Brackets returns the ordinary-income schedule for a filing status.
func (t *Table) Brackets(fs model.FilingStatus) ([]calc.Bracket, error) {
	specs, ok := t.BracketTables[fs]
	if !ok || len(specs) == 0 {
		return nil, fmt.Errorf("%w: %d brackets for %q", ErrMissingTable, t.Year, fs)
	}
	out := make([]calc.Bracket, len(specs))
	for i, s := range specs {
		upper := math.Inf(1)
		if s.Upper != nil {
			upper = *s.Upper
		}
		out[i] = calc.Bracket{UpperBound: upper, Rate: s.Rate}
	}
	return out, nil
}

func (t *Table) StandardDeductionFor(fs model.FilingStatus) float64 {
	return t.StandardDeduction[fs]
}

func (t *Table) CapitalGainThresholds(fs model.FilingStatus) calc.CapitalGainThresholds {
	cg := t.CapitalGains[fs]
	return calc.CapitalGainThresholds{ZeroRateMax: cg.ZeroRateMax, FifteenRateMax: cg.FifteenRateMax}
}

func (t *Table) CapitalLossLimitFor(fs model.FilingStatus) float64 {
	if fs == model.MarriedFilingSeparately {
		return t.CapitalLossLimit.Separate
	}
	return t.CapitalLossLimit.Default
}

func (t *Table) SEParams() calc.SEParams {
	return calc.SEParams{
		WageBase:           t.SelfEmployment.WageBase,
		NetEarningsFactor:  t.SelfEmployment.NetEarningsFactor,
		SocialSecurityRate: t.SelfEmployment.SocialSecurityRate,
		MedicareRate:       t.SelfEmployment.MedicareRate,
		Minimum:            t.SelfEmployment.Minimum,
	}
}

// SSThresholds returns the benefits-worksheet base amounts. A separate filer
// who lived apart from their spouse all year uses the single amounts.
func (t *Table) SSThresholds(fs model.FilingStatus, livedApart bool) calc.SSThresholds {
	if fs == model.MarriedFilingSeparately && livedApart {
		fs = model.Single
	}
	r := t.SocialSecurityBenefits[fs]
	return calc.SSThresholds{Lower: r.Lower, Upper: r.Upper}
}

func (t *Table) IRAParams(fs model.FilingStatus) calc.IRAParams {
	return calc.IRAParams{
		Limit:          t.IRA.Limit,
		CatchUp:        t.IRA.CatchUp,
		CatchUpAge:     t.IRA.CatchUpAge,
		Covered:        t.IRA.Covered[fs].phaseOut(),
		SpousalCovered: t.IRA.SpousalCovered.phaseOut(),
	}
}

func (t *Table) HSAParams() calc.HSAParams {
	return calc.HSAParams{
		SelfLimit:   t.HSA.SelfLimit,
		FamilyLimit: t.HSA.FamilyLimit,
		CatchUp:     t.HSA.CatchUp,
		CatchUpAge:  t.HSA.CatchUpAge,
	}
}

func (t *Table) ChildCreditParams(fs model.FilingStatus) calc.ChildCreditParams {
	c := t.ChildCredit
	return calc.ChildCreditParams{
		PerChild:              c.PerChild,
		PerOtherDependent:     c.PerOtherDependent,
		RefundablePerChild:    c.RefundablePerChild,
		PhaseOutThreshold:     c.PhaseOutThreshold[fs],
		PhaseOutStep:          c.PhaseOutStep,
		PhaseOutPerStep:       c.PhaseOutPerStep,
		EarnedIncomeThreshold: c.EarnedIncomeThreshold,
		EarnedIncomeRate:      c.EarnedIncomeRate,
	}
}

func (t *Table) ItemizedParams(fs model.FilingStatus) calc.ItemizedParams {
	it := t.Itemized
	p := calc.ItemizedParams{
		SALTCap:            it.SALTCap,
		SALTFloor:          it.SALTFloor,
		PhaseDownThreshold: it.PhaseDownThreshold,
		PhaseDownRate:      it.PhaseDownRate,
		MedicalFloorRate:   it.MedicalFloorRate,
	}
	if fs == model.MarriedFilingSeparately {
		p.SALTCap = it.SALTCapSeparate
		p.SALTFloor = it.SALTFloorSeparate
		p.PhaseDownThreshold = it.PhaseDownThresholdSeparate
	}
	return p
}

func (t *Table) StudentLoanParams(fs model.FilingStatus) calc.StudentLoanParams {
	r, ok := t.StudentLoanInterest.PhaseOut[fs]
	return calc.StudentLoanParams{Cap: t.StudentLoanInterest.Cap, PhaseOut: r.phaseOut(), Allowed: ok}
}

func (t *Table) EducationParams(fs model.FilingStatus) calc.EducationParams {
	r, ok := t.LifetimeLearning.PhaseOut[fs]
	return calc.EducationParams{
		Rate:       t.LifetimeLearning.Rate,
		ExpenseCap: t.LifetimeLearning.ExpenseCap,
		PhaseOut:   r.phaseOut(),
		Allowed:    ok,
	}
}

// OBBBParams reports false when the year has no OBBB deductions.
func (t *Table) OBBBParams() (calc.OBBBParams, bool) {
	if t.OBBB == nil {
		return calc.OBBBParams{}, false
	}
	o := t.OBBB
	return calc.OBBBParams{
		TipsCap:          o.TipsCap,
		OvertimeCap:      o.OvertimeCap,
		OvertimeCapJoint: o.OvertimeCapJoint,
		CarLoanCap:       o.CarLoanCap,
		SeniorAmount:     o.SeniorAmount,
		SeniorAge:        o.SeniorAge,
	}, true
}

// Validate checks that every filing status is covered and every bracket
// schedule is well formed.
func (t *Table) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("%w: missing year", ErrInvalidTable)
	}
	for _, fs := range model.FilingStatuses {
		if _, ok := t.StandardDeduction[fs]; !ok {
			return fmt.Errorf("%w: %d standard deduction for %q", ErrMissingTable, t.Year, fs)
		}
		brackets, err := t.Brackets(fs)
		if err != nil {
			return err
		}
		if err := calc.ValidateBrackets(brackets); err != nil {
			return fmt.Errorf("%w: %d brackets for %q: %v", ErrInvalidTable, t.Year, fs, err)
		}
		if _, ok := t.CapitalGains[fs]; !ok {
			return fmt.Errorf("%w: %d capital gain thresholds for %q", ErrMissingTable, t.Year, fs)
		}
		if _, ok := t.SocialSecurityBenefits[fs]; !ok {
			return fmt.Errorf("%w: %d social security thresholds for %q", ErrMissingTable, t.Year, fs)
		}
		if r, ok := t.IRA.Covered[fs]; !ok || r.Upper <= r.Lower {
			return fmt.Errorf("%w: %d IRA phase-out for %q", ErrMissingTable, t.Year, fs)
		}
		if _, ok := t.ChildCredit.PhaseOutThreshold[fs]; !ok {
			return fmt.Errorf("%w: %d child credit threshold for %q", ErrMissingTable, t.Year, fs)
		}
	}
	if t.SelfEmployment.WageBase <= 0 || t.SelfEmployment.NetEarningsFactor <= 0 {
		return fmt.Errorf("%w: %d self-employment constants", ErrInvalidTable, t.Year)
	}
	if t.ChildCredit.QualifyingAge <= 0 {
		return fmt.Errorf("%w: %d child credit qualifying age", ErrInvalidTable, t.Year)
	}
	if t.Itemized.SALTCap <= 0 {
		return fmt.Errorf("%w: %d SALT cap", ErrInvalidTable, t.Year)
	}
	return nil
}
