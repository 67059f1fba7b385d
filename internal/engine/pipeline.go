package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tax-engine/internal/calc"
	"tax-engine/internal/form1040"
	"tax-engine/internal/income"
	"tax-engine/internal/model"
	"tax-engine/internal/schedules"
	"tax-engine/internal/taxyear"
)

type pipeline struct {
	table    *taxyear.Table
	brackets []calc.Bracket
	year     int
	status   model.FilingStatus
	messages []model.CalculationMessage
}

type filerAges struct {
	taxpayer int
	spouse   int
}

var round = calc.RoundCents

// run is the Form 1040 pipeline. Every figure is rebuilt from sit; nothing
// is carried over from an earlier run.
func (p *pipeline) run(raw *model.Situation) *model.TaxReturn {
	clean := income.Sanitize(raw)
	p.messages = append(p.messages, clean.Messages...)
	sit := &clean.Situation
	a := &sit.Answers
	joint := p.status.Joint()

	if sit.Documents.Count() == 0 && len(sit.Businesses) == 0 && len(sit.Properties) == 0 {
		p.add(model.LevelInfo, model.CodeNoIncomeDocuments, "documents", "no income documents entered")
	}

	ages := p.ages(&sit.Profile, joint)
	sum := income.Aggregate(&sit.Documents)

	ret := &model.TaxReturn{
		TaxYear:      p.year,
		FilingStatus: p.status,
		Defaulted:    clean.Defaulted,
	}
	if ret.Defaulted == nil {
		ret.Defaulted = []model.DefaultedField{}
	}
	sch := &ret.Schedules
	t := &ret.Totals

	sch.B = schedules.BuildB(&sit.Documents)
	sch.C = schedules.BuildC(sit.Businesses, sit.Documents.NEC)
	var limited bool
	sch.D, limited = schedules.BuildD(sum, p.table.CapitalLossLimitFor(p.status))
	if limited {
		p.add(model.LevelWarning, model.CodeCapitalLossLimited, "documents.1099_b", fmt.Sprintf(
			"net capital loss of $%.2f limited to $%.2f; the remainder carries forward", -sch.D.NetGain, -sch.D.AllowedGain))
	}
	sch.E = schedules.BuildE(sit.Properties)
	sch.SE = schedules.BuildSE(sch.C, sum, p.table.SEParams())

	// Income
	t.Wages = sum.Wages
	t.TaxableInterest = sum.TaxableInterest
	t.TaxExemptInterest = sum.TaxExemptInterest
	t.OrdinaryDividends = sum.OrdinaryDividends
	t.QualifiedDividends = sum.QualifiedDividends
	t.CapitalGains = sch.D.AllowedGain
	t.IRADistributions = sum.IRADistributions
	t.IRADistributionsTaxable = sum.IRATaxable
	t.Pensions = sum.Pensions
	t.PensionsTaxable = sum.PensionsTaxable
	t.BusinessIncome = schedules.BusinessIncome(sch.C)
	t.RentalIncome = sch.E.Total
	t.Unemployment = sum.Unemployment
	t.AdditionalIncome = schedules.AdditionalIncome(t.BusinessIncome, t.RentalIncome, t.Unemployment)
	nonBenefit := round(t.Wages + t.TaxableInterest + t.OrdinaryDividends + t.IRADistributionsTaxable +
		t.PensionsTaxable + t.CapitalGains + t.AdditionalIncome)

	// Adjustments that do not depend on AGI
	t.SETax, t.SEDeduction = schedules.SETotals(sch.SE)
	hsa, capped := calc.HSADeduction(a.HSAContribution.Float(), a.HSACoverage == "family", ages.taxpayer, p.table.HSAParams())
	if capped {
		p.add(model.LevelWarning, model.CodeHSAContributionCapped, "answers.hsa_contribution", fmt.Sprintf(
			"HSA contribution of $%.2f exceeds the limit; $%.2f deducted", a.HSAContribution.Float(), hsa))
	}
	t.HSADeduction = hsa

	t.SocialSecurityBenefits = sum.SocialSecurityBenefits
	other := round(nonBenefit + t.TaxExemptInterest - t.HSADeduction - t.SEDeduction)
	ss := calc.TaxableSocialSecurity(t.SocialSecurityBenefits, other, p.table.SSThresholds(p.status, sit.Profile.MFSLivedApart))
	t.SocialSecurityTaxable = ss.Taxable
	t.TotalIncome = round(nonBenefit + t.SocialSecurityTaxable)
	t.PreliminaryAGI = round(t.TotalIncome - t.HSADeduction - t.SEDeduction)

	// IRA uses the preliminary AGI; student-loan interest uses AGI before itself.
	ret.IRA = p.ira(a, sum, ages, joint, t.PreliminaryAGI)
	t.IRADeduction = ret.IRA.Total
	if sum.StudentLoanInterest > 0 && p.status == model.MarriedFilingSeparately {
		p.add(model.LevelWarning, model.CodeNotAllowedSeparate, "documents.1098_e",
			"student loan interest is not deductible when married filing separately")
	}
	t.StudentLoanInterest = calc.StudentLoanInterestDeduction(sum.StudentLoanInterest,
		round(t.PreliminaryAGI-t.IRADeduction), p.table.StudentLoanParams(p.status))
	t.TotalAdjustments = round(t.HSADeduction + t.SEDeduction + t.IRADeduction + t.StudentLoanInterest)
	t.AdjustedGrossIncome = round(t.TotalIncome - t.TotalAdjustments)

	// Deductions
	t.StandardDeduction = p.table.StandardDeductionFor(p.status)
	item := calc.ItemizedDeductions(calc.ItemizedInput{
		MedicalExpenses:   a.MedicalExpenses.Float(),
		StateLocalTaxes:   a.StateLocalTaxes.Float(),
		RealEstateTaxes:   a.RealEstateTaxes.Float(),
		MortgageInterest:  sum.MortgageInterest,
		CharitableCash:    a.CharitableCash.Float(),
		CharitableNonCash: a.CharitableNonCash.Float(),
		Other:             a.OtherItemized.Float(),
	}, t.AdjustedGrossIncome, p.table.ItemizedParams(p.status))
	ret.Itemized = model.ItemizedDetail(item)
	t.ItemizedDeduction = item.Total
	t.DeductionUsed, t.DeductionMethod = calc.ChooseDeduction(t.StandardDeduction, item.Total, a.ForceItemize)

	p.obbb(t, a, ages, joint)

	t.TaxableIncome = math.Max(0, round(t.AdjustedGrossIncome-t.DeductionUsed-t.OBBBDeduction))

	// Tax
	preferential := round(t.QualifiedDividends + calc.NetCapitalGain(sch.D.ShortTermGain, sch.D.LongTermGain))
	t.IncomeTax = calc.PreferentialTax(t.TaxableIncome, preferential, p.brackets, p.table.CapitalGainThresholds(p.status))
	t.TaxBeforeCredits = t.IncomeTax
	t.OtherTaxes = t.SETax

	// Credits
	deps, children, others := p.dependents(sit.Profile.Dependents)
	earned := math.Max(0, round(t.Wages+t.BusinessIncome-t.SEDeduction))
	cc := calc.ChildTaxCredit(children, others, t.AdjustedGrossIncome, t.TaxBeforeCredits, earned, p.table.ChildCreditParams(p.status))
	t.ChildCreditBeforePhaseOut = cc.BaseCredit
	t.ChildCreditPhaseOut = cc.PhaseOutReduction
	t.ChildTaxCredit = cc.Nonrefundable
	t.AdditionalChildTaxCredit = cc.Refundable
	ret.Dependents = deps

	netTuition := math.Max(0, round(sum.QualifiedTuition-sum.Scholarships))
	if netTuition > 0 && p.status == model.MarriedFilingSeparately {
		p.add(model.LevelWarning, model.CodeNotAllowedSeparate, "documents.1098_t",
			"the lifetime learning credit is not available when married filing separately")
	}
	llc := calc.LifetimeLearningCredit(netTuition, t.AdjustedGrossIncome, p.table.EducationParams(p.status))
	t.EducationCredit = math.Min(llc, math.Max(0, round(t.TaxBeforeCredits-t.ChildTaxCredit)))
	t.NonrefundableCredits = round(t.ChildTaxCredit + t.EducationCredit)
	t.RefundableCredits = t.AdditionalChildTaxCredit

	t.TotalTax = round(t.TaxBeforeCredits - t.NonrefundableCredits + t.OtherTaxes)

	// Payments
	t.W2Withholding = sum.W2Withheld
	t.Form1099Withheld = sum.Form1099Withheld
	t.FederalWithheld = sum.FederalWithheld()
	t.EstimatedPayments = a.EstimatedPayments.Float()
	t.TotalPayments = round(t.FederalWithheld + t.EstimatedPayments + t.RefundableCredits)

	switch diff := round(t.TotalPayments - t.TotalTax); {
	case diff > 0:
		t.Refund = diff
	case diff < 0:
		t.AmountOwed = -diff
	}

	sch.One = schedules.Build1(t)
	sch.OneA = schedules.Build1A(t)
	sch.Two = schedules.Build2(t)
	sch.Three = schedules.Build3(t)
	ret.Form1040 = form1040.Project(t, p.status)
	return ret
}

func (p *pipeline) ages(profile *model.FilingProfile, joint bool) filerAges {
	var ages filerAges
	ages.taxpayer = p.age(profile.Taxpayer.DateOfBirth, "profile.taxpayer.date_of_birth")
	if joint && profile.Spouse != nil {
		ages.spouse = p.age(profile.Spouse.DateOfBirth, "profile.spouse.date_of_birth")
	}
	return ages
}

// age returns 0 for a missing date of birth.
func (p *pipeline) age(dob, field string) int {
	if dob == "" {
		return 0
	}
	born, ok := calc.ParseDate(dob)
	if !ok {
		p.add(model.LevelWarning, model.CodeInvalidBirthDate, field, fmt.Sprintf("date of birth %q is not YYYY-MM-DD", dob))
		return 0
	}
	return max(0, calc.AgeAtYearEnd(born, p.year))
}

func (p *pipeline) ira(a *model.Answers, sum income.Summary, ages filerAges, joint bool, preliminaryAGI float64) model.IRADetail {
	covered := func(override *bool, fromW2 bool) bool {
		if override != nil {
			return *override
		}
		return fromW2
	}

	taxpayer := calc.IRAPerson{
		Contribution:  a.IRAContributionTaxpayer.Float(),
		Age:           ages.taxpayer,
		CoveredByPlan: covered(a.TaxpayerWorkplacePlan, sum.Taxpayer.RetirementPlan),
	}
	var spouse *calc.IRAPerson
	if joint {
		spouse = &calc.IRAPerson{
			Contribution:  a.IRAContributionSpouse.Float(),
			Age:           ages.spouse,
			CoveredByPlan: covered(a.SpouseWorkplacePlan, sum.Spouse.RetirementPlan),
		}
	} else if a.IRAContributionSpouse.Float() > 0 {
		p.add(model.LevelWarning, model.CodeSpouseIRAIgnored, "answers.ira_contribution_spouse",
			"spouse IRA contributions only count on a joint return")
	}

	res := calc.IRADeduction(taxpayer, spouse, joint, preliminaryAGI, p.table.IRAParams(p.status))
	p.iraMessages(res.Taxpayer, "answers.ira_contribution_taxpayer")
	p.iraMessages(res.Spouse, "answers.ira_contribution_spouse")

	detail := model.IRADetail{
		PreliminaryAGI: preliminaryAGI,
		Taxpayer:       iraPersonDetail(res.Taxpayer, taxpayer.CoveredByPlan),
		Total:          res.Total,
	}
	if spouse != nil {
		detail.Spouse = iraPersonDetail(res.Spouse, spouse.CoveredByPlan)
	}
	return detail
}

func (p *pipeline) iraMessages(r calc.IRAPersonResult, field string) {
	switch {
	case r.Reduced:
		p.add(model.LevelWarning, model.CodeIRADeductionReduced, field, r.Reason)
	case r.Capped:
		p.add(model.LevelWarning, model.CodeIRAContributionCapped, field, r.Reason)
	}
}

func iraPersonDetail(r calc.IRAPersonResult, covered bool) model.IRAPersonDetail {
	return model.IRAPersonDetail{
		Contribution:  r.Contribution,
		Limit:         r.Limit,
		CoveredByPlan: covered,
		Deductible:    r.Deductible,
		Reason:        r.Reason,
	}
}

// obbb fills the tips, overtime, car-loan and senior deductions for years that
// have them. They reduce taxable income, never AGI.
func (p *pipeline) obbb(t *model.TaxTotals, a *model.Answers, ages filerAges, joint bool) {
	params, ok := p.table.OBBBParams()
	if !ok {
		return
	}
	seniors := 0
	if ages.taxpayer >= params.SeniorAge {
		seniors++
	}
	if joint && ages.spouse >= params.SeniorAge {
		seniors++
	}
	o := calc.OBBBDeductions(calc.OBBBInput{
		Tips:            a.Tips.Float(),
		Overtime:        a.Overtime.Float(),
		CarLoanInterest: a.CarLoanInterest.Float(),
		VehicleNew:      a.VehicleNew,
		VehicleDomestic: a.VehicleDomestic,
		Joint:           joint,
		Seniors:         seniors,
	}, params)
	if a.CarLoanInterest.Float() > 0 && o.CarLoan == 0 {
		p.add(model.LevelWarning, model.CodeCarLoanNotQualified, "answers.car_loan_interest",
			"car loan interest is only deductible for a new vehicle assembled in the United States")
	}
	t.TipsDeduction = o.Tips
	t.OvertimeDeduction = o.Overtime
	t.CarLoanDeduction = o.CarLoan
	t.SeniorDeduction = o.Senior
	t.OBBBDeduction = o.Total
}

// dependents classifies every dependent and returns the counts the child tax
// credit needs.
func (p *pipeline) dependents(deps []model.Dependent) (out []model.DependentCredit, children, others int) {
	cp := p.table.ChildCreditParams(p.status)
	ctcAge := p.table.ChildCredit.QualifyingAge
	out = make([]model.DependentCredit, 0, len(deps))
	for i, d := range deps {
		field := "profile.dependents[" + strconv.Itoa(i) + "]"
		row := model.DependentCredit{DependentID: d.ID, Name: strings.TrimSpace(d.FirstName + " " + d.LastName)}

		born, ok := calc.ParseDate(d.DateOfBirth)
		if !ok {
			p.add(model.LevelWarning, model.CodeInvalidBirthDate, field+".date_of_birth",
				fmt.Sprintf("date of birth %q is not YYYY-MM-DD; dependent gets no credit", d.DateOfBirth))
			row.Reason = "date of birth missing or invalid"
			out = append(out, row)
			continue
		}
		row.Age = calc.AgeAtYearEnd(born, p.year)

		class := calc.ClassifyDependent(calc.DependentTest{
			Age:          row.Age,
			Relationship: d.Relationship,
			MonthsInHome: d.MonthsInHome,
			Student:      d.Student,
			Disabled:     d.Disabled,
		}, ctcAge)
		row.CTCEligible = class.CTC
		row.ODCEligible = class.ODC
		row.Reason = class.Reason
		switch {
		case class.CTC:
			children++
			row.CreditAmount = cp.PerChild
		case class.ODC:
			others++
			row.CreditAmount = cp.PerOtherDependent
		default:
			p.add(model.LevelInfo, model.CodeDependentIneligible, field, fmt.Sprintf("%s: %s", row.Name, class.Reason))
		}
		out = append(out, row)
	}
	return out, children, others
}

func (p *pipeline) add(level, code, field, msg string) {
	p.messages = append(p.messages, model.CalculationMessage{Level: level, Code: code, Message: msg, Field: field})
}
