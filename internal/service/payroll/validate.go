package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
	"github.com/strive-hr/payroll-engine/internal/pkg/validator"
)

var oneHundred = decimal.NewFromInt(100)

// ValidateEntry checks a draft entry against the payroll policy. It returns
// validator.ValidationErrors (field -> message) and never mutates the
// draft; a nil return means the draft is valid.
//
// The deduction cap is computed against the would-be gross salary, not a
// stored value, so validation always agrees with the calculation engine.
func ValidateEntry(entry payroll.PayrollEntry, rules payroll.Rules) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(entry.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}

	switch {
	case entry.BaseSalary.IsZero():
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base salary is required"})
	case entry.BaseSalary.IsNegative():
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be greater than zero"})
	case entry.BaseSalary.GreaterThan(rules.MaxBaseSalary):
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: fmt.Sprintf("must not exceed %s", rules.MaxBaseSalary.StringFixed(2)),
		})
	}

	if validator.IsEmpty(entry.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required"})
	} else if payroll.MonthIndex(entry.Month) < 0 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a calendar month name"})
	}

	if entry.Year == 0 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required"})
	} else if !validator.IsValidYear(entry.Year, rules.MinYear) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("must be between %d and next year", rules.MinYear),
		})
	}

	if len(entry.Bonuses) > rules.MaxBonusCount {
		errs = append(errs, validator.ValidationError{
			Field:   "bonuses",
			Message: fmt.Sprintf("at most %d bonuses are allowed", rules.MaxBonusCount),
		})
	}

	if len(entry.Deductions) > rules.MaxDeductionCount {
		errs = append(errs, validator.ValidationError{
			Field:   "deductions",
			Message: fmt.Sprintf("at most %d deductions are allowed", rules.MaxDeductionCount),
		})
	}

	if err := validateDeductionCap(entry, rules); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDeductionCap(entry payroll.PayrollEntry, rules payroll.Rules) *validator.ValidationError {
	totalDeductions := TotalDeductions(entry.Deductions)
	if totalDeductions.IsZero() {
		return nil
	}

	gross := GrossSalary(entry.BaseSalary, entry.Bonuses)
	if !gross.IsPositive() {
		return &validator.ValidationError{
			Field:   "deductions",
			Message: "deductions require a positive gross salary",
		}
	}

	percentage := totalDeductions.Div(gross).Mul(oneHundred)
	if percentage.GreaterThan(rules.MaxDeductionPercentage) {
		return &validator.ValidationError{
			Field: "deductions",
			Message: fmt.Sprintf("total deductions (%s%% of gross) exceed the %s%% cap",
				percentage.StringFixed(1), rules.MaxDeductionPercentage.StringFixed(0)),
		}
	}
	return nil
}

// ValidateBonus checks a single bonus line item.
func ValidateBonus(bonus payroll.Bonus, rules payroll.Rules) error {
	var errs validator.ValidationErrors

	limit := rules.BonusLimit(bonus.Type)
	switch {
	case !bonus.Amount.IsPositive():
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	case bonus.Amount.GreaterThan(limit):
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("must not exceed %s for %s bonuses", limit.StringFixed(2), bonus.Type),
		})
	}

	if !validator.LengthBetween(bonus.Description, rules.MinDescriptionLength, rules.MaxDescriptionLength) {
		errs = append(errs, validator.ValidationError{
			Field: "description",
			Message: fmt.Sprintf("must be between %d and %d characters",
				rules.MinDescriptionLength, rules.MaxDescriptionLength),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateDeduction checks a single deduction line item.
func ValidateDeduction(deduction payroll.Deduction, rules payroll.Rules) error {
	var errs validator.ValidationErrors

	if !deduction.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}

	if !validator.LengthBetween(deduction.Description, rules.MinDescriptionLength, rules.MaxDescriptionLength) {
		errs = append(errs, validator.ValidationError{
			Field: "description",
			Message: fmt.Sprintf("must be between %d and %d characters",
				rules.MinDescriptionLength, rules.MaxDescriptionLength),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
