package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
	"github.com/strive-hr/payroll-engine/internal/pkg/validator"
)

func draftEntry(t *testing.T) payroll.PayrollEntry {
	t.Helper()
	return payroll.PayrollEntry{
		EmployeeID: "emp-1",
		Month:      "December",
		Year:       time.Now().Year(),
		BaseSalary: dec(t, "8500"),
	}
}

func fieldErrors(t *testing.T, err error) validator.ValidationErrors {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return ve
}

func TestValidateEntryValid(t *testing.T) {
	entry := draftEntry(t)
	entry.Bonuses = bonuses(t, "1200")
	entry.Deductions = deductions(t, "1530", "527", "450")

	if err := ValidateEntry(entry, payroll.DefaultRules()); err != nil {
		t.Fatalf("ValidateEntry() = %v, want nil", err)
	}
}

func TestValidateEntryFieldErrors(t *testing.T) {
	rules := payroll.DefaultRules()

	cases := []struct {
		name      string
		mutate    func(*payroll.PayrollEntry)
		wantField string
	}{
		{
			name:      "missing employee",
			mutate:    func(e *payroll.PayrollEntry) { e.EmployeeID = "" },
			wantField: "employee_id",
		},
		{
			name:      "negative base salary",
			mutate:    func(e *payroll.PayrollEntry) { e.BaseSalary = dec(t, "-100") },
			wantField: "base_salary",
		},
		{
			name:      "zero base salary",
			mutate:    func(e *payroll.PayrollEntry) { e.BaseSalary = dec(t, "0") },
			wantField: "base_salary",
		},
		{
			name:      "base salary above cap",
			mutate:    func(e *payroll.PayrollEntry) { e.BaseSalary = rules.MaxBaseSalary.Add(dec(t, "1")) },
			wantField: "base_salary",
		},
		{
			name:      "missing month",
			mutate:    func(e *payroll.PayrollEntry) { e.Month = "" },
			wantField: "month",
		},
		{
			name:      "invalid month name",
			mutate:    func(e *payroll.PayrollEntry) { e.Month = "Frimaire" },
			wantField: "month",
		},
		{
			name:      "year before minimum",
			mutate:    func(e *payroll.PayrollEntry) { e.Year = 2019 },
			wantField: "year",
		},
		{
			name:      "year too far ahead",
			mutate:    func(e *payroll.PayrollEntry) { e.Year = time.Now().Year() + 2 },
			wantField: "year",
		},
		{
			name: "too many bonuses",
			mutate: func(e *payroll.PayrollEntry) {
				for i := 0; i <= rules.MaxBonusCount; i++ {
					e.Bonuses = append(e.Bonuses, bonuses(t, "10")...)
				}
			},
			wantField: "bonuses",
		},
		{
			name: "too many deductions",
			mutate: func(e *payroll.PayrollEntry) {
				for i := 0; i <= rules.MaxDeductionCount; i++ {
					e.Deductions = append(e.Deductions, deductions(t, "1")...)
				}
			},
			wantField: "deductions",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := draftEntry(t)
			c.mutate(&entry)
			ve := fieldErrors(t, ValidateEntry(entry, rules))
			if !ve.Has(c.wantField) {
				t.Errorf("expected error on field %q, got %v", c.wantField, ve.ToMap())
			}
		})
	}
}

func TestValidateEntryDeductionCap(t *testing.T) {
	rules := payroll.DefaultRules()

	// 60% of a 10000 gross breaches the default 50% cap.
	entry := draftEntry(t)
	entry.BaseSalary = dec(t, "10000")
	entry.Deductions = deductions(t, "6000")

	ve := fieldErrors(t, ValidateEntry(entry, rules))
	if !ve.Has("deductions") {
		t.Fatalf("expected error on deductions, got %v", ve.ToMap())
	}

	// Exactly at the cap is allowed.
	entry.Deductions = deductions(t, "5000")
	if err := ValidateEntry(entry, rules); err != nil {
		t.Errorf("deductions at the cap should pass, got %v", err)
	}

	// The cap is computed against the would-be gross, so a bonus can bring
	// the same deductions back under the limit.
	entry.Deductions = deductions(t, "6000")
	entry.Bonuses = bonuses(t, "2000")
	if err := ValidateEntry(entry, rules); err != nil {
		t.Errorf("deductions at 50%% of would-be gross should pass, got %v", err)
	}
}

func TestValidateBonus(t *testing.T) {
	rules := payroll.DefaultRules()

	valid := payroll.Bonus{Type: payroll.BonusHoliday, Amount: dec(t, "500"), Description: "year-end bonus"}
	if err := ValidateBonus(valid, rules); err != nil {
		t.Fatalf("ValidateBonus() = %v, want nil", err)
	}

	cases := []struct {
		name      string
		bonus     payroll.Bonus
		wantField string
	}{
		{
			name:      "zero amount",
			bonus:     payroll.Bonus{Type: payroll.BonusHoliday, Amount: dec(t, "0"), Description: "year-end bonus"},
			wantField: "amount",
		},
		{
			name:      "amount above type limit",
			bonus:     payroll.Bonus{Type: payroll.BonusHoliday, Amount: rules.MaxBonusAmount.Add(dec(t, "1")), Description: "year-end bonus"},
			wantField: "amount",
		},
		{
			name:      "description too short",
			bonus:     payroll.Bonus{Type: payroll.BonusHoliday, Amount: dec(t, "500"), Description: "ok"},
			wantField: "description",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ve := fieldErrors(t, ValidateBonus(c.bonus, rules))
			if !ve.Has(c.wantField) {
				t.Errorf("expected error on field %q, got %v", c.wantField, ve.ToMap())
			}
		})
	}
}

func TestValidateBonusPerTypeLimit(t *testing.T) {
	rules := payroll.DefaultRules()
	rules.BonusAmountLimits = map[payroll.BonusType]decimal.Decimal{
		payroll.BonusReferral: dec(t, "1000"),
	}

	bonus := payroll.Bonus{Type: payroll.BonusReferral, Amount: dec(t, "2500"), Description: "referral program"}
	ve := fieldErrors(t, ValidateBonus(bonus, rules))
	if !ve.Has("amount") {
		t.Errorf("expected referral bonus above its type limit to fail, got %v", ve.ToMap())
	}

	// Other types still use the global limit.
	other := payroll.Bonus{Type: payroll.BonusPerformance, Amount: dec(t, "2500"), Description: "quarterly target"}
	if err := ValidateBonus(other, rules); err != nil {
		t.Errorf("ValidateBonus() = %v, want nil", err)
	}
}

func TestValidateDeduction(t *testing.T) {
	rules := payroll.DefaultRules()

	valid := payroll.Deduction{Type: payroll.DeductionHealthInsurance, Category: payroll.CategoryInsurance, Amount: dec(t, "320"), Description: "monthly premium"}
	if err := ValidateDeduction(valid, rules); err != nil {
		t.Fatalf("ValidateDeduction() = %v, want nil", err)
	}

	negative := valid
	negative.Amount = dec(t, "-5")
	ve := fieldErrors(t, ValidateDeduction(negative, rules))
	if !ve.Has("amount") {
		t.Errorf("expected error on amount, got %v", ve.ToMap())
	}
}
