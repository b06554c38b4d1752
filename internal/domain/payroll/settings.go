package payroll

import (
	"github.com/shopspring/decimal"
)

// Rules - payroll validation policy. Supplied to the validation engine by
// the caller; defaults live in the config package.
type Rules struct {
	MaxBaseSalary          decimal.Decimal
	MinYear                int
	MaxBonusCount          int
	MaxBonusAmount         decimal.Decimal
	MaxDeductionCount      int
	MaxDeductionPercentage decimal.Decimal // percent of gross, e.g. 50
	MinDescriptionLength   int
	MaxDescriptionLength   int

	// BonusAmountLimits overrides MaxBonusAmount per bonus type.
	BonusAmountLimits map[BonusType]decimal.Decimal
}

// DefaultRules returns the standard payroll policy.
func DefaultRules() Rules {
	return Rules{
		MaxBaseSalary:          decimal.NewFromInt(1_000_000),
		MinYear:                2020,
		MaxBonusCount:          10,
		MaxBonusAmount:         decimal.NewFromInt(50_000),
		MaxDeductionCount:      15,
		MaxDeductionPercentage: decimal.NewFromInt(50),
		MinDescriptionLength:   3,
		MaxDescriptionLength:   200,
	}
}

// BonusLimit returns the maximum amount for a bonus type, falling back to
// the global MaxBonusAmount when no per-type override exists.
func (r Rules) BonusLimit(t BonusType) decimal.Decimal {
	if limit, ok := r.BonusAmountLimits[t]; ok {
		return limit
	}
	return r.MaxBonusAmount
}

// TaxRateTable holds the withholding rates used for tax estimates.
// Rates are fractions of gross, not percentages.
type TaxRateTable struct {
	Federal        decimal.Decimal
	State          decimal.Decimal
	SocialSecurity decimal.Decimal
	Medicare       decimal.Decimal
	Unemployment   decimal.Decimal
}

// DefaultTaxRates returns the documented default withholding rates.
func DefaultTaxRates() TaxRateTable {
	return TaxRateTable{
		Federal:        decimal.NewFromFloat(0.12),
		State:          decimal.NewFromFloat(0.04),
		SocialSecurity: decimal.NewFromFloat(0.062),
		Medicare:       decimal.NewFromFloat(0.0145),
		Unemployment:   decimal.NewFromFloat(0.006),
	}
}

// TaxEstimate is the per-bracket output of the tax estimate calculation.
type TaxEstimate struct {
	Federal        decimal.Decimal
	State          decimal.Decimal
	SocialSecurity decimal.Decimal
	Medicare       decimal.Decimal
	Unemployment   decimal.Decimal
}

// Total sums all estimated withholdings.
func (t TaxEstimate) Total() decimal.Decimal {
	return t.Federal.Add(t.State).Add(t.SocialSecurity).Add(t.Medicare).Add(t.Unemployment)
}
