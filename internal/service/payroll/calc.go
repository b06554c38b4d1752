package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// TotalBonuses sums all bonus amounts.
func TotalBonuses(bonuses []payroll.Bonus) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bonuses {
		total = total.Add(b.Amount)
	}
	return total
}

// TotalDeductions sums all deduction amounts.
func TotalDeductions(deductions []payroll.Deduction) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deductions {
		total = total.Add(d.Amount)
	}
	return total
}

// GrossSalary returns base salary plus the sum of all bonus amounts.
func GrossSalary(base decimal.Decimal, bonuses []payroll.Bonus) decimal.Decimal {
	return base.Add(TotalBonuses(bonuses))
}

// NetSalary returns gross minus the sum of all deduction amounts, floored
// at zero. Deductions exceeding gross clamp rather than error.
func NetSalary(gross decimal.Decimal, deductions []payroll.Deduction) decimal.Decimal {
	net := gross.Sub(TotalDeductions(deductions))
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// EstimatedTaxDeductions applies a withholding rate table to a gross
// salary. Each bracket is rounded to two decimal places independently.
func EstimatedTaxDeductions(gross decimal.Decimal, table payroll.TaxRateTable) payroll.TaxEstimate {
	return payroll.TaxEstimate{
		Federal:        gross.Mul(table.Federal).Round(2),
		State:          gross.Mul(table.State).Round(2),
		SocialSecurity: gross.Mul(table.SocialSecurity).Round(2),
		Medicare:       gross.Mul(table.Medicare).Round(2),
		Unemployment:   gross.Mul(table.Unemployment).Round(2),
	}
}

// Recalculate returns a copy of the entry with GrossSalary and NetSalary
// recomputed from base salary, bonuses and deductions.
func Recalculate(entry payroll.PayrollEntry) payroll.PayrollEntry {
	entry.GrossSalary = GrossSalary(entry.BaseSalary, entry.Bonuses)
	entry.NetSalary = NetSalary(entry.GrossSalary, entry.Deductions)
	return entry
}
