package payroll

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// trendLimit caps the monthly trend at the most recent periods.
const trendLimit = 6

// BuildSummary aggregates a snapshot of entries into reporting rollups.
// The department breakdown covers the supplied department list exactly:
// departments without entries appear with zero values, departments absent
// from the list are not invented from the data.
func BuildSummary(entries []payroll.PayrollEntry, departments []string) payroll.Summary {
	summary := payroll.Summary{
		TotalMonthlyPayroll: decimal.Zero,
		TotalBonuses:        decimal.Zero,
		TotalDeductions:     decimal.Zero,
		AverageSalary:       decimal.Zero,
		DepartmentBreakdown: make(map[string]payroll.DepartmentSummary, len(departments)),
		StatusBreakdown:     make(map[payroll.PayrollStatus]int),
	}

	employees := make(map[string]struct{})
	for _, entry := range entries {
		summary.TotalMonthlyPayroll = summary.TotalMonthlyPayroll.Add(entry.NetSalary)
		summary.TotalBonuses = summary.TotalBonuses.Add(TotalBonuses(entry.Bonuses))
		summary.TotalDeductions = summary.TotalDeductions.Add(TotalDeductions(entry.Deductions))
		employees[entry.EmployeeID] = struct{}{}
	}
	summary.EmployeeCount = len(employees)
	if summary.EmployeeCount > 0 {
		summary.AverageSalary = summary.TotalMonthlyPayroll.
			Div(decimal.NewFromInt(int64(summary.EmployeeCount))).Round(2)
	}

	for _, status := range payroll.AllStatuses() {
		summary.StatusBreakdown[status] = 0
	}
	for _, entry := range entries {
		summary.StatusBreakdown[entry.Status]++
	}
	summary.PendingPayments = summary.StatusBreakdown[payroll.StatusPending]
	summary.UpcomingPayments = summary.StatusBreakdown[payroll.StatusProcessing]
	summary.FailedPayments = summary.StatusBreakdown[payroll.StatusFailed]

	for _, department := range departments {
		summary.DepartmentBreakdown[department] = departmentSummary(entries, department)
	}

	summary.MonthlyTrend = monthlyTrend(entries)
	return summary
}

func departmentSummary(entries []payroll.PayrollEntry, department string) payroll.DepartmentSummary {
	ds := payroll.DepartmentSummary{
		TotalPayroll:    decimal.Zero,
		AverageSalary:   decimal.Zero,
		TotalBonuses:    decimal.Zero,
		TotalDeductions: decimal.Zero,
	}

	employees := make(map[string]struct{})
	for _, entry := range entries {
		if entry.Department != department {
			continue
		}
		ds.TotalPayroll = ds.TotalPayroll.Add(entry.NetSalary)
		ds.TotalBonuses = ds.TotalBonuses.Add(TotalBonuses(entry.Bonuses))
		ds.TotalDeductions = ds.TotalDeductions.Add(TotalDeductions(entry.Deductions))
		employees[entry.EmployeeID] = struct{}{}
	}
	ds.EmployeeCount = len(employees)
	if ds.EmployeeCount > 0 {
		ds.AverageSalary = ds.TotalPayroll.Div(decimal.NewFromInt(int64(ds.EmployeeCount))).Round(2)
	}
	return ds
}

type periodKey struct {
	Month string
	Year  int
}

// monthlyTrend groups entries by (month, year), sorts the groups by year
// descending then calendar month descending, and keeps the most recent
// periods. Grouping never relies on map iteration order; the final order
// comes from the explicit sort.
func monthlyTrend(entries []payroll.PayrollEntry) []payroll.TrendPoint {
	groups := make(map[periodKey][]payroll.PayrollEntry)
	for _, entry := range entries {
		key := periodKey{Month: entry.Month, Year: entry.Year}
		groups[key] = append(groups[key], entry)
	}

	trend := make([]payroll.TrendPoint, 0, len(groups))
	for key, group := range groups {
		total := decimal.Zero
		employees := make(map[string]struct{})
		for _, entry := range group {
			total = total.Add(entry.NetSalary)
			employees[entry.EmployeeID] = struct{}{}
		}
		point := payroll.TrendPoint{
			Month:         key.Month,
			Year:          key.Year,
			TotalPayroll:  total,
			EmployeeCount: len(employees),
			AverageSalary: decimal.Zero,
		}
		if point.EmployeeCount > 0 {
			point.AverageSalary = total.Div(decimal.NewFromInt(int64(point.EmployeeCount))).Round(2)
		}
		trend = append(trend, point)
	}

	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year > trend[j].Year
		}
		return payroll.MonthIndex(trend[i].Month) > payroll.MonthIndex(trend[j].Month)
	})

	if len(trend) > trendLimit {
		trend = trend[:trendLimit]
	}
	return trend
}
