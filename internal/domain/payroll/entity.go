package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	StatusPending    PayrollStatus = "Pending"
	StatusProcessing PayrollStatus = "Processing"
	StatusPaid       PayrollStatus = "Paid"
	StatusFailed     PayrollStatus = "Failed"
	StatusCancelled  PayrollStatus = "Cancelled"
	StatusOnHold     PayrollStatus = "On Hold"
)

// AllStatuses returns every payroll status in lifecycle order.
func AllStatuses() []PayrollStatus {
	return []PayrollStatus{
		StatusPending,
		StatusProcessing,
		StatusPaid,
		StatusFailed,
		StatusCancelled,
		StatusOnHold,
	}
}

// BonusType enum
type BonusType string

const (
	BonusPerformance BonusType = "Performance"
	BonusHoliday     BonusType = "Holiday"
	BonusReferral    BonusType = "Referral"
	BonusRetention   BonusType = "Retention"
	BonusProject     BonusType = "Project"
	BonusOther       BonusType = "Other"
)

// DeductionType enum
type DeductionType string

const (
	DeductionIncomeTax       DeductionType = "Income Tax"
	DeductionHealthInsurance DeductionType = "Health Insurance"
	DeductionRetirement      DeductionType = "Retirement"
	DeductionLoan            DeductionType = "Loan Repayment"
	DeductionSocialSecurity  DeductionType = "Social Security"
	DeductionOther           DeductionType = "Other"
)

// DeductionCategory groups deduction types for reporting.
type DeductionCategory string

const (
	CategoryTax        DeductionCategory = "Tax"
	CategoryInsurance  DeductionCategory = "Insurance"
	CategoryRetirement DeductionCategory = "Retirement"
	CategoryLoan       DeductionCategory = "Loan"
	CategoryBenefit    DeductionCategory = "Benefit"
	CategoryOther      DeductionCategory = "Other"
)

// Months lists calendar month names in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based calendar position of a month name,
// or -1 when the name is not a calendar month.
func MonthIndex(month string) int {
	for i, m := range Months {
		if m == month {
			return i
		}
	}
	return -1
}

// Bonus - additive line item on top of base salary
type Bonus struct {
	ID          string
	Type        BonusType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Recurring   bool
	Taxable     bool
}

// Deduction - subtractive line item against gross salary
type Deduction struct {
	ID          string
	Type        DeductionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Recurring   bool
	Category    DeductionCategory
}

// PayrollEntry - one employee's pay for one (month, year) period.
// GrossSalary and NetSalary are derived fields, recomputed on every input
// change; they are never written directly by callers.
type PayrollEntry struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	Department       string
	Position         *string
	Month            string
	Year             int
	BaseSalary       decimal.Decimal
	Bonuses          []Bonus
	Deductions       []Deduction
	GrossSalary      decimal.Decimal
	NetSalary        decimal.Decimal
	Status           PayrollStatus
	PayslipGenerated bool
	PayDate          time.Time
	Notes            *string
	ApprovedBy       *string
	ApprovedAt       *time.Time
	ProcessedBy      *string
	ProcessedAt      *time.Time
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanEdit reports whether direct edits to the entry are allowed.
func (e PayrollEntry) CanEdit() bool {
	return e.Status == StatusPending || e.Status == StatusOnHold
}

// CanDelete reports whether the entry may be removed. Paid entries are
// permanent records and are never deleted.
func (e PayrollEntry) CanDelete() bool {
	return e.Status != StatusPaid
}

// Clone returns a deep copy of the entry. Line item slices and pointer
// fields are duplicated so the copy shares no memory with the original.
func (e PayrollEntry) Clone() PayrollEntry {
	out := e
	if e.Bonuses != nil {
		out.Bonuses = make([]Bonus, len(e.Bonuses))
		copy(out.Bonuses, e.Bonuses)
	}
	if e.Deductions != nil {
		out.Deductions = make([]Deduction, len(e.Deductions))
		copy(out.Deductions, e.Deductions)
	}
	out.Position = cloneString(e.Position)
	out.Notes = cloneString(e.Notes)
	out.ApprovedBy = cloneString(e.ApprovedBy)
	out.ApprovedAt = cloneTime(e.ApprovedAt)
	out.ProcessedBy = cloneString(e.ProcessedBy)
	out.ProcessedAt = cloneTime(e.ProcessedAt)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
