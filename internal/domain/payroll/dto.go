package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/strive-hr/payroll-engine/internal/pkg/validator"
)

// ========== COMMANDS ==========

// CreateEntryRequest creates a Pending entry for one employee and period.
// BaseSalary overrides the employee snapshot salary when set.
type CreateEntryRequest struct {
	EmployeeID string
	Month      string
	Year       int
	BaseSalary *decimal.Decimal
	Bonuses    []Bonus
	Deductions []Deduction
	PayDate    time.Time
	Notes      *string
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee is required"})
	}
	if MonthIndex(r.Month) < 0 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a calendar month name"})
	}
	if r.Year == 0 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required"})
	}
	if r.PayDate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "pay date is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryRequest edits an editable entry. Every field is listed
// explicitly; nil means "leave unchanged". A non-nil empty Bonuses or
// Deductions slice clears the line items.
type UpdateEntryRequest struct {
	ID         string
	BaseSalary *decimal.Decimal
	Bonuses    []Bonus
	Deductions []Deduction
	Position   *string
	PayDate    *time.Time
	Notes      *string
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "entry id is required"})
	}
	if r.BaseSalary == nil && r.Bonuses == nil && r.Deductions == nil &&
		r.Position == nil && r.PayDate == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{Field: "fields", Message: "at least one field must be set"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApproveRequest moves a Pending entry to Processing.
type ApproveRequest struct {
	EntryID    string
	ApprovedBy string
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryID) {
		errs = append(errs, validator.ValidationError{Field: "entry_id", Message: "entry id is required"})
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "approved_by", Message: "approver is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProcessPaymentRequest settles a Processing entry through the payment
// gateway.
type ProcessPaymentRequest struct {
	EntryID     string
	ProcessedBy string
}

func (r *ProcessPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryID) {
		errs = append(errs, validator.ValidationError{Field: "entry_id", Message: "entry id is required"})
	}
	if validator.IsEmpty(r.ProcessedBy) {
		errs = append(errs, validator.ValidationError{Field: "processed_by", Message: "processor is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatusChangeRequest covers the operator-triggered side transitions
// (hold, resume, cancel).
type StatusChangeRequest struct {
	EntryID   string
	ChangedBy string
	Reason    *string
}

func (r *StatusChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EntryID) {
		errs = append(errs, validator.ValidationError{Field: "entry_id", Message: "entry id is required"})
	}
	if validator.IsEmpty(r.ChangedBy) {
		errs = append(errs, validator.ValidationError{Field: "changed_by", Message: "operator is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== FILTER / SORT ==========

// FilterAll is the wildcard value for string criteria; an empty string
// behaves the same way.
const FilterAll = "all"

// FilterCriteria holds the optional predicates applied to a collection of
// entries. All active predicates are ANDed.
type FilterCriteria struct {
	Search     string
	Month      string
	Year       string
	Department string
	Status     string

	// Net salary range, inclusive on both bounds; nil means unbounded.
	MinNetSalary *decimal.Decimal
	MaxNetSalary *decimal.Decimal
}

type SortField string

const (
	SortByEmployeeName SortField = "employeeName"
	SortByDepartment   SortField = "department"
	SortByBaseSalary   SortField = "baseSalary"
	SortByGrossSalary  SortField = "grossSalary"
	SortByNetSalary    SortField = "netSalary"
	SortByStatus       SortField = "status"
	SortByPayDate      SortField = "payDate"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ========== SUMMARY ==========

// DepartmentSummary is the per-department rollup inside a Summary.
type DepartmentSummary struct {
	EmployeeCount   int
	TotalPayroll    decimal.Decimal
	AverageSalary   decimal.Decimal
	TotalBonuses    decimal.Decimal
	TotalDeductions decimal.Decimal
}

// TrendPoint is one (month, year) group in the monthly trend.
type TrendPoint struct {
	Month         string
	Year          int
	TotalPayroll  decimal.Decimal
	EmployeeCount int
	AverageSalary decimal.Decimal
}

// Summary is derived reporting data. It is rebuilt from entries on demand
// and never persisted.
type Summary struct {
	TotalMonthlyPayroll decimal.Decimal
	TotalBonuses        decimal.Decimal
	TotalDeductions     decimal.Decimal
	EmployeeCount       int
	AverageSalary       decimal.Decimal
	PendingPayments     int
	UpcomingPayments    int
	FailedPayments      int
	DepartmentBreakdown map[string]DepartmentSummary
	StatusBreakdown     map[PayrollStatus]int
	MonthlyTrend        []TrendPoint
}
