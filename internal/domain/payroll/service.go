package payroll

import (
	"context"
	"time"
)

// PayrollService drives payroll entries through their lifecycle and exposes
// the read-side engines (filtering, sorting, aggregation).
type PayrollService interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (PayrollEntry, error)
	GetEntry(ctx context.Context, id string) (PayrollEntry, error)
	ListEntries(ctx context.Context, criteria FilterCriteria, field SortField, dir SortDirection) ([]PayrollEntry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (PayrollEntry, error)
	DeleteEntry(ctx context.Context, id string) error

	Approve(ctx context.Context, req ApproveRequest) (PayrollEntry, error)
	ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (PayrollEntry, error)
	ProcessApproved(ctx context.Context, processedBy string) ([]PayrollEntry, error)
	GeneratePayslip(ctx context.Context, entryID string) (PayrollEntry, error)
	Hold(ctx context.Context, req StatusChangeRequest) (PayrollEntry, error)
	Resume(ctx context.Context, req StatusChangeRequest) (PayrollEntry, error)
	Cancel(ctx context.Context, req StatusChangeRequest) (PayrollEntry, error)

	BuildSummary(ctx context.Context, criteria FilterCriteria) (Summary, error)
	DeadlineReminders(ctx context.Context, within time.Duration) ([]Event, error)
}
