package payroll

import (
	"context"
	"time"
)

// EventType represents the type of payroll notification event
type EventType string

const (
	EventPayrollProcessed EventType = "payroll_processed"
	EventPayslipGenerated EventType = "payslip_generated"
	EventPaymentFailed    EventType = "payment_failed"
	EventApprovalRequired EventType = "approval_required"
	EventDeadlineReminder EventType = "deadline_reminder"
)

// AllEventTypes returns all available payroll event types
func AllEventTypes() []EventType {
	return []EventType{
		EventPayrollProcessed,
		EventPayslipGenerated,
		EventPaymentFailed,
		EventApprovalRequired,
		EventDeadlineReminder,
	}
}

// Event is a structured notification raised by the lifecycle manager.
// Rendering (templates, locale, channel) belongs to the notification
// collaborator; the engine only supplies substitution fields.
type Event struct {
	ID           string
	Type         EventType
	EntryID      string
	EmployeeName string
	Month        string
	Year         int
	Fields       map[string]string
	OccurredAt   time.Time
}

// Notifier receives payroll events. Implementations must not block the
// lifecycle operation that raised the event.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}
