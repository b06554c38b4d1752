package payroll

import "context"

// PayrollRepository defines the persistence boundary for payroll entries.
// Implementations own durable storage; the engine only issues intents and
// never performs I/O itself. List and the getters must return snapshots
// that share no memory with the stored entries.
type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (PayrollEntry, error)
	GetByEmployeePeriod(ctx context.Context, employeeID, month string, year int) (PayrollEntry, error)
	List(ctx context.Context) ([]PayrollEntry, error)
	Create(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)

	// Update applies an optimistic write: the entry's Version must match
	// the stored version or the call fails with ErrVersionConflict.
	Update(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)
	Delete(ctx context.Context, id string) error
}

// PaymentGateway models the external payment provider that settles a
// payroll entry. Charge must honor context cancellation and deadlines.
type PaymentGateway interface {
	Charge(ctx context.Context, entry PayrollEntry) error
}
