package employee

import "context"

// EmployeeProvider supplies employee snapshots from the directory that
// owns employee data.
type EmployeeProvider interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
