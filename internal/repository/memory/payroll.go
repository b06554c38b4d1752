package memory

import (
	"context"
	"sync"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// PayrollRepository is an in-memory payroll.PayrollRepository with the
// semantics durable implementations must provide: reads return snapshots
// (callers never see a partially updated entry), writes are optimistic
// (stale versions are rejected, not merged).
type PayrollRepository struct {
	mu      sync.RWMutex
	entries map[string]payroll.PayrollEntry
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{
		entries: make(map[string]payroll.PayrollEntry),
	}
}

func (r *PayrollRepository) GetByID(_ context.Context, id string) (payroll.PayrollEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
	}
	return entry.Clone(), nil
}

func (r *PayrollRepository) GetByEmployeePeriod(_ context.Context, employeeID, month string, year int) (payroll.PayrollEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.EmployeeID == employeeID && entry.Month == month && entry.Year == year {
			return entry.Clone(), nil
		}
	}
	return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
}

func (r *PayrollRepository) List(_ context.Context) ([]payroll.PayrollEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]payroll.PayrollEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Clone())
	}
	return out, nil
}

func (r *PayrollRepository) Create(_ context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; ok {
		return payroll.PayrollEntry{}, payroll.ErrDuplicatePeriod
	}
	for _, existing := range r.entries {
		if existing.EmployeeID == entry.EmployeeID &&
			existing.Month == entry.Month && existing.Year == entry.Year {
			return payroll.PayrollEntry{}, payroll.ErrDuplicatePeriod
		}
	}

	entry.Version = 1
	r.entries[entry.ID] = entry.Clone()
	return entry, nil
}

func (r *PayrollRepository) Update(_ context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.entries[entry.ID]
	if !ok {
		return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
	}
	if current.Version != entry.Version {
		return payroll.PayrollEntry{}, payroll.ErrVersionConflict
	}

	entry.Version++
	r.entries[entry.ID] = entry.Clone()
	return entry, nil
}

func (r *PayrollRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return payroll.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}
