package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/strive-hr/payroll-engine/internal/domain/employee"
)

// EmployeeProvider is an in-memory employee directory, seeded by the
// caller. It stands in for the external directory that owns employee data.
type EmployeeProvider struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeProvider(seed ...employee.Employee) *EmployeeProvider {
	p := &EmployeeProvider{
		employees: make(map[string]employee.Employee, len(seed)),
	}
	for _, emp := range seed {
		p.employees[emp.ID] = emp
	}
	return p
}

func (p *EmployeeProvider) Add(emp employee.Employee) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.employees[emp.ID] = emp
}

func (p *EmployeeProvider) GetByID(_ context.Context, id string) (employee.Employee, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	emp, ok := p.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (p *EmployeeProvider) ListActive(_ context.Context) ([]employee.Employee, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]employee.Employee, 0, len(p.employees))
	for _, emp := range p.employees {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
