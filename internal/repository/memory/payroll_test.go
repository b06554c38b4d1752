package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

func seedEntry(t *testing.T, repo *PayrollRepository, id, employeeID, month string, year int) payroll.PayrollEntry {
	t.Helper()
	entry, err := repo.Create(context.Background(), payroll.PayrollEntry{
		ID:         id,
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		BaseSalary: decimal.NewFromInt(5000),
		Bonuses:    []payroll.Bonus{{ID: "b1", Amount: decimal.NewFromInt(100), Description: "spot award"}},
		Status:     payroll.StatusPending,
	})
	require.NoError(t, err)
	return entry
}

func TestCreateRejectsDuplicatePeriod(t *testing.T) {
	repo := NewPayrollRepository()
	seedEntry(t, repo, "e1", "emp-1", "December", 2024)

	_, err := repo.Create(context.Background(), payroll.PayrollEntry{
		ID: "e2", EmployeeID: "emp-1", Month: "December", Year: 2024,
	})
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)

	// Same employee, different period.
	_, err = repo.Create(context.Background(), payroll.PayrollEntry{
		ID: "e3", EmployeeID: "emp-1", Month: "November", Year: 2024,
	})
	assert.NoError(t, err)
}

func TestUpdateVersionConflict(t *testing.T) {
	repo := NewPayrollRepository()
	ctx := context.Background()
	entry := seedEntry(t, repo, "e1", "emp-1", "December", 2024)

	first := entry
	first.Status = payroll.StatusProcessing
	_, err := repo.Update(ctx, first)
	require.NoError(t, err)

	// A second writer still holding the original version loses.
	stale := entry
	stale.Status = payroll.StatusCancelled
	_, err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, payroll.ErrVersionConflict)

	current, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusProcessing, current.Status)
	assert.EqualValues(t, 2, current.Version)
}

func TestReadsAreSnapshots(t *testing.T) {
	repo := NewPayrollRepository()
	ctx := context.Background()
	seedEntry(t, repo, "e1", "emp-1", "December", 2024)

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store.
	got.Bonuses[0].Amount = decimal.NewFromInt(999999)
	got.Status = payroll.StatusPaid

	fresh, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, fresh.Bonuses[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, payroll.StatusPending, fresh.Status)

	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed[0].Bonuses[0].Amount = decimal.NewFromInt(-1)

	fresh, err = repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, fresh.Bonuses[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestGetByEmployeePeriod(t *testing.T) {
	repo := NewPayrollRepository()
	ctx := context.Background()
	seedEntry(t, repo, "e1", "emp-1", "December", 2024)
	seedEntry(t, repo, "e2", "emp-1", "November", 2024)

	entry, err := repo.GetByEmployeePeriod(ctx, "emp-1", "November", 2024)
	require.NoError(t, err)
	assert.Equal(t, "e2", entry.ID)

	_, err = repo.GetByEmployeePeriod(ctx, "emp-1", "October", 2024)
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewPayrollRepository()
	ctx := context.Background()
	seedEntry(t, repo, "e1", "emp-1", "December", 2024)

	require.NoError(t, repo.Delete(ctx, "e1"))
	assert.ErrorIs(t, repo.Delete(ctx, "e1"), payroll.ErrEntryNotFound)
}
