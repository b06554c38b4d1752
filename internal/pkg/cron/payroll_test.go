package cron

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strive-hr/payroll-engine/internal/domain/employee"
	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
	"github.com/strive-hr/payroll-engine/internal/pkg/paygate"
	"github.com/strive-hr/payroll-engine/internal/repository/memory"
	payrollService "github.com/strive-hr/payroll-engine/internal/service/payroll"
)

func newJobsEnv(t *testing.T) (payroll.PayrollService, *PayrollJobs) {
	t.Helper()

	provider := memory.NewEmployeeProvider(employee.Employee{
		ID:         "emp-1",
		Name:       "Alice Johnson",
		Department: "Engineering",
		BaseSalary: decimal.RequireFromString("8500"),
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := payrollService.NewPayrollService(
		memory.NewPayrollRepository(),
		provider,
		paygate.Noop{},
		nil,
		payrollService.Options{
			Rules:       payroll.DefaultRules(),
			Departments: []string{"Engineering"},
			Logger:      logger,
		},
	)

	jobs := NewPayrollJobs(svc, logger, time.Minute, time.Hour, 72*time.Hour)
	return svc, jobs
}

func TestProcessApprovedEntriesSettlesApproved(t *testing.T) {
	svc, jobs := newJobsEnv(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, payroll.CreateEntryRequest{
		EmployeeID: "emp-1",
		Month:      "December",
		Year:       2024,
		PayDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, payroll.ApproveRequest{EntryID: entry.ID, ApprovedBy: "manager"})
	require.NoError(t, err)

	require.NoError(t, jobs.ProcessApprovedEntries(ctx))

	settled, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, settled.Status)
	require.NotNil(t, settled.ProcessedBy)
	assert.Equal(t, systemProcessor, *settled.ProcessedBy)
}

func TestProcessApprovedEntriesSkipsPending(t *testing.T) {
	svc, jobs := newJobsEnv(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, payroll.CreateEntryRequest{
		EmployeeID: "emp-1",
		Month:      "December",
		Year:       2024,
		PayDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, jobs.ProcessApprovedEntries(ctx))

	unchanged, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPending, unchanged.Status)
}

func TestSchedulerRunOnceDrivesRegisteredJobs(t *testing.T) {
	svc, jobs := newJobsEnv(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, payroll.CreateEntryRequest{
		EmployeeID: "emp-1",
		Month:      "December",
		Year:       2024,
		PayDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, payroll.ApproveRequest{EntryID: entry.ID, ApprovedBy: "manager"})
	require.NoError(t, err)

	scheduler := NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(ctx)

	settled, err := svc.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, settled.Status)
}

func TestSendDeadlineReminders(t *testing.T) {
	svc, jobs := newJobsEnv(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, payroll.CreateEntryRequest{
		EmployeeID: "emp-1",
		Month:      "December",
		Year:       2024,
		PayDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	assert.NoError(t, jobs.SendDeadlineReminders(ctx))
}
