package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

const systemProcessor = "payroll-engine"

// PayrollJobs drives the background half of the payroll lifecycle: batch
// settlement of approved entries and pay date reminders.
type PayrollJobs struct {
	payrollSvc       payroll.PayrollService
	logger           *slog.Logger
	processInterval  time.Duration
	reminderInterval time.Duration
	reminderWindow   time.Duration
}

func NewPayrollJobs(
	payrollSvc payroll.PayrollService,
	logger *slog.Logger,
	processInterval time.Duration,
	reminderInterval time.Duration,
	reminderWindow time.Duration,
) *PayrollJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollJobs{
		payrollSvc:       payrollSvc,
		logger:           logger,
		processInterval:  processInterval,
		reminderInterval: reminderInterval,
		reminderWindow:   reminderWindow,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("process_approved_entries", j.processInterval, j.ProcessApprovedEntries)
	scheduler.AddJob("payment_deadline_reminders", j.reminderInterval, j.SendDeadlineReminders)
}

// ProcessApprovedEntries settles every entry currently in processing
// status. Per-entry payment failures are recorded on the entries
// themselves and do not fail the job.
func (j *PayrollJobs) ProcessApprovedEntries(ctx context.Context) error {
	entries, err := j.payrollSvc.ProcessApproved(ctx, systemProcessor)
	if err != nil {
		return fmt.Errorf("failed to process approved entries: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	paid := 0
	for _, entry := range entries {
		if entry.Status == payroll.StatusPaid {
			paid++
		}
	}
	j.logger.Info("Cron: Processed approved payroll entries",
		"count", len(entries),
		"paid", paid,
		"failed", len(entries)-paid)
	return nil
}

// SendDeadlineReminders emits a reminder event for every unpaid entry
// whose pay date falls inside the reminder window.
func (j *PayrollJobs) SendDeadlineReminders(ctx context.Context) error {
	events, err := j.payrollSvc.DeadlineReminders(ctx, j.reminderWindow)
	if err != nil {
		return fmt.Errorf("failed to collect deadline reminders: %w", err)
	}

	if len(events) > 0 {
		j.logger.Info("Cron: Sent payment deadline reminders", "count", len(events))
	}
	return nil
}
