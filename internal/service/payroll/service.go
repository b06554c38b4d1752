package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/strive-hr/payroll-engine/internal/domain/employee"
	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
	"github.com/strive-hr/payroll-engine/internal/pkg/validator"
)

// Options holds payroll service configuration
type Options struct {
	Rules          payroll.Rules
	Departments    []string      // closed list used for breakdown reports
	PaymentTimeout time.Duration // default: 30 seconds
	ProcessLimit   int           // max concurrent gateway calls, default: 4
	Logger         *slog.Logger
}

type PayrollServiceImpl struct {
	repo      payroll.PayrollRepository
	employees employee.EmployeeProvider
	gateway   payroll.PaymentGateway
	notifier  payroll.Notifier
	opts      Options
	logger    *slog.Logger

	// Per-entry locks serialize writers targeting the same entry; writers
	// on different entries proceed independently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPayrollService(
	repo payroll.PayrollRepository,
	employees employee.EmployeeProvider,
	gateway payroll.PaymentGateway,
	notifier payroll.Notifier,
	opts Options,
) payroll.PayrollService {
	if opts.PaymentTimeout == 0 {
		opts.PaymentTimeout = 30 * time.Second
	}
	if opts.ProcessLimit == 0 {
		opts.ProcessLimit = 4
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if notifier == nil {
		notifier = payroll.NopNotifier{}
	}

	return &PayrollServiceImpl{
		repo:      repo,
		employees: employees,
		gateway:   gateway,
		notifier:  notifier,
		opts:      opts,
		logger:    opts.Logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *PayrollServiceImpl) entryLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// ========== ENTRIES ==========

func (s *PayrollServiceImpl) CreateEntry(ctx context.Context, req payroll.CreateEntryRequest) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}

	// One entry per (employee, month, year).
	_, err = s.repo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
	switch {
	case err == nil:
		return payroll.PayrollEntry{}, payroll.ErrDuplicatePeriod
	case !errors.Is(err, payroll.ErrEntryNotFound):
		return payroll.PayrollEntry{}, err
	}

	baseSalary := emp.BaseSalary
	if req.BaseSalary != nil {
		baseSalary = *req.BaseSalary
	}

	now := time.Now()
	entry := payroll.PayrollEntry{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Department:   emp.Department,
		Position:     emp.Position,
		Month:        req.Month,
		Year:         req.Year,
		BaseSalary:   baseSalary,
		Bonuses:      req.Bonuses,
		Deductions:   req.Deductions,
		Status:       payroll.StatusPending,
		PayDate:      req.PayDate,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	assignLineItemIDs(&entry)
	entry = Recalculate(entry)

	if err := s.validateEntry(entry); err != nil {
		return payroll.PayrollEntry{}, err
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}

	s.logger.InfoContext(ctx, "payroll entry created",
		slog.String("entry_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.String("period", created.Month+" "+strconv.Itoa(created.Year)),
	)
	s.emit(ctx, payroll.EventApprovalRequired, created, nil)
	return created, nil
}

func (s *PayrollServiceImpl) GetEntry(ctx context.Context, id string) (payroll.PayrollEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PayrollServiceImpl) ListEntries(ctx context.Context, criteria payroll.FilterCriteria, field payroll.SortField, dir payroll.SortDirection) ([]payroll.PayrollEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Sort(Filter(entries, criteria), field, dir), nil
}

func (s *PayrollServiceImpl) UpdateEntry(ctx context.Context, req payroll.UpdateEntryRequest) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}

	lock := s.entryLock(req.ID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	if !entry.CanEdit() {
		return payroll.PayrollEntry{}, payroll.ErrCannotEditEntry
	}

	// Merge only the fields the command names; nil leaves a field alone.
	if req.BaseSalary != nil {
		entry.BaseSalary = *req.BaseSalary
	}
	if req.Bonuses != nil {
		entry.Bonuses = req.Bonuses
	}
	if req.Deductions != nil {
		entry.Deductions = req.Deductions
	}
	if req.Position != nil {
		entry.Position = req.Position
	}
	if req.PayDate != nil {
		entry.PayDate = *req.PayDate
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}
	assignLineItemIDs(&entry)
	entry = Recalculate(entry)

	// The merged draft is re-validated in full before anything is written.
	if err := s.validateEntry(entry); err != nil {
		return payroll.PayrollEntry{}, err
	}

	entry.UpdatedAt = time.Now()
	return s.repo.Update(ctx, entry)
}

func (s *PayrollServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	lock := s.entryLock(id)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !entry.CanDelete() {
		return payroll.ErrCannotDeletePaidEntry
	}
	return s.repo.Delete(ctx, id)
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.ApproveRequest) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}

	lock := s.entryLock(req.EntryID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, req.EntryID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	if entry.Status != payroll.StatusPending {
		return payroll.PayrollEntry{}, payroll.NewTransitionError("approve", entry.Status)
	}

	now := time.Now()
	entry.Status = payroll.StatusProcessing
	entry.ApprovedBy = &req.ApprovedBy
	entry.ApprovedAt = &now
	entry.UpdatedAt = now

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	s.logger.InfoContext(ctx, "payroll entry approved",
		slog.String("entry_id", updated.ID),
		slog.String("approved_by", req.ApprovedBy),
	)
	return updated, nil
}

func (s *PayrollServiceImpl) ProcessPayment(ctx context.Context, req payroll.ProcessPaymentRequest) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}

	// Holding the entry lock across the gateway call serializes concurrent
	// ProcessPayment and Approve attempts on the same entry; the status is
	// re-read under the lock so the commit is atomic.
	lock := s.entryLock(req.EntryID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, req.EntryID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	if entry.Status != payroll.StatusProcessing {
		return payroll.PayrollEntry{}, payroll.NewTransitionError("process payment", entry.Status)
	}

	chargeErr := s.charge(ctx, entry)
	now := time.Now()
	if chargeErr != nil {
		reason := chargeErr.Error()
		if errors.Is(chargeErr, context.DeadlineExceeded) {
			reason = "payment timed out after " + s.opts.PaymentTimeout.String()
		}
		entry.Status = payroll.StatusFailed
		appendNote(&entry, "payment failed: "+reason)
		entry.UpdatedAt = now

		updated, err := s.repo.Update(ctx, entry)
		if err != nil {
			return payroll.PayrollEntry{}, err
		}
		s.logger.WarnContext(ctx, "payment failed",
			slog.String("entry_id", updated.ID),
			slog.String("reason", reason),
		)
		s.emit(ctx, payroll.EventPaymentFailed, updated, map[string]string{"reason": reason})
		return updated, fmt.Errorf("%w: %s", payroll.ErrPaymentFailed, reason)
	}

	entry.Status = payroll.StatusPaid
	entry.ProcessedBy = &req.ProcessedBy
	entry.ProcessedAt = &now
	entry.PayslipGenerated = true
	entry.UpdatedAt = now

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	s.logger.InfoContext(ctx, "payroll entry paid",
		slog.String("entry_id", updated.ID),
		slog.String("processed_by", req.ProcessedBy),
	)
	s.emit(ctx, payroll.EventPayrollProcessed, updated, nil)
	return updated, nil
}

// charge runs the gateway call as a cancellable, timeout-bounded task.
func (s *PayrollServiceImpl) charge(ctx context.Context, entry payroll.PayrollEntry) error {
	cctx, cancel := context.WithTimeout(ctx, s.opts.PaymentTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.gateway.Charge(cctx, entry)
	}()

	select {
	case err := <-done:
		return err
	case <-cctx.Done():
		return cctx.Err()
	}
}

// ProcessApproved settles every Processing entry through the gateway with
// bounded concurrency. A failed payment marks its own entry Failed without
// aborting the rest of the batch.
func (s *PayrollServiceImpl) ProcessApproved(ctx context.Context, processedBy string) ([]payroll.PayrollEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.Status == payroll.StatusProcessing {
			ids = append(ids, entry.ID)
		}
	}

	slots := make([]payroll.PayrollEntry, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.ProcessLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			updated, err := s.ProcessPayment(gctx, payroll.ProcessPaymentRequest{
				EntryID:     id,
				ProcessedBy: processedBy,
			})
			if err != nil {
				// A declined payment marks its entry Failed; an entry
				// another writer already moved is skipped.
				var transition *payroll.TransitionError
				if errors.Is(err, payroll.ErrPaymentFailed) || errors.As(err, &transition) {
					slots[i] = updated
					return nil
				}
				return err
			}
			slots[i] = updated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]payroll.PayrollEntry, 0, len(slots))
	for _, entry := range slots {
		if entry.ID != "" {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, entryID string) (payroll.PayrollEntry, error) {
	lock := s.entryLock(entryID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	if entry.PayslipGenerated {
		// Regenerating an existing payslip changes nothing on the entry.
		s.emit(ctx, payroll.EventPayslipGenerated, entry, nil)
		return entry, nil
	}

	entry.PayslipGenerated = true
	entry.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	s.emit(ctx, payroll.EventPayslipGenerated, updated, nil)
	return updated, nil
}

func (s *PayrollServiceImpl) Hold(ctx context.Context, req payroll.StatusChangeRequest) (payroll.PayrollEntry, error) {
	return s.sideTransition(ctx, req, "hold", payroll.StatusOnHold,
		payroll.StatusPending, payroll.StatusProcessing)
}

func (s *PayrollServiceImpl) Resume(ctx context.Context, req payroll.StatusChangeRequest) (payroll.PayrollEntry, error) {
	return s.sideTransition(ctx, req, "resume", payroll.StatusPending,
		payroll.StatusOnHold)
}

func (s *PayrollServiceImpl) Cancel(ctx context.Context, req payroll.StatusChangeRequest) (payroll.PayrollEntry, error) {
	return s.sideTransition(ctx, req, "cancel", payroll.StatusCancelled,
		payroll.StatusPending, payroll.StatusProcessing, payroll.StatusOnHold)
}

// sideTransition applies an operator-triggered status change. These are
// recorded, not derived: the engine only checks the source status is legal.
func (s *PayrollServiceImpl) sideTransition(ctx context.Context, req payroll.StatusChangeRequest, op string, target payroll.PayrollStatus, from ...payroll.PayrollStatus) (payroll.PayrollEntry, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollEntry{}, err
	}

	lock := s.entryLock(req.EntryID)
	lock.Lock()
	defer lock.Unlock()

	entry, err := s.repo.GetByID(ctx, req.EntryID)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}

	legal := false
	for _, status := range from {
		if entry.Status == status {
			legal = true
			break
		}
	}
	if !legal {
		return payroll.PayrollEntry{}, payroll.NewTransitionError(op, entry.Status)
	}

	entry.Status = target
	if req.Reason != nil {
		appendNote(&entry, *req.Reason)
	}
	entry.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, entry)
	if err != nil {
		return payroll.PayrollEntry{}, err
	}
	s.logger.InfoContext(ctx, "payroll entry status changed",
		slog.String("entry_id", updated.ID),
		slog.String("operation", op),
		slog.String("status", string(updated.Status)),
		slog.String("changed_by", req.ChangedBy),
	)
	return updated, nil
}

// ========== REPORTING ==========

func (s *PayrollServiceImpl) BuildSummary(ctx context.Context, criteria payroll.FilterCriteria) (payroll.Summary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return payroll.Summary{}, err
	}
	return BuildSummary(Filter(entries, criteria), s.opts.Departments), nil
}

// DeadlineReminders raises a reminder event for every unpaid entry whose
// pay date falls within the given window, and returns the raised events.
func (s *PayrollServiceImpl) DeadlineReminders(ctx context.Context, within time.Duration) ([]payroll.Event, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cutoff := now.Add(within)
	var events []payroll.Event
	for _, entry := range entries {
		switch entry.Status {
		case payroll.StatusPending, payroll.StatusProcessing, payroll.StatusOnHold:
		default:
			continue
		}
		if entry.PayDate.Before(now) || entry.PayDate.After(cutoff) {
			continue
		}
		event := s.emit(ctx, payroll.EventDeadlineReminder, entry, map[string]string{
			"pay_date": entry.PayDate.Format("2006-01-02"),
		})
		events = append(events, event)
	}
	return events, nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) validateEntry(entry payroll.PayrollEntry) error {
	var errs validator.ValidationErrors

	if err := ValidateEntry(entry, s.opts.Rules); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			errs = append(errs, ve...)
		} else {
			return err
		}
	}
	for i, bonus := range entry.Bonuses {
		errs = append(errs, prefixed(ValidateBonus(bonus, s.opts.Rules), "bonuses", i)...)
	}
	for i, deduction := range entry.Deductions {
		errs = append(errs, prefixed(ValidateDeduction(deduction, s.opts.Rules), "deductions", i)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func prefixed(err error, field string, index int) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return validator.ValidationErrors{{Field: field, Message: err.Error()}}
	}
	out := make(validator.ValidationErrors, 0, len(ve))
	for _, item := range ve {
		out = append(out, validator.ValidationError{
			Field:   fmt.Sprintf("%s[%d].%s", field, index, item.Field),
			Message: item.Message,
		})
	}
	return out
}

func (s *PayrollServiceImpl) emit(ctx context.Context, eventType payroll.EventType, entry payroll.PayrollEntry, fields map[string]string) payroll.Event {
	event := payroll.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		EntryID:      entry.ID,
		EmployeeName: entry.EmployeeName,
		Month:        entry.Month,
		Year:         entry.Year,
		Fields:       fields,
		OccurredAt:   time.Now(),
	}
	s.notifier.Notify(ctx, event)
	return event
}

func assignLineItemIDs(entry *payroll.PayrollEntry) {
	for i := range entry.Bonuses {
		if entry.Bonuses[i].ID == "" {
			entry.Bonuses[i].ID = uuid.NewString()
		}
	}
	for i := range entry.Deductions {
		if entry.Deductions[i].ID == "" {
			entry.Deductions[i].ID = uuid.NewString()
		}
	}
}

func appendNote(entry *payroll.PayrollEntry, note string) {
	if entry.Notes == nil || *entry.Notes == "" {
		entry.Notes = &note
		return
	}
	combined := *entry.Notes + "\n" + note
	entry.Notes = &combined
}
