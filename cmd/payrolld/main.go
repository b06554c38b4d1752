package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/strive-hr/payroll-engine/internal/config"
	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
	"github.com/strive-hr/payroll-engine/internal/pkg/cron"
	"github.com/strive-hr/payroll-engine/internal/pkg/paygate"
	"github.com/strive-hr/payroll-engine/internal/repository/memory"
	payrollService "github.com/strive-hr/payroll-engine/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := newLogger(cfg.App.LogLevel)
	slog.SetDefault(logger)

	payrollRepo := memory.NewPayrollRepository()
	employeeProvider := memory.NewEmployeeProvider()

	var gateway payroll.PaymentGateway
	if cfg.Gateway.XenditAPIKey != "" {
		xendit := paygate.NewXenditGateway(cfg.Gateway)
		logger.Info("Payment gateway configured", "provider", "xendit", "sandbox", xendit.IsSandbox())
		gateway = xendit
	} else {
		logger.Warn("No gateway credentials configured, charges will be auto-approved")
		gateway = paygate.Noop{}
	}

	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeProvider,
		gateway,
		eventLogger{logger: logger},
		payrollService.Options{
			Rules:          cfg.Payroll.Rules,
			Departments:    cfg.Payroll.Departments,
			PaymentTimeout: cfg.Payroll.PaymentTimeout,
			Logger:         logger,
		},
	)

	scheduler := cron.NewScheduler(logger)
	payrollJobs := cron.NewPayrollJobs(
		payrollSvc,
		logger,
		cfg.Payroll.ProcessInterval,
		cfg.Payroll.ReminderInterval,
		cfg.Payroll.ReminderWindow,
	)
	payrollJobs.RegisterJobs(scheduler)
	scheduler.Start()

	logger.Info("Payroll engine running", "env", cfg.App.Env)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	scheduler.Stop()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// eventLogger forwards payroll events to the structured log. Stands in for
// a real notification channel.
type eventLogger struct {
	logger *slog.Logger
}

func (l eventLogger) Notify(ctx context.Context, event payroll.Event) {
	l.logger.InfoContext(ctx, "Payroll event",
		"type", event.Type,
		"entry_id", event.EntryID,
		"employee", event.EmployeeName,
		"period", fmt.Sprintf("%s %d", event.Month, event.Year),
	)
}
