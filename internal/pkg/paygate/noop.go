package paygate

import (
	"context"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// Noop approves every charge without contacting a provider. Used when no
// gateway credentials are configured.
type Noop struct{}

func (Noop) Charge(_ context.Context, _ payroll.PayrollEntry) error {
	return nil
}
