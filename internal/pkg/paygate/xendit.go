package paygate

import (
	"context"
	"fmt"

	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/invoice"

	"github.com/strive-hr/payroll-engine/internal/config"
	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// XenditGateway settles approved payroll entries through the official
// Xendit SDK. It implements payroll.PaymentGateway by creating a
// settlement invoice for the entry's net amount.
type XenditGateway struct {
	invoiceAPI  invoice.InvoiceApi
	currency    string
	environment string
}

// NewXenditGateway creates a gateway using the official SDK.
func NewXenditGateway(cfg config.GatewayConfig) *XenditGateway {
	sdk := xenditSDK.NewClient(cfg.XenditAPIKey)

	return &XenditGateway{
		invoiceAPI:  sdk.InvoiceApi,
		currency:    cfg.Currency,
		environment: cfg.Environment,
	}
}

// settlementDuration bounds how long a settlement invoice stays payable,
// in seconds.
const settlementDuration = 24 * 60 * 60

// Invoice status as reported by the Xendit API.
const (
	statusPending = "PENDING"
	statusPaid    = "PAID"
	statusSettled = "SETTLED"
	statusExpired = "EXPIRED"
)

// Charge creates a settlement invoice for the entry's net salary. The
// external ID embeds the entry ID so retries after a transient failure
// land on the same invoice on the Xendit side.
func (g *XenditGateway) Charge(ctx context.Context, entry payroll.PayrollEntry) error {
	// Convert decimal to float64 for SDK
	amount, _ := entry.NetSalary.Float64()

	sdkReq := *invoice.NewCreateInvoiceRequest(settlementExternalID(entry), amount)
	sdkReq.SetDescription(fmt.Sprintf("Salary %s %d for %s", entry.Month, entry.Year, entry.EmployeeName))
	sdkReq.SetCurrency(g.currency)
	sdkReq.SetInvoiceDuration(float32(settlementDuration))
	sdkReq.SetMetadata(map[string]interface{}{
		"entry_id":    entry.ID,
		"employee_id": entry.EmployeeID,
		"department":  entry.Department,
	})

	resp, _, err := g.invoiceAPI.CreateInvoice(ctx).
		CreateInvoiceRequest(sdkReq).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create settlement invoice: %w", err)
	}

	if status := string(resp.GetStatus()); status == statusExpired {
		return fmt.Errorf("settlement invoice %s expired before payment", resp.GetId())
	}

	return nil
}

// IsSandbox returns true if running in sandbox mode
func (g *XenditGateway) IsSandbox() bool {
	return g.environment == "sandbox"
}

func settlementExternalID(entry payroll.PayrollEntry) string {
	return fmt.Sprintf("payroll-%s", entry.ID)
}
