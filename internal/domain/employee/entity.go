package employee

import (
	"github.com/shopspring/decimal"
)

// Employee is the read-only snapshot supplied by the employee directory.
// It pre-populates new payroll entries; the payroll engine never writes it.
type Employee struct {
	ID         string
	Name       string
	Department string
	Position   *string
	BaseSalary decimal.Decimal
}
