package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

type Config struct {
	App     AppConfig
	Payroll PayrollConfig
	Gateway GatewayConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll policy supplied to the engine: validation
// rules, the closed department list used for breakdowns, tax estimate rates
// and the payment gateway timeout.
type PayrollConfig struct {
	Rules          payroll.Rules
	Departments    []string
	TaxRates       payroll.TaxRateTable
	PaymentTimeout time.Duration

	// Background job cadence. ReminderWindow is how far ahead of a pay
	// date the deadline reminder fires.
	ProcessInterval  time.Duration
	ReminderInterval time.Duration
	ReminderWindow   time.Duration
}

// GatewayConfig holds the Xendit payment gateway credentials. A blank API
// key disables the live gateway and callers fall back to a no-op charge.
type GatewayConfig struct {
	XenditAPIKey string
	Environment  string
	Currency     string
}

// DefaultDepartments is the department enumeration used when DEPARTMENTS
// is not configured. Breakdown reports always cover this full list.
var DefaultDepartments = []string{
	"Engineering", "Design", "Marketing", "Sales", "HR", "Finance", "Operations",
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	rules := payroll.DefaultRules()

	maxBase, err := getEnvDecimal("PAYROLL_MAX_BASE_SALARY", rules.MaxBaseSalary)
	if err != nil {
		return nil, err
	}
	rules.MaxBaseSalary = maxBase

	maxBonus, err := getEnvDecimal("PAYROLL_MAX_BONUS_AMOUNT", rules.MaxBonusAmount)
	if err != nil {
		return nil, err
	}
	rules.MaxBonusAmount = maxBonus

	maxPct, err := getEnvDecimal("PAYROLL_MAX_DEDUCTION_PERCENTAGE", rules.MaxDeductionPercentage)
	if err != nil {
		return nil, err
	}
	rules.MaxDeductionPercentage = maxPct

	rules.MinYear, err = getEnvInt("PAYROLL_MIN_YEAR", rules.MinYear)
	if err != nil {
		return nil, err
	}
	rules.MaxBonusCount, err = getEnvInt("PAYROLL_MAX_BONUS_COUNT", rules.MaxBonusCount)
	if err != nil {
		return nil, err
	}
	rules.MaxDeductionCount, err = getEnvInt("PAYROLL_MAX_DEDUCTION_COUNT", rules.MaxDeductionCount)
	if err != nil {
		return nil, err
	}
	rules.MinDescriptionLength, err = getEnvInt("PAYROLL_MIN_DESCRIPTION_LENGTH", rules.MinDescriptionLength)
	if err != nil {
		return nil, err
	}
	rules.MaxDescriptionLength, err = getEnvInt("PAYROLL_MAX_DESCRIPTION_LENGTH", rules.MaxDescriptionLength)
	if err != nil {
		return nil, err
	}

	taxRates := payroll.DefaultTaxRates()
	taxRates.Federal, err = getEnvDecimal("TAX_RATE_FEDERAL", taxRates.Federal)
	if err != nil {
		return nil, err
	}
	taxRates.State, err = getEnvDecimal("TAX_RATE_STATE", taxRates.State)
	if err != nil {
		return nil, err
	}
	taxRates.SocialSecurity, err = getEnvDecimal("TAX_RATE_SOCIAL_SECURITY", taxRates.SocialSecurity)
	if err != nil {
		return nil, err
	}
	taxRates.Medicare, err = getEnvDecimal("TAX_RATE_MEDICARE", taxRates.Medicare)
	if err != nil {
		return nil, err
	}
	taxRates.Unemployment, err = getEnvDecimal("TAX_RATE_UNEMPLOYMENT", taxRates.Unemployment)
	if err != nil {
		return nil, err
	}

	timeoutSeconds, err := getEnvInt("PAYMENT_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	processMinutes, err := getEnvInt("PAYROLL_PROCESS_INTERVAL_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	reminderHours, err := getEnvInt("PAYROLL_REMINDER_INTERVAL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	reminderWindowHours, err := getEnvInt("PAYROLL_REMINDER_WINDOW_HOURS", 72)
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		Rules:            rules,
		Departments:      getEnvList("DEPARTMENTS", DefaultDepartments),
		TaxRates:         taxRates,
		PaymentTimeout:   time.Duration(timeoutSeconds) * time.Second,
		ProcessInterval:  time.Duration(processMinutes) * time.Minute,
		ReminderInterval: time.Duration(reminderHours) * time.Hour,
		ReminderWindow:   time.Duration(reminderWindowHours) * time.Hour,
	}

	config.Gateway = GatewayConfig{
		XenditAPIKey: getEnv("XENDIT_API_KEY", ""),
		Environment:  getEnv("XENDIT_ENVIRONMENT", "sandbox"),
		Currency:     getEnv("PAYROLL_CURRENCY", "USD"),
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
