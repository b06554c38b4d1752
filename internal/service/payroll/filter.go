package payroll

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

// Filter returns the entries matching every active criterion. Inactive
// criteria ("all", empty, nil bounds) constrain nothing, so an empty
// criteria set returns the input unchanged, order preserved.
func Filter(entries []payroll.PayrollEntry, criteria payroll.FilterCriteria) []payroll.PayrollEntry {
	out := make([]payroll.PayrollEntry, 0, len(entries))
	for _, entry := range entries {
		if matches(entry, criteria) {
			out = append(out, entry)
		}
	}
	return out
}

func matches(entry payroll.PayrollEntry, c payroll.FilterCriteria) bool {
	if !matchesSearch(entry, c.Search) {
		return false
	}
	if active(c.Month) && entry.Month != c.Month {
		return false
	}
	if active(c.Year) && strconv.Itoa(entry.Year) != c.Year {
		return false
	}
	if active(c.Department) && entry.Department != c.Department {
		return false
	}
	if active(c.Status) && string(entry.Status) != c.Status {
		return false
	}
	if c.MinNetSalary != nil && entry.NetSalary.LessThan(*c.MinNetSalary) {
		return false
	}
	if c.MaxNetSalary != nil && entry.NetSalary.GreaterThan(*c.MaxNetSalary) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match against employee
// name, department and notes; the entry matches when any field contains
// the term.
func matchesSearch(entry payroll.PayrollEntry, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(entry.EmployeeName), term) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Department), term) {
		return true
	}
	if entry.Notes != nil && strings.Contains(strings.ToLower(*entry.Notes), term) {
		return true
	}
	return false
}

func active(value string) bool {
	return value != "" && value != payroll.FilterAll
}

// Sort returns a stably sorted copy of the entries. String fields compare
// through a locale-aware collator, numeric fields by value; desc flips the
// comparator. Ties keep their original relative order.
func Sort(entries []payroll.PayrollEntry, field payroll.SortField, direction payroll.SortDirection) []payroll.PayrollEntry {
	out := make([]payroll.PayrollEntry, len(entries))
	copy(out, entries)

	cmp := comparator(field)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if direction == payroll.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(field payroll.SortField) func(a, b payroll.PayrollEntry) int {
	switch field {
	case payroll.SortByDepartment:
		coll := collate.New(language.English, collate.IgnoreCase)
		return func(a, b payroll.PayrollEntry) int {
			return coll.CompareString(a.Department, b.Department)
		}
	case payroll.SortByBaseSalary:
		return func(a, b payroll.PayrollEntry) int {
			return a.BaseSalary.Cmp(b.BaseSalary)
		}
	case payroll.SortByGrossSalary:
		return func(a, b payroll.PayrollEntry) int {
			return a.GrossSalary.Cmp(b.GrossSalary)
		}
	case payroll.SortByNetSalary:
		return func(a, b payroll.PayrollEntry) int {
			return a.NetSalary.Cmp(b.NetSalary)
		}
	case payroll.SortByStatus:
		coll := collate.New(language.English, collate.IgnoreCase)
		return func(a, b payroll.PayrollEntry) int {
			return coll.CompareString(string(a.Status), string(b.Status))
		}
	case payroll.SortByPayDate:
		return func(a, b payroll.PayrollEntry) int {
			return a.PayDate.Compare(b.PayDate)
		}
	default:
		coll := collate.New(language.English, collate.IgnoreCase)
		return func(a, b payroll.PayrollEntry) int {
			return coll.CompareString(a.EmployeeName, b.EmployeeName)
		}
	}
}
