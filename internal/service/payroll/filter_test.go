package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/strive-hr/payroll-engine/internal/domain/payroll"
)

func sampleEntries(t *testing.T) []payroll.PayrollEntry {
	t.Helper()
	notes := "relocation package pending"
	entries := []payroll.PayrollEntry{
		{
			ID: "e1", EmployeeID: "emp-1", EmployeeName: "Alice Chen", Department: "Engineering",
			Month: "December", Year: 2024, BaseSalary: dec(t, "7000"),
			Status: payroll.StatusPending, PayDate: time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "e2", EmployeeID: "emp-2", EmployeeName: "Bruno Martins", Department: "Engineering",
			Month: "December", Year: 2024, BaseSalary: dec(t, "9000"),
			Status: payroll.StatusProcessing, PayDate: time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "e3", EmployeeID: "emp-3", EmployeeName: "Carla Diaz", Department: "Design",
			Month: "December", Year: 2024, BaseSalary: dec(t, "6000"), Notes: &notes,
			Status: payroll.StatusPaid, PayDate: time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "e4", EmployeeID: "emp-1", EmployeeName: "Alice Chen", Department: "Engineering",
			Month: "November", Year: 2024, BaseSalary: dec(t, "7000"),
			Status: payroll.StatusPaid, PayDate: time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range entries {
		entries[i] = Recalculate(entries[i])
	}
	return entries
}

func TestFilterNoConstraints(t *testing.T) {
	entries := sampleEntries(t)
	zero := decimal.Zero

	criteria := payroll.FilterCriteria{
		Search: "", Month: payroll.FilterAll, Year: payroll.FilterAll,
		Department: payroll.FilterAll, Status: payroll.FilterAll,
		MinNetSalary: &zero,
	}
	got := Filter(entries, criteria)
	if len(got) != len(entries) {
		t.Fatalf("Filter() returned %d entries, want %d", len(got), len(entries))
	}
	for i := range got {
		if got[i].ID != entries[i].ID {
			t.Fatalf("Filter() reordered entries: got %s at %d, want %s", got[i].ID, i, entries[i].ID)
		}
	}
}

func TestFilterByDepartmentAndPeriod(t *testing.T) {
	entries := sampleEntries(t)

	got := Filter(entries, payroll.FilterCriteria{
		Department: "Engineering",
		Month:      "December",
		Year:       "2024",
	})
	if len(got) != 2 {
		t.Fatalf("Filter() returned %d entries, want 2", len(got))
	}

	total := decimal.Zero
	for _, entry := range got {
		if entry.Department != "Engineering" {
			t.Errorf("unexpected department %q", entry.Department)
		}
		total = total.Add(entry.NetSalary)
	}
	if !total.Equal(dec(t, "16000")) {
		t.Errorf("total net over filtered entries = %s, want 16000", total)
	}
}

func TestFilterBySearch(t *testing.T) {
	entries := sampleEntries(t)

	cases := []struct {
		term string
		want []string
	}{
		{"alice", []string{"e1", "e4"}},
		{"ENGINEERING", []string{"e1", "e2", "e4"}},
		{"relocation", []string{"e3"}},
		{"nobody", nil},
	}
	for _, c := range cases {
		got := Filter(entries, payroll.FilterCriteria{Search: c.term})
		if len(got) != len(c.want) {
			t.Errorf("Filter(search=%q) returned %d entries, want %d", c.term, len(got), len(c.want))
			continue
		}
		for i, entry := range got {
			if entry.ID != c.want[i] {
				t.Errorf("Filter(search=%q)[%d] = %s, want %s", c.term, i, entry.ID, c.want[i])
			}
		}
	}
}

func TestFilterBySalaryRangeInclusive(t *testing.T) {
	entries := sampleEntries(t)
	min := dec(t, "7000")
	max := dec(t, "9000")

	got := Filter(entries, payroll.FilterCriteria{MinNetSalary: &min, MaxNetSalary: &max})
	if len(got) != 3 {
		t.Fatalf("Filter() returned %d entries, want 3 (bounds are inclusive)", len(got))
	}
	for _, entry := range got {
		if entry.NetSalary.LessThan(min) || entry.NetSalary.GreaterThan(max) {
			t.Errorf("entry %s net %s outside [%s, %s]", entry.ID, entry.NetSalary, min, max)
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	entries := sampleEntries(t)

	got := Filter(entries, payroll.FilterCriteria{Status: string(payroll.StatusPaid)})
	if len(got) != 2 {
		t.Fatalf("Filter() returned %d entries, want 2", len(got))
	}
}

func TestSortByNetSalary(t *testing.T) {
	entries := sampleEntries(t)

	asc := Sort(entries, payroll.SortByNetSalary, payroll.SortAsc)
	for i := 1; i < len(asc); i++ {
		if asc[i].NetSalary.LessThan(asc[i-1].NetSalary) {
			t.Fatalf("ascending sort violated at %d: %s < %s", i, asc[i].NetSalary, asc[i-1].NetSalary)
		}
	}

	desc := Sort(entries, payroll.SortByNetSalary, payroll.SortDesc)
	for i := 1; i < len(desc); i++ {
		if desc[i].NetSalary.GreaterThan(desc[i-1].NetSalary) {
			t.Fatalf("descending sort violated at %d", i)
		}
	}

	// The input order is untouched.
	if entries[0].ID != "e1" {
		t.Error("Sort must not mutate its input")
	}
}

func TestSortStability(t *testing.T) {
	entries := sampleEntries(t)

	// Pre-sort by name, then sort by department: entries tied on
	// department must keep their name order.
	byName := Sort(entries, payroll.SortByEmployeeName, payroll.SortAsc)
	byDept := Sort(byName, payroll.SortByDepartment, payroll.SortAsc)

	var engineering []string
	for _, entry := range byDept {
		if entry.Department == "Engineering" {
			engineering = append(engineering, entry.EmployeeName)
		}
	}
	want := []string{"Alice Chen", "Alice Chen", "Bruno Martins"}
	if len(engineering) != len(want) {
		t.Fatalf("got %d engineering entries, want %d", len(engineering), len(want))
	}
	for i := range want {
		if engineering[i] != want[i] {
			t.Fatalf("stability violated: got %v, want %v", engineering, want)
		}
	}
}

func TestSortByEmployeeNameLocaleAware(t *testing.T) {
	entries := []payroll.PayrollEntry{
		{ID: "n1", EmployeeName: "Ødegaard"},
		{ID: "n2", EmployeeName: "Ángel"},
		{ID: "n3", EmployeeName: "Zimmermann"},
		{ID: "n4", EmployeeName: "angela"},
	}

	got := Sort(entries, payroll.SortByEmployeeName, payroll.SortAsc)

	// Collation folds case and treats accented letters as their base
	// letter, unlike byte order which would push them past "Z".
	want := []string{"Ángel", "angela", "Ødegaard", "Zimmermann"}
	for i, entry := range got {
		if entry.EmployeeName != want[i] {
			names := make([]string, len(got))
			for j, e := range got {
				names[j] = e.EmployeeName
			}
			t.Fatalf("locale-aware order = %v, want %v", names, want)
		}
	}
}
