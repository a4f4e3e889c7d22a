package reports

import (
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
)

// Donations income 500 and Rent expense 200 must reconcile as credit 500 /
// debit 200 with a difference of 300.
func TestComputeTrialBalance_Reconciliation(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 500, date: day(1)},
		{id: 2, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 200, date: day(2)},
	})

	report := ComputeTrialBalance(items)

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if !report.Totals.TotalCredit.Equal(dec(500)) {
		t.Errorf("total credit: expected 500, got %s", report.Totals.TotalCredit)
	}
	if !report.Totals.TotalDebit.Equal(dec(200)) {
		t.Errorf("total debit: expected 200, got %s", report.Totals.TotalDebit)
	}
	if !report.Totals.Difference.Equal(dec(300)) {
		t.Errorf("difference: expected 300, got %s", report.Totals.Difference)
	}
}

func TestComputeTrialBalance_EqualSidesNetToZero(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 250, date: day(1)},
		{id: 2, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 250, date: day(1)},
	})
	report := ComputeTrialBalance(items)
	if !report.Totals.Difference.IsZero() {
		t.Errorf("expected zero difference, got %s", report.Totals.Difference)
	}
}

func TestComputeTrialBalance_RowSortAndCounts(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 3, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 100, date: day(1)},
		{id: 2, ledgerId: 1, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 50, date: day(1)},
		{id: 3, ledgerId: 2, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 75, date: day(2)},
		{id: 4, ledgerId: 3, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 40, date: day(3)},
	})
	report := ComputeTrialBalance(items)

	// Sorted by (type, name): expense before income, then alphabetical.
	wantNames := []string{"Rent", "Donations", "Zakat"}
	for i, want := range wantNames {
		if report.Rows[i].LedgerName != want {
			t.Fatalf("row %d: expected %q, got %q", i, want, report.Rows[i].LedgerName)
		}
	}
	if report.Rows[0].EntryCount != 2 {
		t.Errorf("Rent entry count: expected 2, got %d", report.Rows[0].EntryCount)
	}
	if !report.Rows[0].Debit.Equal(dec(140)) {
		t.Errorf("Rent debit: expected 140, got %s", report.Rows[0].Debit)
	}
	if !report.Rows[0].Credit.IsZero() {
		t.Errorf("Rent credit: expected 0, got %s", report.Rows[0].Credit)
	}
}
