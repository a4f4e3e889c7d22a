package reports

import (
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
)

func TestComputeDayBook_OrdersAndTotals(t *testing.T) {
	items := buildItems([]testItem{
		{id: 3, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 500, date: day(2)},
		{id: 1, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 200, date: day(1)},
		{id: 2, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 100, date: day(2)},
	})

	report := ComputeDayBook(items)

	if report.Totals.TotalEntries != 3 {
		t.Fatalf("expected 3 entries, got %d", report.Totals.TotalEntries)
	}
	// Chronological, id as tiebreaker.
	wantOrder := []int{1, 2, 3}
	for i, want := range wantOrder {
		if report.Entries[i].ID != want {
			t.Fatalf("entry %d: expected id %d, got %d", i, want, report.Entries[i].ID)
		}
	}
	if !report.Totals.TotalIncome.Equal(dec(600)) {
		t.Errorf("total income: expected 600, got %s", report.Totals.TotalIncome)
	}
	if !report.Totals.TotalExpense.Equal(dec(200)) {
		t.Errorf("total expense: expected 200, got %s", report.Totals.TotalExpense)
	}
	if !report.Totals.NetBalance.Equal(dec(400)) {
		t.Errorf("net balance: expected 400, got %s", report.Totals.NetBalance)
	}
}

func TestComputeDayBook_Empty(t *testing.T) {
	report := ComputeDayBook(nil)
	if report.Totals.TotalEntries != 0 {
		t.Fatalf("expected 0 entries, got %d", report.Totals.TotalEntries)
	}
	if !report.Totals.NetBalance.IsZero() {
		t.Errorf("expected zero net balance, got %s", report.Totals.NetBalance)
	}
	if len(report.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(report.Entries))
	}
}

func TestComputeDayBook_CarriesLedgerName(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 7, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 50, date: day(5)},
	})
	report := ComputeDayBook(items)
	if report.Entries[0].LedgerName != "Zakat" {
		t.Errorf("expected ledger name Zakat, got %q", report.Entries[0].LedgerName)
	}
}
