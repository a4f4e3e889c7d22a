package reports

import (
	"reflect"
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
)

func TestComputeConsolidated_MergesTransactionsAndBalances(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 900, date: day(1), institute: 1},
		{id: 2, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 400, date: day(2), institute: 1},
		{id: 3, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 150, date: day(3)},
	})
	accounts := []models.InstituteAccount{
		testAccount(1, 1, "Masjid Main", 3000),
		// Institute 2 has an account but no transactions in the period.
		testAccount(2, 2, "Madrassa Main", 1200),
	}
	names := map[int]string{1: "Masjid", 2: "Madrassa"}

	report := ComputeConsolidated(items, accounts, names)

	if len(report.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report.Rows))
	}
	// Sorted by institute name: Madrassa, Masjid, Unassigned.
	if report.Rows[0].InstituteName != "Madrassa" {
		t.Fatalf("expected Madrassa first, got %q", report.Rows[0].InstituteName)
	}
	if report.Rows[0].EntryCount != 0 || !report.Rows[0].BankBalance.Equal(dec(1200)) {
		t.Errorf("Madrassa: expected 0 entries / 1200 balance, got %d / %s", report.Rows[0].EntryCount, report.Rows[0].BankBalance)
	}

	masjid := report.Rows[1]
	if masjid.InstituteName != "Masjid" {
		t.Fatalf("expected Masjid second, got %q", masjid.InstituteName)
	}
	if !masjid.Net.Equal(dec(500)) {
		t.Errorf("Masjid net: expected 500, got %s", masjid.Net)
	}
	if !masjid.BankBalance.Equal(dec(3000)) {
		t.Errorf("Masjid balance: expected 3000, got %s", masjid.BankBalance)
	}

	unassigned := report.Rows[2]
	if unassigned.InstituteName != "Unassigned" || unassigned.InstituteId != 0 {
		t.Fatalf("expected Unassigned row, got %q (%d)", unassigned.InstituteName, unassigned.InstituteId)
	}
	if !unassigned.TotalIncome.Equal(dec(150)) {
		t.Errorf("Unassigned income: expected 150, got %s", unassigned.TotalIncome)
	}

	if !report.Totals.TotalIncome.Equal(dec(1050)) {
		t.Errorf("grand income: expected 1050, got %s", report.Totals.TotalIncome)
	}
	if !report.Totals.Net.Equal(dec(650)) {
		t.Errorf("grand net: expected 650, got %s", report.Totals.Net)
	}
	if !report.Totals.BankBalance.Equal(dec(4200)) {
		t.Errorf("grand balance: expected 4200, got %s", report.Totals.BankBalance)
	}
}

func TestComputeConsolidated_UnknownInstituteNameDefaults(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 10, date: day(1), institute: 9},
	})
	report := ComputeConsolidated(items, nil, map[int]string{})
	if report.Rows[0].InstituteName != "Unassigned" {
		t.Errorf("missing name should default, got %q", report.Rows[0].InstituteName)
	}
}

func TestConsolidatedFilterIsTenantWide(t *testing.T) {
	// The consolidated report always spans every institute; its filter must
	// not offer an institute knob that the query would ignore.
	if _, ok := reflect.TypeOf(ConsolidatedFilter{}).FieldByName("InstituteId"); ok {
		t.Fatal("ConsolidatedFilter must not carry an institute filter")
	}
}
