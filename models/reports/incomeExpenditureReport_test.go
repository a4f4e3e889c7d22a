package reports

import (
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
)

func TestComputeIncomeExpenditure_CategoryGrouping(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 100, date: day(1), categoryId: 10},
		{id: 2, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 50, date: day(2), categoryId: 10},
		{id: 3, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 25, date: day(3)},
		{id: 4, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 60, date: day(4)},
	})
	categoryNames := map[int]string{10: "Friday Collection"}

	report := ComputeIncomeExpenditure(items, categoryNames)

	if len(report.Income) != 1 {
		t.Fatalf("expected 1 income group, got %d", len(report.Income))
	}
	donations := report.Income[0]
	if !donations.Total.Equal(dec(175)) {
		t.Errorf("Donations total: expected 175, got %s", donations.Total)
	}
	if len(donations.Categories) != 2 {
		t.Fatalf("expected 2 category lines, got %d", len(donations.Categories))
	}
	// Alphabetical: "Friday Collection" before "Uncategorized".
	if donations.Categories[0].CategoryName != "Friday Collection" {
		t.Errorf("expected Friday Collection first, got %q", donations.Categories[0].CategoryName)
	}
	if !donations.Categories[0].Amount.Equal(dec(150)) {
		t.Errorf("Friday Collection: expected 150, got %s", donations.Categories[0].Amount)
	}
	if donations.Categories[1].CategoryName != "Uncategorized" {
		t.Errorf("expected Uncategorized bucket, got %q", donations.Categories[1].CategoryName)
	}
	if !report.Surplus.Equal(dec(115)) {
		t.Errorf("surplus: expected 115, got %s", report.Surplus)
	}
}

func TestComputeIncomeExpenditure_UnknownCategoryFallsBack(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 40, date: day(1), categoryId: 99},
	})
	report := ComputeIncomeExpenditure(items, map[int]string{})
	if report.Income[0].Categories[0].CategoryName != "Uncategorized" {
		t.Errorf("unknown category id should bucket as Uncategorized, got %q", report.Income[0].Categories[0].CategoryName)
	}
}

func TestComputeIncomeExpenditure_Empty(t *testing.T) {
	report := ComputeIncomeExpenditure(nil, nil)
	if !report.Surplus.IsZero() {
		t.Errorf("expected zero surplus, got %s", report.Surplus)
	}
	if len(report.Income) != 0 || len(report.Expenses) != 0 {
		t.Errorf("expected no groups, got %d income / %d expense", len(report.Income), len(report.Expenses))
	}
}
