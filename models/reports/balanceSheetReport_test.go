package reports

import (
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
)

func testAccount(id, instituteId int, name string, balance int64) models.InstituteAccount {
	return models.InstituteAccount{
		ID:          id,
		TenantId:    "mahall-1",
		InstituteId: instituteId,
		Name:        name,
		Balance:     decimal.NewFromInt(balance),
		IsActive:    utils.NewTrue(),
	}
}

func TestComputeBalanceSheet_AccountsAndSummary(t *testing.T) {
	accounts := []models.InstituteAccount{
		testAccount(1, 1, "Masjid Main", 5000),
		testAccount(2, 2, "Madrassa Main", 2500),
	}
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 800, date: day(1), institute: 1},
		{id: 2, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 300, date: day(2), institute: 1},
	})

	report := ComputeBalanceSheet(accounts, items)

	if !report.TotalBankBalance.Equal(dec(7500)) {
		t.Errorf("total bank balance: expected 7500, got %s", report.TotalBankBalance)
	}
	if !report.Summary.TotalAssets.Equal(dec(7500)) {
		t.Errorf("total assets: expected 7500, got %s", report.Summary.TotalAssets)
	}
	if !report.Summary.TotalIncome.Equal(dec(800)) {
		t.Errorf("total income: expected 800, got %s", report.Summary.TotalIncome)
	}
	if !report.Summary.TotalExpenses.Equal(dec(300)) {
		t.Errorf("total expenses: expected 300, got %s", report.Summary.TotalExpenses)
	}
	if !report.Summary.Net.Equal(dec(500)) {
		t.Errorf("net: expected 500, got %s", report.Summary.Net)
	}
}

// Salary postings flow through the same transaction log as everything else:
// with no salary ledger items in the period, the expense side reports no
// salary at all rather than a second figure pulled from payroll records.
func TestComputeBalanceSheet_NoSalaryDoubleCounting(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 400, date: day(1)},
	})
	report := ComputeBalanceSheet(nil, items)

	for _, group := range report.Expenses {
		if group.LedgerName == "Salaries" {
			t.Fatalf("expected no salary expense group, got %s", group.Amount)
		}
	}
	if !report.Summary.TotalExpenses.IsZero() {
		t.Errorf("expected zero expenses, got %s", report.Summary.TotalExpenses)
	}
}

func TestComputeBalanceSheet_GroupsSortedByLedgerName(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 2, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 10, date: day(1)},
		{id: 2, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 20, date: day(1)},
		{id: 3, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 5, date: day(2)},
	})
	report := ComputeBalanceSheet(nil, items)

	if len(report.Income) != 2 {
		t.Fatalf("expected 2 income groups, got %d", len(report.Income))
	}
	if report.Income[0].LedgerName != "Donations" || report.Income[1].LedgerName != "Zakat" {
		t.Errorf("expected name-sorted groups, got %q then %q", report.Income[0].LedgerName, report.Income[1].LedgerName)
	}
	if !report.Income[0].Amount.Equal(dec(25)) {
		t.Errorf("Donations total: expected 25, got %s", report.Income[0].Amount)
	}
	if report.Income[0].EntryCount != 2 {
		t.Errorf("Donations entry count: expected 2, got %d", report.Income[0].EntryCount)
	}
}
