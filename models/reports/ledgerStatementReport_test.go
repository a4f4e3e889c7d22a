package reports

import (
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

// Closing balance must equal opening plus the signed sum of the entries.
func TestComputeLedgerStatement_RunningBalanceFold(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 500, date: day(1)},
		{id: 2, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeExpense, amount: 200, date: day(2)},
		{id: 3, ledgerId: 1, ledgerName: "Donations", itemType: models.LedgerTypeIncome, amount: 100, date: day(3)},
	})
	opening := dec(1000)

	report := ComputeLedgerStatement(opening, items)

	if !report.ClosingBalance.Equal(opening.Add(SignedSum(items))) {
		t.Fatalf("closing %s != opening %s + signed sum %s", report.ClosingBalance, opening, SignedSum(items))
	}
	wantBalances := []int64{1500, 1300, 1400}
	for i, want := range wantBalances {
		if !report.Entries[i].Balance.Equal(dec(want)) {
			t.Errorf("entry %d balance: expected %d, got %s", i, want, report.Entries[i].Balance)
		}
	}
	if !report.TotalCredit.Equal(dec(600)) {
		t.Errorf("total credit: expected 600, got %s", report.TotalCredit)
	}
	if !report.TotalDebit.Equal(dec(200)) {
		t.Errorf("total debit: expected 200, got %s", report.TotalDebit)
	}
}

func TestComputeLedgerStatement_EmptyRange(t *testing.T) {
	opening := dec(75)
	report := ComputeLedgerStatement(opening, nil)
	if !report.ClosingBalance.Equal(opening) {
		t.Errorf("closing: expected %s, got %s", opening, report.ClosingBalance)
	}
	if len(report.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(report.Entries))
	}
}

// Petty cash worked example: the float (1000) and replenishment (300) post to
// the float ledger; only the 300 voucher posts to the expense ledger, so the
// expense ledger's statement shows a single 300 debit.
func TestComputeLedgerStatement_PettyCashExpenseLedger(t *testing.T) {
	expenseLedger := buildItems([]testItem{
		{id: 2, ledgerId: 11, ledgerName: "Petty Cash Expenses", itemType: models.LedgerTypeExpense, amount: 300, date: day(10)},
	})

	report := ComputeLedgerStatement(decimal.Zero, expenseLedger)

	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(report.Entries))
	}
	if !report.Entries[0].Debit.Equal(dec(300)) {
		t.Errorf("debit: expected 300, got %s", report.Entries[0].Debit)
	}
	if !report.ClosingBalance.Equal(dec(-300)) {
		t.Errorf("closing: expected -300, got %s", report.ClosingBalance)
	}
}

func TestSignedSum_RoundTripsThroughReversal(t *testing.T) {
	items := buildItems([]testItem{
		{id: 1, ledgerId: 1, ledgerName: "Zakat", itemType: models.LedgerTypeIncome, amount: 120, date: day(1)},
		{id: 2, ledgerId: 2, ledgerName: "Rent", itemType: models.LedgerTypeExpense, amount: 45, date: day(2)},
	})
	total := SignedSum(items)
	// Reversal applies the inverse of every item's signed amount.
	reversed := decimal.Zero
	for _, item := range items {
		reversed = reversed.Add(SignedAmount(item).Neg())
	}
	if !total.Add(reversed).IsZero() {
		t.Errorf("post+reverse should net to zero, got %s", total.Add(reversed))
	}
}
