package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

// NOTE: These tests are intentionally DB-free. They pin the posting engine's
// arithmetic and policy edges; full posting/reversal round trips against
// MySQL belong in an integration environment.

func TestSignedDelta_IncomeAdds(t *testing.T) {
	delta := SignedDelta(models.LedgerTypeIncome, decimal.NewFromInt(500))
	if !delta.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected +500, got %s", delta)
	}
}

func TestSignedDelta_ExpenseSubtracts(t *testing.T) {
	delta := SignedDelta(models.LedgerTypeExpense, decimal.NewFromInt(200))
	if !delta.Equal(decimal.NewFromInt(-200)) {
		t.Fatalf("expected -200, got %s", delta)
	}
}

// A posting followed by its reversal must leave the balance where it started.
func TestSignedDelta_ReversalNetsToZero(t *testing.T) {
	cases := []struct {
		ledgerType models.LedgerType
		amount     int64
	}{
		{models.LedgerTypeIncome, 500},
		{models.LedgerTypeExpense, 200},
		{models.LedgerTypeIncome, 1},
	}
	for _, tc := range cases {
		forward := SignedDelta(tc.ledgerType, decimal.NewFromInt(tc.amount))
		reverse := forward.Neg()
		if !forward.Add(reverse).IsZero() {
			t.Errorf("%s %d: post+reverse should net to zero, got %s", tc.ledgerType, tc.amount, forward.Add(reverse))
		}
	}
}

// Worked example: income 500 then expense 200 moves a 1000 balance to 1300.
func TestSignedDelta_WorkedExample(t *testing.T) {
	balance := decimal.NewFromInt(1000)
	balance = balance.Add(SignedDelta(models.LedgerTypeIncome, decimal.NewFromInt(500)))
	balance = balance.Add(SignedDelta(models.LedgerTypeExpense, decimal.NewFromInt(200)))
	if !balance.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("expected 1300, got %s", balance)
	}
}

// Transactions without an institute never select an account, so they never
// move a balance.
func TestSelectPostingAccount_NoInstitute(t *testing.T) {
	account, err := SelectPostingAccount(context.Background(), nil, "mahall-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account != nil {
		t.Fatalf("expected no account for institute 0, got %d", account.ID)
	}
}

func TestPostTransaction_RejectsInvalidInput(t *testing.T) {
	_, err := PostTransaction(context.Background(), nil, nil, PostingRequest{})
	if err == nil {
		t.Fatal("expected error for missing tenant")
	}

	_, err = PostTransaction(context.Background(), nil, nil, PostingRequest{
		TenantId:   "mahall-1",
		LedgerType: models.LedgerType("bogus"),
	})
	if err == nil {
		t.Fatal("expected error for invalid ledger type")
	}

	_, err = PostTransaction(context.Background(), nil, nil, PostingRequest{
		TenantId:   "mahall-1",
		LedgerType: models.LedgerTypeIncome,
		SourceTag:  models.SourceTag("bogus"),
	})
	if err == nil {
		t.Fatal("expected error for invalid source tag")
	}
}

func TestReversePosting_RequiresTenant(t *testing.T) {
	err := ReversePosting(context.Background(), nil, nil, "", models.SourceTagSalary, 1)
	if err == nil {
		t.Fatal("expected error for missing tenant")
	}
}

func TestPostingResult_CarriesError(t *testing.T) {
	r := postingFailed(errors.New("boom"))
	if r.Posted || r.Error != "boom" {
		t.Fatalf("unexpected result: %+v", r)
	}
	ok := postingOk()
	if !ok.Posted || ok.Error != "" {
		t.Fatalf("unexpected result: %+v", ok)
	}
}
