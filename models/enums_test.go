package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDateParam(t *testing.T) {
	if d, err := ParseDateParam(""); err != nil || d != nil {
		t.Fatalf("empty input should mean unbounded, got %v, %v", d, err)
	}
	d, err := ParseDateParam("2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("expected %s, got %s", want, d)
	}
	if _, err := ParseDateParam("15-03-2026"); err == nil {
		t.Error("expected error for malformed date")
	}
	if _, err := ParseDateParam("2026-13-01"); err == nil {
		t.Error("expected error for impossible month")
	}
}

func TestMyDateString_JSONRoundTrip(t *testing.T) {
	var d MyDateString
	if err := json.Unmarshal([]byte(`"2026-01-31"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `"2026-01-31"` {
		t.Errorf("expected \"2026-01-31\", got %s", out)
	}
}

func TestMyDateString_RejectsBadDate(t *testing.T) {
	var d MyDateString
	if err := json.Unmarshal([]byte(`"31/01/2026"`), &d); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestStartOfDayUTCTime_TenantTimezone(t *testing.T) {
	d := MyDateString(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	if err := d.StartOfDayUTCTime("Asia/Kolkata"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Midnight IST is 18:30 UTC the previous day.
	want := time.Date(2026, time.February, 28, 18, 30, 0, 0, time.UTC)
	if !time.Time(d).Equal(want) {
		t.Errorf("expected %s, got %s", want, time.Time(d))
	}
}

func TestEndOfDayUTCTime_AfterStartOfDay(t *testing.T) {
	day := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	start := MyDateString(day)
	end := MyDateString(day)
	if err := start.StartOfDayUTCTime(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := end.EndOfDayUTCTime(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !time.Time(start).Before(time.Time(end)) {
		t.Errorf("start %s should precede end %s", time.Time(start), time.Time(end))
	}
}

func TestLedgerTypeIsValid(t *testing.T) {
	if !LedgerTypeIncome.IsValid() || !LedgerTypeExpense.IsValid() {
		t.Error("income and expense must be valid")
	}
	if LedgerType("asset").IsValid() {
		t.Error("asset is not a valid ledger type")
	}
}

func TestSourceTagIsValid(t *testing.T) {
	for _, tag := range []SourceTag{SourceTagSalary, SourceTagPettyCash, SourceTagVarisangya, SourceTagZakat, SourceTagManual} {
		if !tag.IsValid() {
			t.Errorf("%s must be valid", tag)
		}
	}
	if SourceTag("invoice").IsValid() {
		t.Error("invoice is not a valid source tag")
	}
}
