package models

import (
	"errors"
	"fmt"
	"time"
)

type LedgerType string

const (
	LedgerTypeIncome  LedgerType = "income"
	LedgerTypeExpense LedgerType = "expense"
)

func (t LedgerType) IsValid() bool {
	return t == LedgerTypeIncome || t == LedgerTypeExpense
}

// SourceTag identifies the business event a ledger item was posted from.
// Together with SourceId it addresses one reversible posting episode.
type SourceTag string

const (
	SourceTagSalary     SourceTag = "salary"
	SourceTagPettyCash  SourceTag = "petty_cash"
	SourceTagVarisangya SourceTag = "varisangya"
	SourceTagZakat      SourceTag = "zakat"
	SourceTagManual     SourceTag = "manual"
)

func (t SourceTag) IsValid() bool {
	switch t {
	case SourceTagSalary, SourceTagPettyCash, SourceTagVarisangya, SourceTagZakat, SourceTagManual:
		return true
	}
	return false
}

const DefaultTimezone = "Asia/Kolkata"

// MyDateString is a calendar date in API payloads ("2006-01-02").
type MyDateString time.Time

func (t MyDateString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format("2006-01-02") + `"`), nil
}

func (t *MyDateString) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return errors.New("error parsing date, want YYYY-MM-DD")
	}
	*t = MyDateString(parsed)
	return nil
}

// ParseDateParam parses an optional YYYY-MM-DD query parameter.
// Empty input yields a nil time (meaning "unbounded").
func ParseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &parsed, nil
}

// StartOfDayUTCTime converts the calendar date to the first instant of that
// day in the tenant's timezone, expressed in UTC.
func (t *MyDateString) StartOfDayUTCTime(timezone string) error {
	if t == nil {
		return nil
	}
	localTime := time.Time(*t)
	if timezone == "" {
		timezone = DefaultTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	start := time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 0, 0, 0, 0, location)
	*t = MyDateString(start.UTC())
	return nil
}

// EndOfDayUTCTime converts the calendar date to the last instant of that day
// in the tenant's timezone, expressed in UTC.
func (t *MyDateString) EndOfDayUTCTime(timezone string) error {
	if t == nil {
		return nil
	}
	localTime := time.Time(*t)
	if timezone == "" {
		timezone = DefaultTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	end := time.Date(localTime.Year(), localTime.Month(), localTime.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), location)
	*t = MyDateString(end.UTC())
	return nil
}
