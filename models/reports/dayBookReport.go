package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

type DayBookFilter struct {
	DateRangeFilter
}

type DayBookEntry struct {
	ID            int               `json:"id"`
	Date          time.Time         `json:"date"`
	InstituteId   int               `json:"institute_id"`
	LedgerId      int               `json:"ledger_id"`
	LedgerName    string            `json:"ledger_name"`
	Type          models.LedgerType `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Description   string            `json:"description"`
	PaymentMethod string            `json:"payment_method"`
	ReferenceNo   string            `json:"reference_no"`
	SourceTag     models.SourceTag  `json:"source_tag"`
}

type DayBookTotals struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	TotalEntries int             `json:"total_entries"`
}

type DayBookReport struct {
	Entries []DayBookEntry `json:"entries"`
	Totals  DayBookTotals  `json:"totals"`
}

func GetDayBookReport(ctx context.Context, filter DayBookFilter) (*DayBookReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "day_book", started, map[string]any{"from": filter.FromDate, "to": filter.ToDate})

	r, err := resolveRange(ctx, filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:daybook:%s:%d:%s:%s", r.tenantId, derefInt(filter.InstituteId), filter.FromDate, filter.ToDate)
	if reportCacheEnabled() {
		var cached DayBookReport
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	items, err := fetchLedgerItems(ctx, r, filter.InstituteId)
	if err != nil {
		return nil, err
	}
	report := ComputeDayBook(items)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, report, reportCacheTTL())
	}
	return report, nil
}

// ComputeDayBook orders entries chronologically (entry id breaks ties) and
// totals both sides of the day.
func ComputeDayBook(items []models.LedgerItem) *DayBookReport {
	sorted := make([]models.LedgerItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	report := &DayBookReport{
		Entries: make([]DayBookEntry, 0, len(sorted)),
		Totals: DayBookTotals{
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			NetBalance:   decimal.Zero,
		},
	}
	for _, item := range sorted {
		report.Entries = append(report.Entries, DayBookEntry{
			ID:            item.ID,
			Date:          item.Date,
			InstituteId:   item.InstituteId,
			LedgerId:      item.LedgerId,
			LedgerName:    ledgerDisplayName(item),
			Type:          item.Type,
			Amount:        item.Amount,
			Description:   item.Description,
			PaymentMethod: item.PaymentMethod,
			ReferenceNo:   item.ReferenceNo,
			SourceTag:     item.SourceTag,
		})
		if item.Type == models.LedgerTypeIncome {
			report.Totals.TotalIncome = report.Totals.TotalIncome.Add(item.Amount)
		} else {
			report.Totals.TotalExpense = report.Totals.TotalExpense.Add(item.Amount)
		}
	}
	report.Totals.NetBalance = report.Totals.TotalIncome.Sub(report.Totals.TotalExpense)
	report.Totals.TotalEntries = len(report.Entries)
	return report
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
