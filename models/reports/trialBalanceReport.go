package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

type TrialBalanceFilter struct {
	DateRangeFilter
}

// TrialBalanceRow carries one ledger's period total mapped onto the debit or
// credit column: expense ledgers debit, income ledgers credit.
type TrialBalanceRow struct {
	LedgerId   int               `json:"ledger_id"`
	LedgerName string            `json:"ledger_name"`
	Type       models.LedgerType `json:"type"`
	Debit      decimal.Decimal   `json:"debit"`
	Credit     decimal.Decimal   `json:"credit"`
	EntryCount int               `json:"entry_count"`
}

type TrialBalanceTotals struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Difference  decimal.Decimal `json:"difference"`
}

type TrialBalanceReport struct {
	Rows   []TrialBalanceRow  `json:"rows"`
	Totals TrialBalanceTotals `json:"totals"`
}

func GetTrialBalanceReport(ctx context.Context, filter TrialBalanceFilter) (*TrialBalanceReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "trial_balance", started, map[string]any{"from": filter.FromDate, "to": filter.ToDate})

	r, err := resolveRange(ctx, filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:trialbalance:%s:%d:%s:%s", r.tenantId, derefInt(filter.InstituteId), filter.FromDate, filter.ToDate)
	if reportCacheEnabled() {
		var cached TrialBalanceReport
		if ok, err := cacheGet(cacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	items, err := fetchLedgerItems(ctx, r, filter.InstituteId)
	if err != nil {
		return nil, err
	}
	report := ComputeTrialBalance(items)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, report, reportCacheTTL())
	}
	return report, nil
}

// ComputeTrialBalance groups items per ledger and reconciles the two columns.
// Difference is credit minus debit, so a period where income equals expense
// nets to zero.
func ComputeTrialBalance(items []models.LedgerItem) *TrialBalanceReport {
	type key struct {
		ledgerId int
	}
	rowsByLedger := map[key]*TrialBalanceRow{}
	for _, item := range items {
		k := key{ledgerId: item.LedgerId}
		row, ok := rowsByLedger[k]
		if !ok {
			row = &TrialBalanceRow{
				LedgerId:   item.LedgerId,
				LedgerName: ledgerDisplayName(item),
				Type:       item.Type,
				Debit:      decimal.Zero,
				Credit:     decimal.Zero,
			}
			rowsByLedger[k] = row
		}
		if item.Type == models.LedgerTypeExpense {
			row.Debit = row.Debit.Add(item.Amount)
		} else {
			row.Credit = row.Credit.Add(item.Amount)
		}
		row.EntryCount++
	}

	report := &TrialBalanceReport{
		Rows: make([]TrialBalanceRow, 0, len(rowsByLedger)),
		Totals: TrialBalanceTotals{
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		},
	}
	for _, row := range rowsByLedger {
		report.Rows = append(report.Rows, *row)
		report.Totals.TotalDebit = report.Totals.TotalDebit.Add(row.Debit)
		report.Totals.TotalCredit = report.Totals.TotalCredit.Add(row.Credit)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Type != report.Rows[j].Type {
			return report.Rows[i].Type < report.Rows[j].Type
		}
		return report.Rows[i].LedgerName < report.Rows[j].LedgerName
	})
	report.Totals.Difference = report.Totals.TotalCredit.Sub(report.Totals.TotalDebit)
	return report
}
