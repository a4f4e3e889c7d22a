package reports

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
)

type LedgerStatementFilter struct {
	DateRangeFilter
	LedgerId int `form:"ledger_id" json:"ledger_id"`
}

// LedgerStatementEntry is one line of the statement with the running balance
// after the line was applied.
type LedgerStatementEntry struct {
	ID          int             `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type LedgerStatementReport struct {
	LedgerId       int                    `json:"ledger_id"`
	LedgerName     string                 `json:"ledger_name"`
	OpeningBalance decimal.Decimal        `json:"opening_balance"`
	Entries        []LedgerStatementEntry `json:"entries"`
	ClosingBalance decimal.Decimal        `json:"closing_balance"`
	TotalDebit     decimal.Decimal        `json:"total_debit"`
	TotalCredit    decimal.Decimal        `json:"total_credit"`
}

// GetLedgerStatementReport builds one ledger's statement. The opening balance
// is the signed sum of everything strictly before the range; absent a
// from_date it is zero and the statement covers the ledger's full history.
func GetLedgerStatementReport(ctx context.Context, filter LedgerStatementFilter) (*LedgerStatementReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "ledger_statement", started, map[string]any{"ledger_id": filter.LedgerId})

	if filter.LedgerId <= 0 {
		return nil, errors.New("ledger id is required")
	}
	r, err := resolveRange(ctx, filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[models.Ledger](ctx, r.tenantId, filter.LedgerId); err != nil {
		return nil, errors.New("ledger not found")
	}
	ledger, err := models.GetLedger(ctx, filter.LedgerId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	opening := decimal.Zero
	if r.from != nil {
		var before []models.LedgerItem
		err := db.WithContext(ctx).
			Where("tenant_id = ? AND ledger_id = ? AND date < ?", r.tenantId, filter.LedgerId, *r.from).
			Find(&before).Error
		if err != nil {
			return nil, err
		}
		opening = SignedSum(before)
	}

	dbCtx := db.WithContext(ctx).
		Where("tenant_id = ? AND ledger_id = ?", r.tenantId, filter.LedgerId)
	if r.from != nil {
		dbCtx = dbCtx.Where("date >= ?", *r.from)
	}
	if r.to != nil {
		dbCtx = dbCtx.Where("date <= ?", *r.to)
	}
	var items []models.LedgerItem
	if err := dbCtx.Order("date ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	report := ComputeLedgerStatement(opening, items)
	report.LedgerId = ledger.ID
	report.LedgerName = ledger.Name
	return report, nil
}

// ComputeLedgerStatement folds a running balance over the entries: credits
// (income) add, debits (expense) subtract, so the closing balance equals the
// opening balance plus the signed sum of the entries.
func ComputeLedgerStatement(opening decimal.Decimal, items []models.LedgerItem) *LedgerStatementReport {
	sorted := make([]models.LedgerItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	report := &LedgerStatementReport{
		OpeningBalance: opening,
		Entries:        make([]LedgerStatementEntry, 0, len(sorted)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	balance := opening
	for _, item := range sorted {
		entry := LedgerStatementEntry{
			ID:          item.ID,
			Date:        item.Date,
			Description: item.Description,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if item.Type == models.LedgerTypeExpense {
			entry.Debit = item.Amount
			report.TotalDebit = report.TotalDebit.Add(item.Amount)
		} else {
			entry.Credit = item.Amount
			report.TotalCredit = report.TotalCredit.Add(item.Amount)
		}
		balance = balance.Add(SignedAmount(item))
		entry.Balance = balance
		report.Entries = append(report.Entries, entry)
	}
	report.ClosingBalance = balance
	return report
}
