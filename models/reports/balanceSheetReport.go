package reports

import (
	"context"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

type BalanceSheetFilter struct {
	DateRangeFilter
}

type BalanceSheetAccount struct {
	AccountId   int             `json:"account_id"`
	Name        string          `json:"name"`
	InstituteId int             `json:"institute_id"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerGroupTotal is one ledger's period total on either side of the sheet.
type LedgerGroupTotal struct {
	LedgerId   int             `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	Amount     decimal.Decimal `json:"amount"`
	EntryCount int             `json:"entry_count"`
}

type BalanceSheetSummary struct {
	TotalAssets   decimal.Decimal `json:"total_assets"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Net           decimal.Decimal `json:"net"`
}

type BalanceSheetReport struct {
	Accounts         []BalanceSheetAccount `json:"accounts"`
	TotalBankBalance decimal.Decimal       `json:"total_bank_balance"`
	Income           []LedgerGroupTotal    `json:"income"`
	Expenses         []LedgerGroupTotal    `json:"expenses"`
	Summary          BalanceSheetSummary   `json:"summary"`
}

// GetBalanceSheetReport reads active account balances as-is and groups the
// period's transactions per ledger. Salary postings arrive through the same
// transaction log as everything else, so there is no separate payroll query
// to double-count them with.
func GetBalanceSheetReport(ctx context.Context, filter BalanceSheetFilter) (*BalanceSheetReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "balance_sheet", started, map[string]any{"from": filter.FromDate, "to": filter.ToDate})

	r, err := resolveRange(ctx, filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	accountQuery := db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", r.tenantId, true)
	if filter.InstituteId != nil && *filter.InstituteId > 0 {
		accountQuery = accountQuery.Where("institute_id = ?", *filter.InstituteId)
	}
	var accounts []models.InstituteAccount
	if err := accountQuery.Order("created_at ASC, id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}

	items, err := fetchLedgerItems(ctx, r, filter.InstituteId)
	if err != nil {
		return nil, err
	}
	return ComputeBalanceSheet(accounts, items), nil
}

func ComputeBalanceSheet(accounts []models.InstituteAccount, items []models.LedgerItem) *BalanceSheetReport {
	report := &BalanceSheetReport{
		Accounts:         make([]BalanceSheetAccount, 0, len(accounts)),
		TotalBankBalance: decimal.Zero,
	}
	for _, account := range accounts {
		report.Accounts = append(report.Accounts, BalanceSheetAccount{
			AccountId:   account.ID,
			Name:        account.Name,
			InstituteId: account.InstituteId,
			Balance:     account.Balance,
		})
		report.TotalBankBalance = report.TotalBankBalance.Add(account.Balance)
	}

	report.Income = groupByLedger(items, models.LedgerTypeIncome)
	report.Expenses = groupByLedger(items, models.LedgerTypeExpense)

	report.Summary = BalanceSheetSummary{
		TotalAssets:   report.TotalBankBalance,
		TotalIncome:   sumGroups(report.Income),
		TotalExpenses: sumGroups(report.Expenses),
	}
	report.Summary.Net = report.Summary.TotalIncome.Sub(report.Summary.TotalExpenses)
	return report
}

func groupByLedger(items []models.LedgerItem, ledgerType models.LedgerType) []LedgerGroupTotal {
	totals := map[int]*LedgerGroupTotal{}
	for _, item := range items {
		if item.Type != ledgerType {
			continue
		}
		group, ok := totals[item.LedgerId]
		if !ok {
			group = &LedgerGroupTotal{
				LedgerId:   item.LedgerId,
				LedgerName: ledgerDisplayName(item),
				Amount:     decimal.Zero,
			}
			totals[item.LedgerId] = group
		}
		group.Amount = group.Amount.Add(item.Amount)
		group.EntryCount++
	}
	result := make([]LedgerGroupTotal, 0, len(totals))
	for _, group := range totals {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LedgerName < result[j].LedgerName
	})
	return result
}

func sumGroups(groups []LedgerGroupTotal) decimal.Decimal {
	total := decimal.Zero
	for _, group := range groups {
		total = total.Add(group.Amount)
	}
	return total
}
