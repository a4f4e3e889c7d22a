package reports

import (
	"context"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

// ConsolidatedFilter carries only a date range: the consolidated report is
// always tenant-wide, one row per institute.
type ConsolidatedFilter struct {
	FromDate string `form:"from_date" json:"from_date"`
	ToDate   string `form:"to_date" json:"to_date"`
}

// ConsolidatedRow is one institute's position: period totals from the
// transaction log plus the sum of its active account balances. Items not
// assigned to an institute report under "Unassigned".
type ConsolidatedRow struct {
	InstituteId   int             `json:"institute_id"`
	InstituteName string          `json:"institute_name"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpense  decimal.Decimal `json:"total_expense"`
	Net           decimal.Decimal `json:"net"`
	EntryCount    int             `json:"entry_count"`
	BankBalance   decimal.Decimal `json:"bank_balance"`
}

type ConsolidatedTotals struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	BankBalance  decimal.Decimal `json:"bank_balance"`
}

type ConsolidatedReport struct {
	Rows   []ConsolidatedRow  `json:"rows"`
	Totals ConsolidatedTotals `json:"totals"`
}

func GetConsolidatedReport(ctx context.Context, filter ConsolidatedFilter) (*ConsolidatedReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "consolidated", started, map[string]any{"from": filter.FromDate, "to": filter.ToDate})

	r, err := resolveRange(ctx, DateRangeFilter{FromDate: filter.FromDate, ToDate: filter.ToDate})
	if err != nil {
		return nil, err
	}
	items, err := fetchLedgerItems(ctx, r, nil)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var accounts []models.InstituteAccount
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", r.tenantId, true).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	institutes, err := models.GetAllInstitutes(ctx)
	if err != nil {
		return nil, err
	}
	instituteNames := make(map[int]string, len(institutes))
	for _, institute := range institutes {
		instituteNames[institute.ID] = institute.Name
	}

	return ComputeConsolidated(items, accounts, instituteNames), nil
}

// ComputeConsolidated merges per-institute transaction totals with per-
// institute account balances. An institute with accounts but no transactions
// still gets a row, and vice versa.
func ComputeConsolidated(items []models.LedgerItem, accounts []models.InstituteAccount, instituteNames map[int]string) *ConsolidatedReport {
	rows := map[int]*ConsolidatedRow{}
	rowFor := func(instituteId int) *ConsolidatedRow {
		row, ok := rows[instituteId]
		if !ok {
			name := "Unassigned"
			if instituteId > 0 {
				if n, found := instituteNames[instituteId]; found {
					name = n
				}
			}
			row = &ConsolidatedRow{
				InstituteId:   instituteId,
				InstituteName: name,
				TotalIncome:   decimal.Zero,
				TotalExpense:  decimal.Zero,
				Net:           decimal.Zero,
				BankBalance:   decimal.Zero,
			}
			rows[instituteId] = row
		}
		return row
	}

	for _, item := range items {
		row := rowFor(item.InstituteId)
		if item.Type == models.LedgerTypeIncome {
			row.TotalIncome = row.TotalIncome.Add(item.Amount)
		} else {
			row.TotalExpense = row.TotalExpense.Add(item.Amount)
		}
		row.EntryCount++
	}
	for _, account := range accounts {
		row := rowFor(account.InstituteId)
		row.BankBalance = row.BankBalance.Add(account.Balance)
	}

	report := &ConsolidatedReport{
		Rows: make([]ConsolidatedRow, 0, len(rows)),
		Totals: ConsolidatedTotals{
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
			Net:          decimal.Zero,
			BankBalance:  decimal.Zero,
		},
	}
	for _, row := range rows {
		row.Net = row.TotalIncome.Sub(row.TotalExpense)
		report.Rows = append(report.Rows, *row)
		report.Totals.TotalIncome = report.Totals.TotalIncome.Add(row.TotalIncome)
		report.Totals.TotalExpense = report.Totals.TotalExpense.Add(row.TotalExpense)
		report.Totals.BankBalance = report.Totals.BankBalance.Add(row.BankBalance)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].InstituteName < report.Rows[j].InstituteName
	})
	report.Totals.Net = report.Totals.TotalIncome.Sub(report.Totals.TotalExpense)
	return report
}
