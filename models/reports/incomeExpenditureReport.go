package reports

import (
	"context"
	"sort"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

type IncomeExpenditureFilter struct {
	DateRangeFilter
}

// CategoryLine is one category's total inside a ledger group. Items without
// a category land in the "Uncategorized" bucket.
type CategoryLine struct {
	CategoryId   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
	EntryCount   int             `json:"entry_count"`
}

type IncomeExpenditureGroup struct {
	LedgerId   int             `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	Total      decimal.Decimal `json:"total"`
	Categories []CategoryLine  `json:"categories"`
}

type IncomeExpenditureReport struct {
	Income       []IncomeExpenditureGroup `json:"income"`
	Expenses     []IncomeExpenditureGroup `json:"expenses"`
	TotalIncome  decimal.Decimal          `json:"total_income"`
	TotalExpense decimal.Decimal          `json:"total_expense"`
	Surplus      decimal.Decimal          `json:"surplus"`
}

func GetIncomeExpenditureReport(ctx context.Context, filter IncomeExpenditureFilter) (*IncomeExpenditureReport, error) {
	started := time.Now()
	defer logSlowReport(ctx, "income_expenditure", started, map[string]any{"from": filter.FromDate, "to": filter.ToDate})

	r, err := resolveRange(ctx, filter.DateRangeFilter)
	if err != nil {
		return nil, err
	}
	items, err := fetchLedgerItems(ctx, r, filter.InstituteId)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var categories []models.Category
	if err := db.WithContext(ctx).Where("tenant_id = ?", r.tenantId).Find(&categories).Error; err != nil {
		return nil, err
	}
	categoryNames := make(map[int]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	return ComputeIncomeExpenditure(items, categoryNames), nil
}

// ComputeIncomeExpenditure totals items per (ledger, category) and regroups
// the category lines under their ledger. Surplus is income minus expense.
func ComputeIncomeExpenditure(items []models.LedgerItem, categoryNames map[int]string) *IncomeExpenditureReport {
	report := &IncomeExpenditureReport{
		Income:       groupByLedgerAndCategory(items, models.LedgerTypeIncome, categoryNames),
		Expenses:     groupByLedgerAndCategory(items, models.LedgerTypeExpense, categoryNames),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, group := range report.Income {
		report.TotalIncome = report.TotalIncome.Add(group.Total)
	}
	for _, group := range report.Expenses {
		report.TotalExpense = report.TotalExpense.Add(group.Total)
	}
	report.Surplus = report.TotalIncome.Sub(report.TotalExpense)
	return report
}

func groupByLedgerAndCategory(items []models.LedgerItem, ledgerType models.LedgerType, categoryNames map[int]string) []IncomeExpenditureGroup {
	groups := map[int]*IncomeExpenditureGroup{}
	lines := map[int]map[int]*CategoryLine{}
	for _, item := range items {
		if item.Type != ledgerType {
			continue
		}
		group, ok := groups[item.LedgerId]
		if !ok {
			group = &IncomeExpenditureGroup{
				LedgerId:   item.LedgerId,
				LedgerName: ledgerDisplayName(item),
				Total:      decimal.Zero,
			}
			groups[item.LedgerId] = group
			lines[item.LedgerId] = map[int]*CategoryLine{}
		}
		group.Total = group.Total.Add(item.Amount)

		line, ok := lines[item.LedgerId][item.CategoryId]
		if !ok {
			name := "Uncategorized"
			if item.CategoryId > 0 {
				if n, found := categoryNames[item.CategoryId]; found {
					name = n
				}
			}
			line = &CategoryLine{
				CategoryId:   item.CategoryId,
				CategoryName: name,
				Amount:       decimal.Zero,
			}
			lines[item.LedgerId][item.CategoryId] = line
		}
		line.Amount = line.Amount.Add(item.Amount)
		line.EntryCount++
	}

	result := make([]IncomeExpenditureGroup, 0, len(groups))
	for ledgerId, group := range groups {
		for _, line := range lines[ledgerId] {
			group.Categories = append(group.Categories, *line)
		}
		sort.Slice(group.Categories, func(i, j int) bool {
			return group.Categories[i].CategoryName < group.Categories[j].CategoryName
		})
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LedgerName < result[j].LedgerName
	})
	return result
}
