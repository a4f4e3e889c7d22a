package reports

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
)

// DateRangeFilter is the common slice of every report filter: an optional
// institute and an optional [from, to] calendar-date range. Absent dates mean
// "all time". Dates arrive as YYYY-MM-DD strings and are widened to the
// tenant's timezone day boundaries before querying.
type DateRangeFilter struct {
	InstituteId *int   `form:"institute_id" json:"institute_id"`
	FromDate    string `form:"from_date" json:"from_date"`
	ToDate      string `form:"to_date" json:"to_date"`
}

type resolvedRange struct {
	tenantId string
	from     *time.Time
	to       *time.Time
}

// resolveRange validates the filter and pins the date bounds to the tenant's
// timezone. Malformed dates are rejected here, before any aggregation.
func resolveRange(ctx context.Context, filter DateRangeFilter) (*resolvedRange, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	tenant, err := models.GetTenant(ctx)
	if err != nil {
		return nil, errors.New("tenant id is required")
	}

	from, err := models.ParseDateParam(filter.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := models.ParseDateParam(filter.ToDate)
	if err != nil {
		return nil, err
	}
	if from != nil {
		d := models.MyDateString(*from)
		if err := d.StartOfDayUTCTime(tenant.Timezone); err != nil {
			return nil, err
		}
		t := time.Time(d)
		from = &t
	}
	if to != nil {
		d := models.MyDateString(*to)
		if err := d.EndOfDayUTCTime(tenant.Timezone); err != nil {
			return nil, err
		}
		t := time.Time(d)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, errors.New("from_date must not be after to_date")
	}
	return &resolvedRange{tenantId: tenantId, from: from, to: to}, nil
}

// fetchLedgerItems loads the tenant's ledger items for a resolved range,
// with the owning ledger preloaded for display names.
func fetchLedgerItems(ctx context.Context, r *resolvedRange, instituteId *int) ([]models.LedgerItem, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Preload("Ledger").Where("tenant_id = ?", r.tenantId)
	if instituteId != nil && *instituteId > 0 {
		dbCtx = dbCtx.Where("institute_id = ?", *instituteId)
	}
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
	return items, nil
}

// SignedAmount maps an item onto the income-positive axis reports sum over:
// income adds, expense subtracts.
func SignedAmount(item models.LedgerItem) decimal.Decimal {
	if item.Type == models.LedgerTypeExpense {
		return item.Amount.Neg()
	}
	return item.Amount
}

// SignedSum folds SignedAmount over a slice of items.
func SignedSum(items []models.LedgerItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(SignedAmount(item))
	}
	return total
}

func ledgerDisplayName(item models.LedgerItem) string {
	if item.Ledger != nil {
		return item.Ledger.Name
	}
	return ""
}
