package reports

import (
	"time"

	"github.com/mmsanduk/mahall_backend/models"
	"github.com/shopspring/decimal"
)

type testItem struct {
	id         int
	ledgerId   int
	ledgerName string
	itemType   models.LedgerType
	amount     int64
	date       time.Time
	institute  int
	categoryId int
	desc       string
}

func buildItems(specs []testItem) []models.LedgerItem {
	items := make([]models.LedgerItem, 0, len(specs))
	for _, s := range specs {
		items = append(items, models.LedgerItem{
			ID:          s.id,
			TenantId:    "mahall-1",
			InstituteId: s.institute,
			LedgerId:    s.ledgerId,
			Ledger: &models.Ledger{
				ID:   s.ledgerId,
				Name: s.ledgerName,
				Type: s.itemType,
			},
			Type:        s.itemType,
			Date:        s.date,
			Amount:      decimal.NewFromInt(s.amount),
			CategoryId:  s.categoryId,
			Description: s.desc,
		})
	}
	return items
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
