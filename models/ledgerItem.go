package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerItem is one signed, dated financial record tied to a ledger. The
// collection is append-only: rows are never updated, and deleted only by the
// posting engine's reversal path.
type LedgerItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TenantId      string          `gorm:"size:64;not null;index;index:idx_li_tenant_date,priority:1;index:idx_li_tenant_source,priority:1;index:idx_li_tenant_ledger,priority:1" json:"tenant_id"`
	InstituteId   int             `gorm:"not null;default:0;index" json:"institute_id"`
	LedgerId      int             `gorm:"not null;index;index:idx_li_tenant_ledger,priority:2" json:"ledger_id" binding:"required"`
	Ledger        *Ledger         `gorm:"foreignKey:LedgerId" json:"ledger,omitempty"`
	Type          LedgerType      `gorm:"type:enum('income','expense');not null" json:"type"`
	Date          time.Time       `gorm:"not null;index:idx_li_tenant_date,priority:2;index:idx_li_tenant_ledger,priority:3" json:"date" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	CategoryId    int             `gorm:"not null;default:0;index" json:"category_id"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	ReferenceNo   string          `gorm:"size:100" json:"reference_no"`
	SourceTag     SourceTag       `gorm:"type:enum('salary','petty_cash','varisangya','zakat','manual');not null;index:idx_li_tenant_source,priority:2" json:"source_tag"`
	SourceId      int             `gorm:"not null;default:0;index:idx_li_tenant_source,priority:3" json:"source_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Append-only guardrails:
// - ledger_items are never updated.
// - deletes must go through the reversal path, which marks its context.

type reversalDeleteKey struct{}

// WithReversalDelete marks a context as belonging to the reversal path so the
// delete guardrail lets it through.
func WithReversalDelete(ctx context.Context) context.Context {
	return context.WithValue(ctx, reversalDeleteKey{}, true)
}

func (i *LedgerItem) BeforeUpdate(tx *gorm.DB) error {
	return errors.New("append-only ledger: ledger_items cannot be updated")
}

func (i *LedgerItem) BeforeDelete(tx *gorm.DB) error {
	if tx != nil && tx.Statement != nil && tx.Statement.Context != nil {
		if v, ok := tx.Statement.Context.Value(reversalDeleteKey{}).(bool); ok && v {
			return nil
		}
	}
	return errors.New("append-only ledger: ledger_items may only be deleted by reversal")
}

// FindLedgerItemsBySource loads the posting episode for (source_tag, source_id).
func FindLedgerItemsBySource(ctx context.Context, tx *gorm.DB, tenantId string, sourceTag SourceTag, sourceId int) ([]*LedgerItem, error) {
	var items []*LedgerItem
	err := tx.WithContext(ctx).
		Where("tenant_id = ? AND source_tag = ? AND source_id = ?", tenantId, sourceTag, sourceId).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
