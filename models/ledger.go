package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
	"gorm.io/gorm"
)

// Ledger is a named income or expense bucket that ledger items post against.
// One row per (tenant, institute, name, type); auto-created on first use and
// never deleted by the posting engine.
type Ledger struct {
	ID          int        `gorm:"primary_key" json:"id"`
	TenantId    string     `gorm:"size:64;not null;index;uniqueIndex:idx_ledger_identity,priority:1" json:"tenant_id"`
	InstituteId int        `gorm:"not null;default:0;uniqueIndex:idx_ledger_identity,priority:2" json:"institute_id"`
	Name        string     `gorm:"size:255;not null;uniqueIndex:idx_ledger_identity,priority:3" json:"name" binding:"required"`
	Type        LedgerType `gorm:"type:enum('income','expense');not null;uniqueIndex:idx_ledger_identity,priority:4" json:"type" binding:"required"`
	Description string     `gorm:"size:255" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// FindOrCreateLedger resolves the ledger for (tenant, institute, name, type),
// creating it on first use. The composite unique index makes concurrent first
// postings converge on one row: a losing insert re-runs the lookup.
func FindOrCreateLedger(ctx context.Context, tx *gorm.DB, tenantId string, instituteId int, name string, ledgerType LedgerType) (*Ledger, error) {
	if tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("ledger name is required")
	}
	if !ledgerType.IsValid() {
		return nil, errors.New("invalid ledger type")
	}

	var ledger Ledger
	err := tx.WithContext(ctx).
		Where("tenant_id = ? AND institute_id = ? AND name = ? AND type = ?", tenantId, instituteId, name, ledgerType).
		First(&ledger).Error
	if err == nil {
		return &ledger, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ledger = Ledger{
		TenantId:    tenantId,
		InstituteId: instituteId,
		Name:        name,
		Type:        ledgerType,
		Description: "Auto-created ledger for " + name,
	}
	if err := tx.WithContext(ctx).Create(&ledger).Error; err != nil {
		// Duplicate key means another request created it first; use that row.
		if isDuplicateKeyError(err) {
			var existing Ledger
			if ferr := tx.WithContext(ctx).
				Where("tenant_id = ? AND institute_id = ? AND name = ? AND type = ?", tenantId, instituteId, name, ledgerType).
				First(&existing).Error; ferr != nil {
				return nil, ferr
			}
			return &existing, nil
		}
		return nil, err
	}
	return &ledger, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

func GetLedger(ctx context.Context, id int) (*Ledger, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[Ledger](ctx, tenantId, id)
}

func GetAllLedgers(ctx context.Context, instituteId *int) ([]*Ledger, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	if instituteId != nil && *instituteId > 0 {
		dbCtx = dbCtx.Where("institute_id = ?", *instituteId)
	}
	var results []*Ledger
	if err := dbCtx.Order("type ASC, name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
