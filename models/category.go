package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
)

// Category is an optional tag on a ledger item. Its lifecycle is owned by the
// configuration layer; the accounting core only reads it for report grouping.
type Category struct {
	ID        int        `gorm:"primary_key" json:"id"`
	TenantId  string     `gorm:"size:64;index;not null" json:"tenant_id"`
	Name      string     `gorm:"size:255;not null" json:"name" binding:"required"`
	Type      LedgerType `gorm:"type:enum('income','expense');not null" json:"type" binding:"required"`
	IsActive  *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetCategory(ctx context.Context, id int) (*Category, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[Category](ctx, tenantId, id)
}

func GetAllCategories(ctx context.Context, categoryType *LedgerType) ([]*Category, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	if categoryType != nil && categoryType.IsValid() {
		dbCtx = dbCtx.Where("type = ?", *categoryType)
	}
	var results []*Category
	if err := dbCtx.Order("name ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindCategoryByName resolves an optional category name supplied on a posting
// request. Unknown names resolve to zero rather than failing the posting.
func FindCategoryByName(ctx context.Context, tenantId string, name string, categoryType LedgerType) int {
	if name == "" {
		return 0
	}
	db := config.GetDB()
	var id int
	err := db.WithContext(ctx).Model(&Category{}).
		Where("tenant_id = ? AND name = ? AND type = ?", tenantId, name, categoryType).
		Select("id").Scan(&id).Error
	if err != nil {
		return 0
	}
	return id
}
