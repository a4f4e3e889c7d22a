package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/utils"
)

// Institute is a sub-organization of a mahall (madrassa, masjid, library...).
// Full institute administration lives outside the accounting core; this
// record is what ledger items and accounts reference.
type Institute struct {
	ID        int       `gorm:"primary_key" json:"id"`
	TenantId  string    `gorm:"size:64;index;not null" json:"tenant_id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetInstitute(ctx context.Context, id int) (*Institute, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[Institute](ctx, tenantId, id)
}

func GetAllInstitutes(ctx context.Context) ([]*Institute, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchAllModels[Institute](ctx, tenantId)
}
