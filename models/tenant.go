package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
)

// Tenant is one mahall organization. All other records hang off its id.
type Tenant struct {
	ID        string    `gorm:"primary_key;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name" binding:"required"`
	Place     string    `gorm:"size:255" json:"place"`
	Timezone  string    `gorm:"size:64" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetTenant(ctx context.Context) (*Tenant, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return GetTenantById(ctx, tenantId)
}

func GetTenantById(ctx context.Context, tenantId string) (*Tenant, error) {
	var tenant Tenant

	cacheKey := "tenant:" + tenantId
	exists, err := config.GetRedisObject(cacheKey, &tenant)
	if err != nil {
		return nil, err
	}
	if exists && tenant.ID != "" {
		return &tenant, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).First(&tenant, "id = ?", tenantId).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	_ = config.SetRedisObject(cacheKey, &tenant, time.Hour)
	return &tenant, nil
}
