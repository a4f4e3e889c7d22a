package models

import (
	"time"
)

// User is an admin or office-bearer of the mahall. Credential issuance and
// login live outside the accounting core; this record exists so seeded
// deployments have someone to hand a token to.
type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	TenantId  string    `gorm:"size:64;index;not null" json:"tenant_id"`
	Username  string    `gorm:"size:100;index;not null" json:"username" binding:"required"`
	Name      string    `gorm:"size:255" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:50;default:'admin'" json:"role"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
