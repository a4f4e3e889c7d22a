package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
)

type SalaryStatus string

const (
	SalaryStatusPending SalaryStatus = "pending"
	SalaryStatusPaid    SalaryStatus = "paid"
)

// SalaryPayment is the payroll record the posting engine consumes. Staff
// administration itself lives outside the accounting core; only the name and
// amount are carried here.
type SalaryPayment struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TenantId      string          `gorm:"size:64;index;not null" json:"tenant_id"`
	InstituteId   int             `gorm:"not null;default:0;index" json:"institute_id"`
	StaffName     string          `gorm:"size:255;not null" json:"staff_name" binding:"required"`
	Month         string          `gorm:"size:7;not null" json:"month" binding:"required"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Status        SalaryStatus    `gorm:"type:enum('pending','paid');default:'pending'" json:"status"`
	PaidDate      *time.Time      `json:"paid_date"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	ReferenceNo   string          `gorm:"size:100" json:"reference_no"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSalaryPayment struct {
	InstituteId   int             `json:"institute_id"`
	StaffName     string          `json:"staff_name" binding:"required"`
	Month         string          `json:"month" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	ReferenceNo   string          `json:"reference_no"`
}

func (input *NewSalaryPayment) Validate(ctx context.Context, tenantId string) error {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return errors.New("amount must be greater than zero")
	}
	if input.InstituteId > 0 {
		if err := utils.ValidateResourceId[Institute](ctx, tenantId, input.InstituteId); err != nil {
			return errors.New("institute not found")
		}
	}
	return nil
}

func GetSalaryPayment(ctx context.Context, id int) (*SalaryPayment, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[SalaryPayment](ctx, tenantId, id)
}

func GetAllSalaryPayments(ctx context.Context, instituteId *int, month *string) ([]*SalaryPayment, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	if instituteId != nil && *instituteId > 0 {
		dbCtx = dbCtx.Where("institute_id = ?", *instituteId)
	}
	if month != nil && *month != "" {
		dbCtx = dbCtx.Where("month = ?", *month)
	}
	var results []*SalaryPayment
	if err := dbCtx.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
