package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
)

// PettyCashFund is the float a custodian draws small expenses from. Issuing
// or replenishing the float, and every voucher spent from it, flow through
// the posting engine under source_tag=petty_cash with the fund id as the
// source id, so one fund's postings form one reversible episode.
type PettyCashFund struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TenantId      string          `gorm:"size:64;index;not null" json:"tenant_id"`
	InstituteId   int             `gorm:"not null;default:0;index" json:"institute_id"`
	CustodianName string          `gorm:"size:255;not null" json:"custodian_name" binding:"required"`
	FloatAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"float_amount"`
	IssuedDate    time.Time       `gorm:"not null" json:"issued_date"`
	IsClosed      *bool           `gorm:"not null;default:false" json:"is_closed"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PettyCashVoucher is one expense paid out of a fund.
type PettyCashVoucher struct {
	ID           int             `gorm:"primary_key" json:"id"`
	TenantId     string          `gorm:"size:64;index;not null" json:"tenant_id"`
	FundId       int             `gorm:"not null;index" json:"fund_id" binding:"required"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Date         time.Time       `gorm:"not null" json:"date"`
	Particulars  string          `gorm:"size:255" json:"particulars"`
	CategoryName string          `gorm:"size:255" json:"category_name"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPettyCashFund struct {
	InstituteId   int             `json:"institute_id"`
	CustodianName string          `json:"custodian_name" binding:"required"`
	FloatAmount   decimal.Decimal `json:"float_amount" binding:"required"`
	IssuedDate    MyDateString    `json:"issued_date" binding:"required"`
}

type NewPettyCashVoucher struct {
	FundId       int             `json:"fund_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Date         MyDateString    `json:"date" binding:"required"`
	Particulars  string          `json:"particulars"`
	CategoryName string          `json:"category_name"`
}

func (input *NewPettyCashFund) Validate(ctx context.Context, tenantId string) error {
	if input.FloatAmount.IsNegative() || input.FloatAmount.IsZero() {
		return errors.New("float amount must be greater than zero")
	}
	if input.InstituteId > 0 {
		if err := utils.ValidateResourceId[Institute](ctx, tenantId, input.InstituteId); err != nil {
			return errors.New("institute not found")
		}
	}
	return nil
}

func (input *NewPettyCashVoucher) Validate(ctx context.Context, tenantId string) error {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return errors.New("amount must be greater than zero")
	}
	if err := utils.ValidateResourceId[PettyCashFund](ctx, tenantId, input.FundId); err != nil {
		return errors.New("petty cash fund not found")
	}
	return nil
}

func GetPettyCashFund(ctx context.Context, id int) (*PettyCashFund, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[PettyCashFund](ctx, tenantId, id)
}

func GetPettyCashVouchers(ctx context.Context, fundId int) ([]*PettyCashVoucher, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	db := config.GetDB()
	var results []*PettyCashVoucher
	err := db.WithContext(ctx).
		Where("tenant_id = ? AND fund_id = ?", tenantId, fundId).
		Order("date ASC, id ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
