package models

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InstituteAccount is a bank/cash account held by an institute. Its balance
// is maintained purely by signed deltas from the posting engine - it is never
// recomputed from the transaction log.
type InstituteAccount struct {
	ID            int             `gorm:"primary_key" json:"id"`
	TenantId      string          `gorm:"size:64;not null;index;index:idx_ia_tenant_institute,priority:1" json:"tenant_id"`
	InstituteId   int             `gorm:"not null;index;index:idx_ia_tenant_institute,priority:2" json:"institute_id" binding:"required"`
	Name          string          `gorm:"size:255;not null" json:"name" binding:"required"`
	BankName      string          `gorm:"size:255" json:"bank_name"`
	AccountNumber string          `gorm:"size:50" json:"account_number"`
	IfscCode      string          `gorm:"size:20" json:"ifsc_code"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInstituteAccount struct {
	InstituteId   int             `json:"institute_id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	IfscCode      string          `json:"ifsc_code"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
}

func (input *NewInstituteAccount) validate(ctx context.Context, tenantId string, id int) error {
	if err := utils.ValidateResourceId[Institute](ctx, tenantId, input.InstituteId); err != nil {
		return errors.New("institute not found")
	}
	if err := utils.ValidateUnique[InstituteAccount](ctx, tenantId, "name", input.Name, id); err != nil {
		return err
	}
	return nil
}

func CreateInstituteAccount(ctx context.Context, input *NewInstituteAccount) (*InstituteAccount, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	if err := input.validate(ctx, tenantId, 0); err != nil {
		return nil, err
	}

	// OpeningAmount seeds the balance at creation; this is the one write
	// outside ApplyBalanceDelta. Every later move is a signed delta.
	account := InstituteAccount{
		TenantId:      tenantId,
		InstituteId:   input.InstituteId,
		Name:          input.Name,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		IfscCode:      input.IfscCode,
		Balance:       input.OpeningAmount,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func UpdateInstituteAccount(ctx context.Context, id int, input *NewInstituteAccount) (*InstituteAccount, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	if err := input.validate(ctx, tenantId, id); err != nil {
		return nil, err
	}
	account, err := utils.FetchModel[InstituteAccount](ctx, tenantId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	// Balance is deliberately absent: only the posting engine moves it.
	err = db.WithContext(ctx).Model(&account).Updates(map[string]interface{}{
		"InstituteId":   input.InstituteId,
		"Name":          input.Name,
		"BankName":      input.BankName,
		"AccountNumber": input.AccountNumber,
		"IfscCode":      input.IfscCode,
	}).Error
	if err != nil {
		return nil, err
	}
	return account, nil
}

func SetInstituteAccountActive(ctx context.Context, id int, active bool) (*InstituteAccount, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	account, err := utils.FetchModel[InstituteAccount](ctx, tenantId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&account).Update("IsActive", active).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func GetInstituteAccount(ctx context.Context, id int) (*InstituteAccount, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	return utils.FetchModel[InstituteAccount](ctx, tenantId, id)
}

func GetAllInstituteAccounts(ctx context.Context, instituteId *int, activeOnly bool) ([]*InstituteAccount, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("tenant_id = ?", tenantId)
	if instituteId != nil && *instituteId > 0 {
		dbCtx = dbCtx.Where("institute_id = ?", *instituteId)
	}
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	var results []*InstituteAccount
	if err := dbCtx.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FirstActiveAccount returns the earliest-created active account of the
// institute, or nil when the institute has no active account.
func FirstActiveAccount(ctx context.Context, tx *gorm.DB, tenantId string, instituteId int) (*InstituteAccount, error) {
	var account InstituteAccount
	err := tx.WithContext(ctx).
		Where("tenant_id = ? AND institute_id = ? AND is_active = ?", tenantId, instituteId, true).
		Order("created_at ASC, id ASC").
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ApplyBalanceDelta increments the account balance atomically in the store,
// avoiding read-modify-write lost updates under concurrent postings.
func ApplyBalanceDelta(ctx context.Context, tx *gorm.DB, accountId int, delta decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&InstituteAccount{}).
		Where("id = ?", accountId).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
}
