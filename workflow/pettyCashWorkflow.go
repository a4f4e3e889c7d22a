package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	pettyCashFloatLedgerName   = "Petty Cash Float"
	pettyCashExpenseLedgerName = "Petty Cash Expenses"
)

// All of a fund's postings (float, replenishments, vouchers) share
// source_tag=petty_cash with the fund id as source id, so the fund is one
// reversible episode. Correcting any part of it reverses the whole episode
// and posts it again from the stored records.

// CreatePettyCashFund issues a float to a custodian and posts it to the
// float ledger.
func CreatePettyCashFund(ctx context.Context, logger *logrus.Logger, input *models.NewPettyCashFund) (*models.PettyCashFund, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	if err := input.Validate(ctx, tenantId); err != nil {
		return nil, PostingResult{}, err
	}
	fund := &models.PettyCashFund{
		TenantId:      tenantId,
		InstituteId:   input.InstituteId,
		CustodianName: input.CustodianName,
		FloatAmount:   input.FloatAmount,
		IssuedDate:    time.Time(input.IssuedDate),
		IsClosed:      utils.NewFalse(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(fund).Error; err != nil {
		return nil, PostingResult{}, err
	}

	req := pettyCashFloatRequest(fund, input.FloatAmount, time.Time(input.IssuedDate))
	if _, err := PostTransaction(ctx, db, logger, req); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fund.ID, tenantId, err)
		return fund, postingFailed(err), nil
	}
	return fund, postingOk(), nil
}

// ReplenishPettyCashFund tops the float back up. The top-up is added to the
// fund's float amount and posted into the same episode.
func ReplenishPettyCashFund(ctx context.Context, logger *logrus.Logger, fundId int, amount decimal.Decimal, date time.Time) (*models.PettyCashFund, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, PostingResult{}, errors.New("amount must be greater than zero")
	}
	fund, err := models.GetPettyCashFund(ctx, fundId)
	if err != nil {
		return nil, PostingResult{}, err
	}
	if fund.IsClosed != nil && *fund.IsClosed {
		return nil, PostingResult{}, errors.New("petty cash fund is closed")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&models.PettyCashFund{}).
		Where("tenant_id = ? AND id = ?", tenantId, fundId).
		Update("float_amount", fund.FloatAmount.Add(amount)).Error
	if err != nil {
		return nil, PostingResult{}, err
	}
	fund.FloatAmount = fund.FloatAmount.Add(amount)

	req := pettyCashFloatRequest(fund, amount, date)
	req.Description = fmt.Sprintf("Petty cash replenishment for %s", fund.CustodianName)
	if _, err := PostTransaction(ctx, db, logger, req); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fund.ID, tenantId, err)
		return fund, postingFailed(err), nil
	}
	return fund, postingOk(), nil
}

// AddPettyCashVoucher records one expense spent from the float and posts it
// to the petty cash expense ledger.
func AddPettyCashVoucher(ctx context.Context, logger *logrus.Logger, input *models.NewPettyCashVoucher) (*models.PettyCashVoucher, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	if err := input.Validate(ctx, tenantId); err != nil {
		return nil, PostingResult{}, err
	}
	fund, err := models.GetPettyCashFund(ctx, input.FundId)
	if err != nil {
		return nil, PostingResult{}, err
	}
	if fund.IsClosed != nil && *fund.IsClosed {
		return nil, PostingResult{}, errors.New("petty cash fund is closed")
	}
	voucher := &models.PettyCashVoucher{
		TenantId:     tenantId,
		FundId:       input.FundId,
		Amount:       input.Amount,
		Date:         time.Time(input.Date),
		Particulars:  input.Particulars,
		CategoryName: input.CategoryName,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(voucher).Error; err != nil {
		return nil, PostingResult{}, err
	}

	if _, err := PostTransaction(ctx, db, logger, pettyCashVoucherRequest(fund, voucher)); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fund.ID, tenantId, err)
		return voucher, postingFailed(err), nil
	}
	return voucher, postingOk(), nil
}

// UpdatePettyCashVoucher corrects one voucher. The whole fund episode is
// reversed and posted again so the ledger reflects the stored records.
func UpdatePettyCashVoucher(ctx context.Context, logger *logrus.Logger, id int, input *models.NewPettyCashVoucher) (*models.PettyCashVoucher, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	if err := input.Validate(ctx, tenantId); err != nil {
		return nil, PostingResult{}, err
	}
	voucher, err := utils.FetchModel[models.PettyCashVoucher](ctx, tenantId, id)
	if err != nil {
		return nil, PostingResult{}, err
	}
	if voucher.FundId != input.FundId {
		return nil, PostingResult{}, errors.New("voucher cannot be moved to another fund")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&models.PettyCashVoucher{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Updates(map[string]interface{}{
			"amount":        input.Amount,
			"date":          time.Time(input.Date),
			"particulars":   input.Particulars,
			"category_name": input.CategoryName,
		}).Error
	if err != nil {
		return nil, PostingResult{}, err
	}
	voucher, err = utils.FetchModel[models.PettyCashVoucher](ctx, tenantId, id)
	if err != nil {
		return nil, PostingResult{}, err
	}

	result := repostPettyCashEpisode(ctx, logger, tenantId, voucher.FundId)
	return voucher, result, nil
}

// DeletePettyCashVoucher removes one voucher and reposts the fund episode.
func DeletePettyCashVoucher(ctx context.Context, logger *logrus.Logger, id int) (PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return PostingResult{}, errors.New("tenant id is required")
	}
	voucher, err := utils.FetchModel[models.PettyCashVoucher](ctx, tenantId, id)
	if err != nil {
		return PostingResult{}, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Delete(&models.PettyCashVoucher{}).Error
	if err != nil {
		return PostingResult{}, err
	}
	return repostPettyCashEpisode(ctx, logger, tenantId, voucher.FundId), nil
}

// ClosePettyCashFund marks the fund closed and reverses its entire episode,
// returning the float to the institute account.
func ClosePettyCashFund(ctx context.Context, logger *logrus.Logger, id int) (*models.PettyCashFund, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	fund, err := models.GetPettyCashFund(ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := ReversePosting(ctx, db, logger, tenantId, models.SourceTagPettyCash, fund.ID); err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Model(&models.PettyCashFund{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Update("is_closed", true).Error
	if err != nil {
		return nil, err
	}
	fund.IsClosed = utils.NewTrue()
	return fund, nil
}

// repostPettyCashEpisode rebuilds a fund's postings from its stored records:
// reverse everything, then post the current float as one item plus every
// remaining voucher.
func repostPettyCashEpisode(ctx context.Context, logger *logrus.Logger, tenantId string, fundId int) PostingResult {
	db := config.GetDB()
	if err := ReversePosting(ctx, db, logger, tenantId, models.SourceTagPettyCash, fundId); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fundId, tenantId, err)
		return postingFailed(err)
	}
	fund, err := models.GetPettyCashFund(ctx, fundId)
	if err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fundId, tenantId, err)
		return postingFailed(err)
	}
	if _, err := PostTransaction(ctx, db, logger, pettyCashFloatRequest(fund, fund.FloatAmount, fund.IssuedDate)); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fundId, tenantId, err)
		return postingFailed(err)
	}
	vouchers, err := models.GetPettyCashVouchers(ctx, fundId)
	if err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fundId, tenantId, err)
		return postingFailed(err)
	}
	for _, voucher := range vouchers {
		if _, err := PostTransaction(ctx, db, logger, pettyCashVoucherRequest(fund, voucher)); err != nil {
			config.LogPostingFailure(logger, string(models.SourceTagPettyCash), fundId, tenantId, err)
			return postingFailed(err)
		}
	}
	return postingOk()
}

func pettyCashFloatRequest(fund *models.PettyCashFund, amount decimal.Decimal, date time.Time) PostingRequest {
	return PostingRequest{
		TenantId:    fund.TenantId,
		InstituteId: fund.InstituteId,
		LedgerName:  pettyCashFloatLedgerName,
		LedgerType:  models.LedgerTypeExpense,
		Amount:      amount,
		Date:        date,
		Description: fmt.Sprintf("Petty cash float issued to %s", fund.CustodianName),
		SourceTag:   models.SourceTagPettyCash,
		SourceId:    fund.ID,
	}
}

func pettyCashVoucherRequest(fund *models.PettyCashFund, voucher *models.PettyCashVoucher) PostingRequest {
	return PostingRequest{
		TenantId:     fund.TenantId,
		InstituteId:  fund.InstituteId,
		LedgerName:   pettyCashExpenseLedgerName,
		LedgerType:   models.LedgerTypeExpense,
		Amount:       voucher.Amount,
		Date:         voucher.Date,
		Description:  voucher.Particulars,
		CategoryName: voucher.CategoryName,
		SourceTag:    models.SourceTagPettyCash,
		SourceId:     fund.ID,
	}
}
