package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/models/reports"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PostingRequest carries everything the posting engine needs to record one
// financial event. The ledger is addressed by name and classification and is
// auto-created on first use.
type PostingRequest struct {
	TenantId      string
	InstituteId   int
	LedgerName    string
	LedgerType    models.LedgerType
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	CategoryName  string
	PaymentMethod string
	ReferenceNo   string
	SourceTag     models.SourceTag
	SourceId      int
}

// PostingResult reports the outcome of a best-effort posting attached to a
// primary operation. When the primary write succeeded but posting failed, the
// caller returns the record together with Posted=false instead of an error.
type PostingResult struct {
	Posted bool   `json:"posted"`
	Error  string `json:"error,omitempty"`
}

func postingOk() PostingResult {
	return PostingResult{Posted: true}
}

func postingFailed(err error) PostingResult {
	return PostingResult{Posted: false, Error: err.Error()}
}

// PostTransaction resolves the target ledger, appends one ledger item and
// moves the selected institute account balance by the signed amount.
//
// The ledger item is the system of record: if the balance step fails after the
// item was written, the item is kept and the error is returned for the caller
// to log. Reports read from ledger items, so they stay correct either way.
func PostTransaction(ctx context.Context, db *gorm.DB, logger *logrus.Logger, req PostingRequest) (*models.LedgerItem, error) {
	if req.TenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	if !req.LedgerType.IsValid() {
		return nil, errors.New("invalid ledger type")
	}
	if !req.SourceTag.IsValid() {
		return nil, errors.New("invalid source tag")
	}

	var item *models.LedgerItem
	var balanceErr error
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquireTenantPostingLock(tx, req.TenantId); err != nil {
			return err
		}
		defer ReleaseTenantPostingLock(tx, req.TenantId)

		ledger, err := models.FindOrCreateLedger(ctx, tx, req.TenantId, req.InstituteId, req.LedgerName, req.LedgerType)
		if err != nil {
			return err
		}

		item = &models.LedgerItem{
			TenantId:      req.TenantId,
			InstituteId:   req.InstituteId,
			LedgerId:      ledger.ID,
			Type:          ledger.Type,
			Date:          req.Date,
			Amount:        req.Amount,
			Description:   req.Description,
			CategoryId:    models.FindCategoryByName(ctx, req.TenantId, req.CategoryName, ledger.Type),
			PaymentMethod: req.PaymentMethod,
			ReferenceNo:   req.ReferenceNo,
			SourceTag:     req.SourceTag,
			SourceId:      req.SourceId,
		}
		if err := tx.WithContext(ctx).Create(item).Error; err != nil {
			return err
		}

		// The item is committed even when the balance step below fails.
		if req.InstituteId > 0 {
			account, err := SelectPostingAccount(ctx, tx, req.TenantId, req.InstituteId)
			if err != nil {
				balanceErr = err
				return nil
			}
			if account != nil {
				delta := SignedDelta(ledger.Type, req.Amount)
				if err := models.ApplyBalanceDelta(ctx, tx, account.ID, delta); err != nil {
					balanceErr = err
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateReportCache(logger, req.TenantId)
	if balanceErr != nil {
		config.LogError(logger, "postingWorkflow.go", "PostTransaction", "ApplyBalanceDelta", req, balanceErr)
		return item, balanceErr
	}
	return item, nil
}

// ReversePosting undoes the posting episode identified by (source_tag,
// source_id): every matching ledger item's balance effect is inverted against
// the institute account, then the items are deleted. Reversing an episode
// that was never posted, or was already reversed, is a no-op.
func ReversePosting(ctx context.Context, db *gorm.DB, logger *logrus.Logger, tenantId string, sourceTag models.SourceTag, sourceId int) error {
	if tenantId == "" {
		return errors.New("tenant id is required")
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := AcquireTenantPostingLock(tx, tenantId); err != nil {
			return err
		}
		defer ReleaseTenantPostingLock(tx, tenantId)

		items, err := models.FindLedgerItemsBySource(ctx, tx, tenantId, sourceTag, sourceId)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for _, item := range items {
			if item.InstituteId <= 0 {
				continue
			}
			account, err := SelectPostingAccount(ctx, tx, tenantId, item.InstituteId)
			if err != nil {
				return err
			}
			if account == nil {
				// No active account now means the original posting made no
				// balance move either under the same policy.
				continue
			}
			delta := SignedDelta(item.Type, item.Amount).Neg()
			if err := models.ApplyBalanceDelta(ctx, tx, account.ID, delta); err != nil {
				return err
			}
		}
		reversalCtx := models.WithReversalDelete(ctx)
		return tx.WithContext(reversalCtx).
			Where("tenant_id = ? AND source_tag = ? AND source_id = ?", tenantId, sourceTag, sourceId).
			Delete(&models.LedgerItem{}).Error
	})
	if err != nil {
		return err
	}
	invalidateReportCache(logger, tenantId)
	return nil
}

// invalidateReportCache drops the tenant's cached reports after a committed
// post or reversal. Cache trouble never fails the posting that caused it.
func invalidateReportCache(logger *logrus.Logger, tenantId string) {
	if err := reports.InvalidateTenantCache(tenantId); err != nil {
		config.LogError(logger, "postingWorkflow.go", "invalidateReportCache", "InvalidateTenantCache", tenantId, err)
	}
}

// SignedDelta maps a transaction onto an account balance move: income adds,
// expense subtracts.
func SignedDelta(ledgerType models.LedgerType, amount decimal.Decimal) decimal.Decimal {
	if ledgerType == models.LedgerTypeExpense {
		return amount.Neg()
	}
	return amount
}
