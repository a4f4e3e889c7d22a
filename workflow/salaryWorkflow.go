package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/sirupsen/logrus"
)

const salaryLedgerName = "Salaries"

// CreateSalaryPayment records a pending payroll entry. Nothing is posted
// until the payment is marked paid.
func CreateSalaryPayment(ctx context.Context, input *models.NewSalaryPayment) (*models.SalaryPayment, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, errors.New("tenant id is required")
	}
	if err := input.Validate(ctx, tenantId); err != nil {
		return nil, err
	}
	payment := &models.SalaryPayment{
		TenantId:      tenantId,
		InstituteId:   input.InstituteId,
		StaffName:     input.StaffName,
		Month:         input.Month,
		Amount:        input.Amount,
		Status:        models.SalaryStatusPending,
		PaymentMethod: input.PaymentMethod,
		ReferenceNo:   input.ReferenceNo,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkSalaryPaid flips a pending payment to paid and posts the expense.
// The status change is the primary write; a posting failure is logged and
// reported through PostingResult, never rolled back.
func MarkSalaryPaid(ctx context.Context, logger *logrus.Logger, id int, paidDate time.Time) (*models.SalaryPayment, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	payment, err := models.GetSalaryPayment(ctx, id)
	if err != nil {
		return nil, PostingResult{}, err
	}
	if payment.Status == models.SalaryStatusPaid {
		return nil, PostingResult{}, errors.New("salary payment is already paid")
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&models.SalaryPayment{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Updates(map[string]interface{}{"status": models.SalaryStatusPaid, "paid_date": paidDate}).Error
	if err != nil {
		return nil, PostingResult{}, err
	}
	payment.Status = models.SalaryStatusPaid
	payment.PaidDate = &paidDate

	if _, err := PostTransaction(ctx, db, logger, salaryPostingRequest(payment, paidDate)); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagSalary), payment.ID, tenantId, err)
		return payment, postingFailed(err), nil
	}
	return payment, postingOk(), nil
}

// UpdateSalaryPayment edits a payroll entry. For a paid entry the old posting
// is reversed and the corrected amounts are posted again.
func UpdateSalaryPayment(ctx context.Context, logger *logrus.Logger, id int, input *models.NewSalaryPayment) (*models.SalaryPayment, PostingResult, error) {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return nil, PostingResult{}, errors.New("tenant id is required")
	}
	if err := input.Validate(ctx, tenantId); err != nil {
		return nil, PostingResult{}, err
	}
	payment, err := models.GetSalaryPayment(ctx, id)
	if err != nil {
		return nil, PostingResult{}, err
	}

	db := config.GetDB()
	if payment.Status == models.SalaryStatusPaid {
		if err := ReversePosting(ctx, db, logger, tenantId, models.SourceTagSalary, payment.ID); err != nil {
			return nil, PostingResult{}, err
		}
	}

	err = db.WithContext(ctx).Model(&models.SalaryPayment{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Updates(map[string]interface{}{
			"institute_id":   input.InstituteId,
			"staff_name":     input.StaffName,
			"month":          input.Month,
			"amount":         input.Amount,
			"payment_method": input.PaymentMethod,
			"reference_no":   input.ReferenceNo,
		}).Error
	if err != nil {
		return nil, PostingResult{}, err
	}
	payment, err = models.GetSalaryPayment(ctx, id)
	if err != nil {
		return nil, PostingResult{}, err
	}

	if payment.Status != models.SalaryStatusPaid {
		return payment, postingOk(), nil
	}
	paidDate := time.Now().UTC()
	if payment.PaidDate != nil {
		paidDate = *payment.PaidDate
	}
	if _, err := PostTransaction(ctx, db, logger, salaryPostingRequest(payment, paidDate)); err != nil {
		config.LogPostingFailure(logger, string(models.SourceTagSalary), payment.ID, tenantId, err)
		return payment, postingFailed(err), nil
	}
	return payment, postingOk(), nil
}

// DeleteSalaryPayment removes a payroll entry, reversing its posting first
// when it was paid.
func DeleteSalaryPayment(ctx context.Context, logger *logrus.Logger, id int) error {
	tenantId, ok := utils.GetTenantIdFromContext(ctx)
	if !ok || tenantId == "" {
		return errors.New("tenant id is required")
	}
	payment, err := models.GetSalaryPayment(ctx, id)
	if err != nil {
		return err
	}
	db := config.GetDB()
	if payment.Status == models.SalaryStatusPaid {
		if err := ReversePosting(ctx, db, logger, tenantId, models.SourceTagSalary, payment.ID); err != nil {
			return err
		}
	}
	return db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Delete(&models.SalaryPayment{}).Error
}

func salaryPostingRequest(payment *models.SalaryPayment, paidDate time.Time) PostingRequest {
	return PostingRequest{
		TenantId:      payment.TenantId,
		InstituteId:   payment.InstituteId,
		LedgerName:    salaryLedgerName,
		LedgerType:    models.LedgerTypeExpense,
		Amount:        payment.Amount,
		Date:          paidDate,
		Description:   fmt.Sprintf("Salary for %s (%s)", payment.StaffName, payment.Month),
		CategoryName:  "Salary",
		PaymentMethod: payment.PaymentMethod,
		ReferenceNo:   payment.ReferenceNo,
		SourceTag:     models.SourceTagSalary,
		SourceId:      payment.ID,
	}
}
