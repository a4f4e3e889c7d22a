package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/utils"
	"github.com/mmsanduk/mahall_backend/workflow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type manualEntryRequest struct {
	InstituteId   int                 `json:"institute_id"`
	LedgerName    string              `json:"ledger_name" binding:"required"`
	Type          models.LedgerType   `json:"type" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	Date          models.MyDateString `json:"date" binding:"required"`
	Description   string              `json:"description"`
	CategoryName  string              `json:"category_name"`
	PaymentMethod string              `json:"payment_method"`
	ReferenceNo   string              `json:"reference_no"`
}

// ManualEntryHandler posts a one-off transaction straight into the ledger.
// Manual entries carry source_id 0, so they do not form a reversible episode.
func ManualEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantId, ok := utils.GetTenantIdFromContext(c.Request.Context())
		if !ok || tenantId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var req manualEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		if !req.Type.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
			return
		}
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than zero"})
			return
		}
		if req.InstituteId > 0 {
			if err := utils.ValidateResourceId[models.Institute](c.Request.Context(), tenantId, req.InstituteId); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "institute not found"})
				return
			}
		}

		logger := config.GetLogger()
		userId, _ := utils.GetUserIdFromContext(c.Request.Context())
		item, err := workflow.PostTransaction(c.Request.Context(), config.GetDB(), logger, workflow.PostingRequest{
			TenantId:      tenantId,
			InstituteId:   req.InstituteId,
			LedgerName:    req.LedgerName,
			LedgerType:    req.Type,
			Amount:        req.Amount,
			Date:          time.Time(req.Date),
			Description:   req.Description,
			CategoryName:  req.CategoryName,
			PaymentMethod: req.PaymentMethod,
			ReferenceNo:   req.ReferenceNo,
			SourceTag:     models.SourceTagManual,
			SourceId:      0,
		})
		if err != nil {
			if item != nil {
				// Entry recorded; only the balance move failed.
				c.JSON(http.StatusOK, gin.H{"entry": item, "posting": workflow.PostingResult{Posted: false, Error: err.Error()}})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Manual entries bypass every document workflow, so they get their
		// own audit trail.
		logger.WithFields(logrus.Fields{
			"tenant_id": tenantId,
			"user_id":   userId,
			"ledger":    req.LedgerName,
			"amount":    req.Amount.String(),
			"item_id":   item.ID,
		}).Info("manual entry posted")
		c.JSON(http.StatusOK, gin.H{"entry": item, "posting": workflow.PostingResult{Posted: true}})
	}
}
