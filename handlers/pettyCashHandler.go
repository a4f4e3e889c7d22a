package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/workflow"
	"github.com/shopspring/decimal"
)

func CreatePettyCashFundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPettyCashFund
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		fund, posting, err := workflow.CreatePettyCashFund(c.Request.Context(), logger, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fund": fund, "posting": posting})
	}
}

type replenishRequest struct {
	Amount decimal.Decimal     `json:"amount" binding:"required"`
	Date   models.MyDateString `json:"date" binding:"required"`
}

func ReplenishPettyCashFundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund id"})
			return
		}
		var req replenishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		fund, posting, err := workflow.ReplenishPettyCashFund(c.Request.Context(), logger, id, req.Amount, time.Time(req.Date))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fund": fund, "posting": posting})
	}
}

func ClosePettyCashFundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund id"})
			return
		}
		logger := config.GetLogger()
		fund, err := workflow.ClosePettyCashFund(c.Request.Context(), logger, id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, fund)
	}
}

func GetPettyCashFundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fund id"})
			return
		}
		fund, err := models.GetPettyCashFund(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "petty cash fund not found"})
			return
		}
		vouchers, err := models.GetPettyCashVouchers(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"fund": fund, "vouchers": vouchers})
	}
}

func AddPettyCashVoucherHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPettyCashVoucher
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		voucher, posting, err := workflow.AddPettyCashVoucher(c.Request.Context(), logger, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"voucher": voucher, "posting": posting})
	}
}

func UpdatePettyCashVoucherHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voucher id"})
			return
		}
		var input models.NewPettyCashVoucher
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		voucher, posting, err := workflow.UpdatePettyCashVoucher(c.Request.Context(), logger, id, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"voucher": voucher, "posting": posting})
	}
}

func DeletePettyCashVoucherHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voucher id"})
			return
		}
		logger := config.GetLogger()
		posting, err := workflow.DeletePettyCashVoucher(c.Request.Context(), logger, id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true, "posting": posting})
	}
}
