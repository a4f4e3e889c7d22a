package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/config"
	"github.com/mmsanduk/mahall_backend/models"
	"github.com/mmsanduk/mahall_backend/workflow"
)

func CreateSalaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSalaryPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		payment, err := workflow.CreateSalaryPayment(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

type paySalaryRequest struct {
	PaidDate models.MyDateString `json:"paid_date" binding:"required"`
}

func PaySalaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid salary id"})
			return
		}
		var req paySalaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		payment, posting, err := workflow.MarkSalaryPaid(c.Request.Context(), logger, id, time.Time(req.PaidDate))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"salary": payment, "posting": posting})
	}
}

func UpdateSalaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid salary id"})
			return
		}
		var input models.NewSalaryPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		logger := config.GetLogger()
		payment, posting, err := workflow.UpdateSalaryPayment(c.Request.Context(), logger, id, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"salary": payment, "posting": posting})
	}
}

func DeleteSalaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid salary id"})
			return
		}
		logger := config.GetLogger()
		if err := workflow.DeleteSalaryPayment(c.Request.Context(), logger, id); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func GetSalaryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid salary id"})
			return
		}
		payment, err := models.GetSalaryPayment(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "salary payment not found"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

func ListSalariesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var instituteId *int
		if v := c.Query("institute_id"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid institute_id"})
				return
			}
			instituteId = &n
		}
		var month *string
		if v := c.Query("month"); v != "" {
			month = &v
		}
		payments, err := models.GetAllSalaryPayments(c.Request.Context(), instituteId, month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"salaries": payments})
	}
}
