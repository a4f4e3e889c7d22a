package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/models/reports"
)

func DayBookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.DayBookFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetDayBookReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func TrialBalanceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.TrialBalanceFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetTrialBalanceReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func BalanceSheetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.BalanceSheetFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetBalanceSheetReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func LedgerStatementHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.LedgerStatementFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetLedgerStatementReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func IncomeExpenditureHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.IncomeExpenditureFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetIncomeExpenditureReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func ConsolidatedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.ConsolidatedFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetConsolidatedReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func DayBookExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.DayBookFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetDayBookReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f, err := reports.ExportDayBookExcel(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Type", excelContentType)
		c.Header("Content-Disposition", "attachment; filename=day-book.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}

func TrialBalanceExportHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var filter reports.TrialBalanceFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		report, err := reports.GetTrialBalanceReport(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		f, err := reports.ExportTrialBalanceExcel(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Type", excelContentType)
		c.Header("Content-Disposition", "attachment; filename=trial-balance.xlsx")
		if err := f.Write(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
	}
}
