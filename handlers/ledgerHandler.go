package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/models"
)

// Ledgers are created by the posting engine, never through the API; these
// endpoints are read-only.

func ListLedgersHandler() gin.HandlerFunc {
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
		ledgers, err := models.GetAllLedgers(c.Request.Context(), instituteId)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ledgers": ledgers})
	}
}

func GetLedgerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ledger id"})
			return
		}
		ledger, err := models.GetLedger(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "ledger not found"})
			return
		}
		c.JSON(http.StatusOK, ledger)
	}
}

func ListCategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryType *models.LedgerType
		if v := c.Query("type"); v != "" {
			t := models.LedgerType(v)
			if !t.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
				return
			}
			categoryType = &t
		}
		categories, err := models.GetAllCategories(c.Request.Context(), categoryType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func GetCategoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		category, err := models.GetCategory(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}
