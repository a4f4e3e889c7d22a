package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/models"
)

func CreateInstituteAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInstituteAccount
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		account, err := models.CreateInstituteAccount(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func UpdateInstituteAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
			return
		}
		var input models.NewInstituteAccount
		if err := c.ShouldBindJSON(&input); err != nil {
			bindError(c, err)
			return
		}
		account, err := models.UpdateInstituteAccount(c.Request.Context(), id, &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func SetInstituteAccountActiveHandler(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
			return
		}
		account, err := models.SetInstituteAccountActive(c.Request.Context(), id, active)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func GetInstituteAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
			return
		}
		account, err := models.GetInstituteAccount(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func ListInstituteAccountsHandler() gin.HandlerFunc {
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
		activeOnly := c.Query("active_only") == "true"
		accounts, err := models.GetAllInstituteAccounts(c.Request.Context(), instituteId, activeOnly)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accounts": accounts})
	}
}
