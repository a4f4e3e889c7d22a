package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/models"
)

// Institute administration lives outside the accounting core; these read-only
// endpoints let clients resolve the institute ids carried by accounts, ledger
// items and reports.

func ListInstitutesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		institutes, err := models.GetAllInstitutes(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"institutes": institutes})
	}
}

func GetInstituteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid institute id"})
			return
		}
		institute, err := models.GetInstitute(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "institute not found"})
			return
		}
		c.JSON(http.StatusOK, institute)
	}
}
