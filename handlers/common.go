package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mmsanduk/mahall_backend/utils"
)

// bindError answers a failed request bind. Validation failures report the
// offending fields; anything else is just a malformed request.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(verrs)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}
