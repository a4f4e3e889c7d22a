package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmsanduk/mahall_backend/utils"
)

// AuthMiddleware validates a Bearer token when one is present and loads the
// caller's tenant and user into the request context. Requests without a
// token pass through unauthenticated; RequireTenant gates the routes that
// need one.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claim, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok || claim.TenantId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), auth)
		ctx = utils.SetTenantIdInContext(ctx, claim.TenantId)
		ctx = utils.SetUserIdInContext(ctx, claim.ID)
		if claim.Role == "admin" {
			ctx = utils.SetIsAdminInContext(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireTenant rejects requests that did not authenticate with a tenant.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantId, ok := utils.GetTenantIdFromContext(c.Request.Context())
		if !ok || tenantId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
