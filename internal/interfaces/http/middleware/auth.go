package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"smart-upi.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// MerchantIDKey is the context key for the merchant ID
	MerchantIDKey = "merchantId"
	// RoleKey is the context key for the role
	RoleKey = "role"
)

// MerchantAuthMiddleware guards merchant-only endpoints with a bearer token
func MerchantAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid token",
			})
			return
		}

		if claims.Role != jwt.RoleMerchant {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Merchant role required",
			})
			return
		}

		c.Set(MerchantIDKey, claims.MerchantID)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}
