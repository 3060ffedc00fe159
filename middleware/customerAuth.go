package middleware

import (
	"context"
	"net/http"
	"strings"

	"voltcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthCustomerMiddleware authenticates the customer from the bearer token.
// Validated tokens are cached in Redis by hash so repeat requests skip the
// signature check. The raw token is kept in the request context because the
// platform collaborators expect it passed through.
func JWTAuthCustomerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + computedHash

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			customerID, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil && customerID != "" {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				setCustomer(c, customerID, tokenString)
				c.Next()
				return
			}
			if err != nil && err != redis.Nil {
				utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v", err)
			}
		}

		customerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		if authCache != nil {
			if err := authCache.Set(ctx, cacheKey, customerID, utils.AuthCacheTTL).Err(); err != nil {
				utils.GetLogger().Sugar().Warnf("failed to cache auth token: %v", err)
			}
		}

		setCustomer(c, customerID, tokenString)
		c.Next()
	}
}

func setCustomer(c *gin.Context, customerID, token string) {
	c.Set("customerID", customerID)
	c.Set("authToken", token)
}

// CustomerID returns the authenticated customer's id from the request context.
func CustomerID(c *gin.Context) string {
	return c.GetString("customerID")
}

// AuthToken returns the raw bearer token for pass-through to the platform.
func AuthToken(c *gin.Context) string {
	return c.GetString("authToken")
}
