package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response/wrapper"
	service "github.com/imperia-dev/imperia-data-insight-sub000/internal/service/integration_client"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/service/redis"
	"github.com/imperia-dev/imperia-data-insight-sub000/pkg/utils"
)

func AuthenticationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Missing authentication token", Success: false})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			fmt.Println("Error validating token", err)
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{Message: "Invalid authentication token", Success: false})
			c.Abort()
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Next()
	}
}

func SwaggerHostMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			host := c.Request.Host
			if !strings.HasPrefix(host, "imperia-insight.app") {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "Access denied",
				})
				return
			}
		}
		c.Next()
	}
}

// APIKeyMiddleware validates the X-API-Key header against registered
// integration clients (e.g. the WhatsApp report bot).
func APIKeyMiddleware(integrationClientService service.IntegrationClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")

		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "X-API-Key header is required",
				Success: false,
			})
			c.Abort()
			return
		}

		client, err := integrationClientService.ValidateAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
				Message: "Invalid or inactive API key",
				Success: false,
			})
			c.Abort()
			return
		}

		c.Set("integration_client", client)
		c.Set("integration_client_id", client.ID.String())
		c.Set("integration_client_name", client.Name)

		c.Next()
	}
}

// OptionalAPIKeyMiddleware validates the API key only when one is sent;
// requests without a key pass through unauthenticated.
func OptionalAPIKeyMiddleware(integrationClientService service.IntegrationClientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")

		if apiKey != "" {
			client, err := integrationClientService.ValidateAPIKey(c.Request.Context(), apiKey)
			if err == nil {
				c.Set("integration_client", client)
				c.Set("integration_client_id", client.ID.String())
				c.Set("integration_client_name", client.Name)
			}
		}

		c.Next()
	}
}

// RateLimitMiddleware throttles API-key clients per minute. Keyed by the
// integration client ID when authenticated, otherwise by client IP.
// Without a Redis connection no limiting happens.
func RateLimitMiddleware(redisService redis.ServiceInterface, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisService == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		if clientID, exists := c.Get("integration_client_id"); exists {
			key = clientID.(string)
		}

		allowed, err := redisService.CheckRateLimit(c.Request.Context(), "rate_limit:"+key, limit, time.Minute)
		if err != nil {
			// fail open on redis errors
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, wrapper.ErrorWrapper{
				Message: "Rate limit exceeded",
				Success: false,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
