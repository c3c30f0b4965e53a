package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS libera o app de campo durante o desenvolvimento (Expo web envia
// Origin; o app nativo não). A API só usa GET/POST/DELETE, e Content-
// Disposition precisa ser exposto para o download dos recibos.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		c.Header("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
