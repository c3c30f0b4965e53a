package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health informa a saúde da API e dos dois backends. O app de campo consulta
// este endpoint para decidir entre modo online e offline; 503 com o detalhe
// por backend quando qualquer um está fora.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "indisponivel"
		}

		redisEstado := "ok"
		if rdb.Ping(ctx).Err() != nil {
			redisEstado = "indisponivel"
		}

		status := http.StatusOK
		estado := "ok"
		if postgres != "ok" || redisEstado != "ok" {
			status = http.StatusServiceUnavailable
			estado = "degradado"
		}

		c.JSON(status, gin.H{
			"status":   estado,
			"servico":  "bymen-api",
			"postgres": postgres,
			"redis":    redisEstado,
		})
	}
}
