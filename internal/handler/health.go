package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings postgres and redis with a short deadline. 503 when either is
// down, so the load balancer stops routing before requests start failing.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "down"
		}
		cache := "ok"
		if rdb.Ping(ctx).Err() != nil {
			cache = "down"
		}

		status := http.StatusOK
		if postgres != "ok" || cache != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"postgres": postgres,
			"redis":    cache,
		})
	}
}
