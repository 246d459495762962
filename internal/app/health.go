package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"dayflow-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func healthHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Database: "up", Redis: "up"}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			resp.Status, resp.Database = "degraded", "down"
			status = http.StatusServiceUnavailable
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				resp.Status, resp.Redis = "degraded", "down"
				status = http.StatusServiceUnavailable
			}
		}

		response.Success(c, status, resp, nil)
	}
}
