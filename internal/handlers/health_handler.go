package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewHealthHandler takes a nil rdb when the cache is disabled.
func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	} else if err := sqlDB.PingContext(c.UserContext()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "disabled"
	if h.rdb != nil {
		cacheStatus = "ok"
		if err := h.rdb.Ping(c.UserContext()).Err(); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
