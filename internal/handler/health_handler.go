package handler

import (
	"net/http"

	"auth-service/config"
	"auth-service/internal/model/requestresponse"
)

type HealthHandler struct {
	db    *config.Database
	redis *config.RedisClient
}

func NewHealthHandler(db *config.Database, redis *config.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health godoc
// @Summary Состояние сервиса
// @Description Проверяет доступность БД и Redis
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := requestresponse.HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Redis:    "connected",
	}

	if err := h.db.PingContext(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "error: " + err.Error()
	}
	if err := h.redis.Client.Ping(r.Context()).Err(); err != nil {
		resp.Status = "degraded"
		resp.Redis = "error: " + err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}
