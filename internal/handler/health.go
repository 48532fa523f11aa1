// File: internal/handler/health.go
package handler

import (
	"net/http"

	"gemini-users/internal/api"
	"gemini-users/internal/database"

	"github.com/labstack/echo/v4"
)

// RootResponse 根路徑回應模型
// swagger:model RootResponse
type RootResponse struct {
	Message string `json:"message" example:"Hello World"`
}

// HealthResponse 健康檢查回應模型
// swagger:model HealthResponse
type HealthResponse struct {
	Success string `json:"success" example:"ok"`
}

// @Summary     Root
// @Description 回傳固定的歡迎訊息
// @Tags        health
// @Produce     json
// @Success     200 {object} RootResponse
// @Router      / [get]
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, RootResponse{Message: "Hello World"})
	}
}

// @Summary     Health Check
// @Description 檢查資料庫連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /health_check [get]
func HealthHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		return c.JSON(http.StatusOK, HealthResponse{Success: "ok"})
	}
}
