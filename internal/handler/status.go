package handler

import (
	"net/http"

	"user-crud/internal/api"
	"user-crud/internal/database"

	"github.com/labstack/echo/v4"
)

// DBStatusHandler 回報目前連線的 readiness 狀態
// @Summary     Database status
// @Description 讀取連線 handle 的狀態、主機與資料庫名稱，不會觸發任何連線動作
// @Tags        health
// @Produce     json
// @Success     200 {object} api.DatabaseStatusResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/test-db [get]
func DBStatusHandler(conn database.Conn) echo.HandlerFunc {
	return func(c echo.Context) error {
		if conn == nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Success: false,
				Message: "Database connection test failed",
				Error:   "no database connection",
			})
		}
		state := conn.ReadyState()
		return c.JSON(http.StatusOK, api.DatabaseStatusResponse{
			Success: true,
			Database: api.DatabaseStatus{
				Status:     state.String(),
				Host:       conn.Host(),
				Name:       conn.Name(),
				ReadyState: int(state),
			},
		})
	}
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/ping [get]
func PingHandler(conn database.Conn) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := conn.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Success: false,
				Message: "database unhealthy",
			})
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
