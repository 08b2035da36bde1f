package handler

import (
	"net/http"

	"user-crud/internal/api"

	"github.com/labstack/echo/v4"
)

// Endpoints 是根路由回傳的 API 目錄
var Endpoints = map[string]string{
	"GET /":                 "This endpoint",
	"GET /api/test-db":      "Database connection status",
	"GET /api/users":        "Get all users",
	"POST /api/users":       "Create new user",
	"GET /api/users/:id":    "Get user by ID",
	"PUT /api/users/:id":    "Update user by ID",
	"DELETE /api/users/:id": "Delete user by ID",
}

// IndexHandler API 目錄
// @Summary     API directory
// @Description 列出服務提供的所有端點
// @Tags        health
// @Produce     json
// @Success     200 {object} api.IndexResponse
// @Router      / [get]
func IndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.IndexResponse{
			Message:   "MongoDB Connection Test API",
			Status:    "Server is running",
			Endpoints: Endpoints,
		})
	}
}
