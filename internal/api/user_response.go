package api

import "user-crud/internal/model"

// swagger:model api.UserResponse
type UserResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    *model.User `json:"data"`
}

// swagger:model api.UserListResponse
type UserListResponse struct {
	Success bool         `json:"success" example:"true"`
	Count   int          `json:"count" example:"1"`
	Data    []model.User `json:"data"`
}

// swagger:model api.DeleteUserResponse
type DeleteUserResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"User deleted successfully"`
	Data    *model.User `json:"data"`
}
