package users

import (
	"errors"
	"net/http"

	"user-crud/internal/api"
	"user-crud/internal/model"
	"user-crud/internal/store"
	"user-crud/internal/validation"

	"github.com/labstack/echo/v4"
)

const (
	msgNotFound       = "User not found"
	msgDuplicateEmail = "Email already exists"
	msgValidation     = "Validation failed"
	msgInvalidBody    = "invalid request body"
	msgDeleted        = "User deleted successfully"
)

// storeError 把已知的 store 錯誤轉成回應；其餘交給 HTTPErrorHandler 回 500
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, api.ErrorResponse{Success: false, Message: msgNotFound})
	case errors.Is(err, store.ErrDuplicateEmail):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Success: false,
			Message: msgDuplicateEmail,
			Errors:  map[string]string{"email": msgDuplicateEmail},
		})
	}
	return err
}

func validationError(c echo.Context, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Success: false,
			Message: msgValidation,
			Errors:  verrs,
		})
	}
	return c.JSON(http.StatusBadRequest, api.ErrorResponse{Success: false, Message: err.Error()})
}

// @Summary     List users
// @Description 回傳所有使用者與數量
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/users [get]
func ListUsersHandler(s store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := s.ListUsers(c.Request().Context())
		if err != nil {
			return err
		}
		if list == nil {
			list = []model.User{}
		}
		return c.JSON(http.StatusOK, api.UserListResponse{
			Success: true,
			Count:   len(list),
			Data:    list,
		})
	}
}

// @Summary     Get a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/users/{id} [get]
func GetUserHandler(s store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := s.GetUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, api.UserResponse{Success: true, Data: u})
	}
}

// @Summary     Create a new user
// @Description 建立使用者；name 會去除前後空白，email 會轉小寫且不可重複
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users [post]
func CreateUserHandler(s store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Success: false, Message: msgInvalidBody})
		}
		req.Normalize()
		if err := c.Validate(&req); err != nil {
			return validationError(c, err)
		}

		created, err := s.CreateUser(c.Request().Context(), &model.User{
			Name:  req.Name,
			Email: req.Email,
			Age:   req.Age,
		})
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, api.UserResponse{Success: true, Data: created})
	}
}

// @Summary     Update a user by ID
// @Description 只更新有提供的欄位，updatedAt 會更新
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "使用者 ID"
// @Param       body body     api.UpdateUserRequest true "要更新的欄位"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/users/{id} [put]
func UpdateUserHandler(s store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Success: false, Message: msgInvalidBody})
		}
		req.Normalize()
		if err := c.Validate(&req); err != nil {
			return validationError(c, err)
		}

		u, err := s.UpdateUser(c.Request().Context(), c.Param("id"), req.Patch())
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, api.UserResponse{Success: true, Data: u})
	}
}

// @Summary     Delete a user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     string true "使用者 ID"
// @Success     200 {object} api.DeleteUserResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /api/users/{id} [delete]
func DeleteUserHandler(s store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, err := s.DeleteUser(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, api.DeleteUserResponse{
			Success: true,
			Message: msgDeleted,
			Data:    u,
		})
	}
}
