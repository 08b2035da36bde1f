package handler

import (
	"errors"
	"fmt"
	"net/http"

	"user-crud/internal/api"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewHTTPErrorHandler 把 handler 沒處理的錯誤轉成統一的 JSON 格式。
// 找不到路由（含 method 不符）回 404；其他未分類錯誤回 500，
// 只有 development 模式會帶出原始錯誤訊息。
func NewHTTPErrorHandler(dev bool, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var body api.ErrorResponse

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he) && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed):
			code = http.StatusNotFound
			body = api.ErrorResponse{Success: false, Message: "Route not found"}
		case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
			code = he.Code
			body = api.ErrorResponse{Success: false, Message: fmt.Sprint(he.Message)}
		default:
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("unhandled error")
			body = api.ErrorResponse{
				Success: false,
				Message: "Something went wrong!",
				Error:   "Internal server error",
			}
			if dev {
				body.Error = err.Error()
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, body)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}
