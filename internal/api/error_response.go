package api

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// message 錯誤描述
	Message string `json:"message" example:"User not found"`
	// error 僅在 development 模式下帶出原始錯誤
	Error string `json:"error,omitempty"`
	// errors 欄位驗證錯誤
	Errors map[string]string `json:"errors,omitempty"`
}
