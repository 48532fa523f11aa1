// File: internal/api/error_response.go
package api

// ErrorResponse 統一的錯誤回應格式
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message" example:"user not found"`
}
