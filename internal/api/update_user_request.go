// File: internal/api/update_user_request.go
package api

// UpdateUserRequest 的欄位皆為選填，未提供的欄位不會被更動
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1" example:"Alice"`
	Email *string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
}
