// File: internal/api/user_response.go
package api

// swagger:model api.UserResponse
type UserResponse struct {
	ID    int    `json:"id" example:"1"`
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
}
