package api

// swagger:model api.GenerateRequest
type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1" example:"請介紹一下 Gemini"`
}
