package api

// swagger:model api.GenerateResponse
type GenerateResponse struct {
	// 原始的 prompt
	Prompt string `json:"prompt" example:"請介紹一下 Gemini"`

	// 模型生成的文字
	Response string `json:"response" example:"Gemini 是 Google 的生成式 AI 模型"`
}
