package genai

// Part is one unit of a conversation turn. Exactly one field is set:
// plain text, a function call requested by the model, or a function
// result supplied by us.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// Content is an ordered list of parts attributed to one participant.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// FunctionCall is a structured request embedded in model output asking
// the caller to execute a named local operation.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResponse carries the result of a locally executed function
// back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Candidate is one proposed answer returned by the API.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// PromptContents builds the single-turn content list for a user prompt.
func PromptContents(prompt string) []Content {
	return []Content{{Parts: []Part{{Text: prompt}}}}
}
