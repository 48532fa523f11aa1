package genai

// FunctionDeclaration describes one callback the model may invoke.
type FunctionDeclaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Schema is the parameter schema of a declared function.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Tool groups function declarations for the generate request.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"function_declarations"`
}
