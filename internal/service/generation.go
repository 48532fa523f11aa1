package service

import (
	"context"
	"fmt"

	"gemini-users/internal/database"
	"gemini-users/internal/genai"
	"gemini-users/internal/store"
)

// FallbackText is returned when the model produced no usable text part.
const FallbackText = "failed to generate a response"

const searchUsersFunction = "search_users"

var searchUsers = store.SearchUsers

// searchUsersTool is the one function declaration exposed to the model.
var searchUsersTool = genai.Tool{
	FunctionDeclarations: []genai.FunctionDeclaration{{
		Name:        searchUsersFunction,
		Description: "Search users by name or email (partial match).",
		Parameters: genai.Schema{
			Type: "object",
			Properties: map[string]genai.Property{
				"query": {Type: "string", Description: "Partial name or email to match."},
			},
			Required: []string{"query"},
		},
	}},
}

// GenerateText asks the model for a single answer with no tools.
func GenerateText(ctx context.Context, client genai.Client, prompt string) (string, error) {
	resp, err := client.GenerateContent(ctx, genai.PromptContents(prompt), nil)
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// AnswerWithSearch runs the two-phase tool-calling exchange: ask the model
// with the search_users tool declared, execute the requested search locally,
// feed the result back, and return the model's final answer. At most two
// upstream calls are made and they are strictly sequential.
func AnswerWithSearch(ctx context.Context, client genai.Client, db database.DB, prompt string) (string, error) {
	contents := genai.PromptContents(prompt)
	resp, err := client.GenerateContent(ctx, contents, []genai.Tool{searchUsersTool})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return FallbackText, nil
	}

	candidate := resp.Candidates[0]
	call := firstFunctionCall(candidate)
	if call == nil {
		// 模型沒有要求呼叫函式，直接回覆
		return firstText(resp), nil
	}

	var payload any
	if call.Name == searchUsersFunction {
		query, _ := call.Args["query"].(string)
		results, err := searchUsers(ctx, db, query)
		if err != nil {
			return "", err
		}
		payload = results
	} else {
		// 不認得的函式名稱以錯誤 payload 回報給模型，而非中斷整個請求
		payload = map[string]any{"error": fmt.Sprintf("Unknown function: %s", call.Name)}
	}

	// 兩個新 turn：模型自己的部分回答、以及函式執行結果
	contents = append(contents,
		candidate.Content,
		genai.Content{Parts: []genai.Part{{FunctionResponse: &genai.FunctionResponse{
			Name:     call.Name,
			Response: map[string]any{"result": payload},
		}}}},
	)

	final, err := client.GenerateContent(ctx, contents, nil)
	if err != nil {
		return "", err
	}
	return firstText(final), nil
}

// firstFunctionCall returns the first function-call part of the candidate,
// or nil. Multiple simultaneous calls are not supported; first match wins.
func firstFunctionCall(c genai.Candidate) *genai.FunctionCall {
	for _, part := range c.Content.Parts {
		if part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}

func firstText(resp *genai.GenerateResponse) string {
	if len(resp.Candidates) == 0 {
		return FallbackText
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return FallbackText
	}
	return parts[0].Text
}
