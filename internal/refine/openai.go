package refine

import (
	"fmt"
	"net/http"
)

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

var openAIAdapter = adapter{
	defaultModel:       "gpt-4o-mini",
	baseURL:            "https://api.openai.com",
	route:              "/v1/chat/completions",
	credentialRequired: true,
	build: func(model, prompt string) any {
		return openAIChatRequest{
			Model: model,
			Messages: []openAIMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrefix + prompt},
			},
			MaxTokens: maxTokens,
		}
	},
	authorize: func(h http.Header, credential string) {
		h.Set("Authorization", fmt.Sprintf("Bearer %s", credential))
	},
	responsePath: []any{"choices", 0, "message", "content"},
}
