package refine

import "net/http"

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicMessagesRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

var anthropicAdapter = adapter{
	defaultModel:       "claude-3-5-haiku-latest",
	baseURL:            "https://api.anthropic.com",
	route:              "/v1/messages",
	credentialRequired: true,
	build: func(model, prompt string) any {
		return anthropicMessagesRequest{
			Model:     model,
			MaxTokens: maxTokens,
			System:    systemPrompt,
			Messages: []anthropicMessage{
				{Role: "user", Content: userPrefix + prompt},
			},
		}
	},
	authorize: func(h http.Header, credential string) {
		h.Set("x-api-key", credential)
		h.Set("anthropic-version", anthropicVer)
	},
	responsePath: []any{"content", 0, "text"},
}
