package refine

import "net/http"

// DefaultOllamaEndpoint is used when a local request carries no endpoint.
const DefaultOllamaEndpoint = "http://localhost:11434"

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

var ollamaAdapter = adapter{
	defaultModel:   "llama3.2",
	baseURL:        DefaultOllamaEndpoint,
	route:          "/api/generate",
	customEndpoint: true,
	build: func(model, prompt string) any {
		return ollamaGenerateRequest{
			Model:  model,
			Prompt: systemPrompt + "\n\n" + userPrefix + prompt,
			Stream: false,
		}
	},
	// Local endpoints are unauthenticated.
	authorize:    func(http.Header, string) {},
	responsePath: []any{"response"},
}
