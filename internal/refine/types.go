package refine

import (
	"context"
	"sort"
)

// Provider identifies one of the refinement backends.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	// ProviderOllama is the local generate endpoint.
	ProviderOllama Provider = "ollama"
)

// Request is a single refinement call. It is built per user action and
// dropped once the result is delivered.
type Request struct {
	Prompt     string   `json:"prompt"`
	Provider   Provider `json:"provider"`
	Credential string   `json:"apiKey"`
	// Endpoint is only read for the local provider.
	Endpoint string `json:"endpoint,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Refiner turns a rough prompt into a refined one.
type Refiner interface {
	Refine(ctx context.Context, req Request) (string, error)
}

// Providers returns the known provider identifiers in a stable order.
func Providers() []Provider {
	list := make([]Provider, 0, len(adapters))
	for p := range adapters {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// IsSupported reports whether p has an adapter.
func IsSupported(p Provider) bool {
	_, ok := adapters[p]
	return ok
}

// DefaultModel returns the model used when a request carries no override.
func DefaultModel(p Provider) string {
	return adapters[p].defaultModel
}
