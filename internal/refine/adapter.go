package refine

import (
	"net/http"
	"strconv"
	"strings"
)

// systemPrompt is sent with every refinement regardless of provider.
const systemPrompt = `You are a prompt engineering expert. Your task is to take a rough prompt and refine it into a clear, specific, and effective prompt.

Guidelines:
- Make the prompt more specific and detailed
- Add context where helpful
- Structure the prompt clearly
- Include any relevant constraints or requirements
- Keep the core intent of the original prompt

Return ONLY the refined prompt, nothing else.`

const (
	userPrefix   = "Refine this prompt:\n\n"
	maxTokens    = 1024
	contentType  = "application/json"
	anthropicVer = "2023-06-01"
)

// adapter describes how one provider is addressed. The table below is the
// only place that knows about provider differences.
type adapter struct {
	defaultModel string
	baseURL      string
	route        string
	// customEndpoint lets Request.Endpoint replace baseURL.
	customEndpoint     bool
	credentialRequired bool
	build              func(model, prompt string) any
	authorize          func(h http.Header, credential string)
	// responsePath addresses the text inside the decoded JSON body.
	// Strings are object keys, ints are array indices.
	responsePath []any
}

var adapters = map[Provider]adapter{
	ProviderOpenAI:    openAIAdapter,
	ProviderAnthropic: anthropicAdapter,
	ProviderOllama:    ollamaAdapter,
}

func (a adapter) url(base, endpoint string) string {
	if a.customEndpoint && endpoint != "" {
		base = endpoint
	}
	return strings.TrimRight(base, "/") + a.route
}

func (a adapter) extract(doc any) (string, bool) {
	v, ok := lookup(doc, a.responsePath...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// lookup walks a decoded JSON document.
func lookup(v any, path ...any) (any, bool) {
	for _, step := range path {
		switch key := step.(type) {
		case string:
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, false
			}
			if v, ok = obj[key]; !ok {
				return nil, false
			}
		case int:
			arr, ok := v.([]any)
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			v = arr[key]
		default:
			return nil, false
		}
	}
	return v, true
}

func describePath(path []any) string {
	var sb strings.Builder
	for _, step := range path {
		switch key := step.(type) {
		case string:
			if sb.Len() > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(key)
		case int:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(key))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
