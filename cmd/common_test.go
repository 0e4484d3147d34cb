package cmd

import (
	"testing"

	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/settings"
)

func TestCredentialFor(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "env-anthropic")

	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = settings.Settings{Provider: "openai", APIKey: "saved-openai"}

	tests := []struct {
		name     string
		provider refine.Provider
		explicit string
		want     string
	}{
		{"explicit wins", refine.ProviderOpenAI, "flag", "flag"},
		{"saved key for saved provider", refine.ProviderOpenAI, "", "saved-openai"},
		{"env for anthropic", refine.ProviderAnthropic, "", "env-anthropic"},
		{"none for ollama", refine.ProviderOllama, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := credentialFor(tt.provider, tt.explicit); got != tt.want {
				t.Errorf("credentialFor(%s, %q) = %q, want %q", tt.provider, tt.explicit, got, tt.want)
			}
		})
	}
}

func TestSwitchProvider(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = settings.Settings{
		Provider:       "ollama",
		Model:          "mistral",
		OllamaEndpoint: "http://gpu-box:11434",
	}

	t.Run("same provider keeps saved model and endpoint", func(t *testing.T) {
		req := switchProvider(cfg.Request("hi"), refine.ProviderOllama)
		if req.Model != "mistral" || req.Endpoint != "http://gpu-box:11434" {
			t.Errorf("got model %q endpoint %q, want saved values", req.Model, req.Endpoint)
		}
	})

	t.Run("other provider drops saved model and endpoint", func(t *testing.T) {
		req := switchProvider(cfg.Request("hi"), refine.ProviderOpenAI)
		if req.Provider != refine.ProviderOpenAI {
			t.Errorf("provider = %s, want openai", req.Provider)
		}
		if req.Model != "" || req.Endpoint != "" {
			t.Errorf("got model %q endpoint %q, want both empty", req.Model, req.Endpoint)
		}
	})

	t.Run("switching to ollama uses saved endpoint", func(t *testing.T) {
		cfg.Provider = "openai"
		cfg.Model = "gpt-4o"
		req := switchProvider(cfg.Request("hi"), refine.ProviderOllama)
		if req.Model != "" {
			t.Errorf("model = %q, want empty", req.Model)
		}
		if req.Endpoint != "http://gpu-box:11434" {
			t.Errorf("endpoint = %q, want saved ollama endpoint", req.Endpoint)
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"line one\nline two", 40, "line one line two"},
		{"abcdefghijkl", 8, "abcde..."},
		{"привіт світе", 9, "привіт..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"refine"}, {"compare"}, {"serve"},
		{"config", "show"}, {"config", "set"}, {"config", "set-key"},
		{"history", "list"}, {"history", "clear"},
		{"templates", "list"}, {"templates", "add"}, {"templates", "remove"},
		{"templates", "favorite"}, {"templates", "show"},
	} {
		c, _, err := rootCmd.Find(path)
		if err != nil || c == rootCmd {
			t.Errorf("command %v not registered", path)
		}
	}
}
