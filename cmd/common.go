/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/store"
	"github.com/valpere/promptlight/internal/templates"
)

// readPrompt joins args or, when there are none, reads stdin.
func readPrompt(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no prompt given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// openStore opens the prompt library at the configured path.
func openStore() (*store.Store, error) {
	db, err := store.New(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return db, nil
}

func newLibrary(db *store.Store) *templates.Library {
	if db == nil {
		return templates.NewLibrary(nil)
	}
	return templates.NewLibrary(db)
}

// credentialFor picks the API key for a provider: an explicit flag value,
// then the provider's conventional environment variable, then the stored
// key when the stored provider matches.
func credentialFor(p refine.Provider, explicit string) string {
	if explicit != "" {
		return explicit
	}
	switch p {
	case refine.ProviderOpenAI:
		if k := os.Getenv("OPENAI_API_KEY"); k != "" {
			return k
		}
	case refine.ProviderAnthropic:
		if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
			return k
		}
	}
	if refine.Provider(cfg.Provider) == p {
		return cfg.APIKey
	}
	return ""
}

// switchProvider points req at p. The saved model and endpoint belong to the
// saved provider, so they are dropped only when p is a different one.
func switchProvider(req refine.Request, p refine.Provider) refine.Request {
	if p == refine.Provider(cfg.Provider) {
		return req
	}
	req.Provider = p
	req.Model = ""
	req.Endpoint = ""
	if p == refine.ProviderOllama {
		req.Endpoint = cfg.OllamaEndpoint
	}
	return req
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func providerFlagUsage() string {
	names := make([]string, 0, 3)
	for _, p := range refine.Providers() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func printErr(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), format, a...)
}
