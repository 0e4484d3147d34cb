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
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/valpere/promptlight/internal/fanout"
	"github.com/valpere/promptlight/internal/postprocess"
	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/validator"
)

var (
	compareProviders    []string
	compareOpenAIKey    string
	compareAnthropicKey string
	compareEndpoint     string
	compareTimeout      time.Duration
	compareClean        bool
	compareCheck        bool
	compareBest         bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [prompt]",
	Short: "Refine one prompt with several providers in parallel",
	Example: `  promptlight compare --providers openai,anthropic "plan a product launch"
  promptlight compare --providers ollama,openai --timeout 30s < prompt.txt
  promptlight compare --providers ollama,openai --best "summarize this" | pbcopy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPrompt(args)
		if err != nil {
			return err
		}

		reqs := make([]refine.Request, 0, len(compareProviders))
		for _, name := range compareProviders {
			p := refine.Provider(name)
			if !refine.IsSupported(p) {
				printErr(cmd, "Unknown provider: %s, skipping\n", name)
				continue
			}
			req := refine.Request{Prompt: prompt, Provider: p}
			switch p {
			case refine.ProviderOpenAI:
				req.Credential = credentialFor(p, compareOpenAIKey)
			case refine.ProviderAnthropic:
				req.Credential = credentialFor(p, compareAnthropicKey)
			case refine.ProviderOllama:
				req.Endpoint = cfg.OllamaEndpoint
				if compareEndpoint != "" {
					req.Endpoint = compareEndpoint
				}
			}
			if p == refine.Provider(cfg.Provider) {
				req.Model = cfg.Model
			}
			reqs = append(reqs, req)
		}
		if len(reqs) == 0 {
			return fmt.Errorf("no valid providers given")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner := fanout.New(refine.NewDispatcher(refine.WithLogger(lg)), fanout.Config{Timeout: compareTimeout})
		out := runner.Execute(ctx, reqs)

		var val *validator.Validator
		if compareCheck {
			val = validator.New()
		}

		if compareBest {
			best, ok := out.Best()
			if !ok {
				return fmt.Errorf("all providers failed")
			}
			text := best.Text
			if compareClean {
				text = postprocess.Clean(text)
			}
			if val != nil {
				for _, warn := range val.Check(prompt, text) {
					printErr(cmd, "warning: %s\n", warn)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}

		heading := color.New(color.FgCyan, color.Bold)
		failure := color.New(color.FgRed)
		warning := color.New(color.FgYellow)

		w := cmd.OutOrStdout()
		for _, res := range out.Results {
			heading.Fprintf(w, "=== %s (%s, %s) ===\n", res.Provider, res.Model, res.Latency.Round(time.Millisecond))
			if res.Err != nil {
				failure.Fprintf(w, "error: %v\n\n", res.Err)
				continue
			}
			text := res.Text
			if compareClean {
				text = postprocess.Clean(text)
			}
			if val != nil {
				for _, warn := range val.Check(prompt, text) {
					warning.Fprintf(w, "warning: %s\n", warn)
				}
			}
			fmt.Fprintf(w, "%s\n\n", text)
		}
		fmt.Fprintf(w, "%d succeeded, %d failed\n", out.Succeeded, out.Failed)

		if out.Succeeded == 0 {
			return fmt.Errorf("all providers failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceVar(&compareProviders, "providers", []string{"openai", "anthropic"}, "Providers to compare (comma-separated)")
	compareCmd.Flags().StringVar(&compareOpenAIKey, "openai-key", "", "OpenAI API key (default: OPENAI_API_KEY or saved key)")
	compareCmd.Flags().StringVar(&compareAnthropicKey, "anthropic-key", "", "Anthropic API key (default: ANTHROPIC_API_KEY or saved key)")
	compareCmd.Flags().StringVar(&compareEndpoint, "endpoint", "", "Ollama base URL")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 60*time.Second, "Per-provider timeout")
	compareCmd.Flags().BoolVar(&compareCheck, "check", true, "Flag results that are empty, unchanged or in another language")
	compareCmd.Flags().BoolVar(&compareBest, "best", false, "Print only the first successful result, in --providers order")
	compareCmd.Flags().BoolVar(&compareClean, "clean", false, "Strip preambles and wrapping from each result")
}
