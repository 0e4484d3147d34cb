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

	"github.com/spf13/cobra"

	"github.com/valpere/promptlight/internal/markdown"
	"github.com/valpere/promptlight/internal/placeholder"
	"github.com/valpere/promptlight/internal/postprocess"
	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/validator"
)

var (
	refineProvider  string
	refineAPIKey    string
	refineEndpoint  string
	refineModel     string
	refineClean     bool
	refinePlain     bool
	refineNoHistory bool
	refineCheck     bool
	refineProtect   bool
)

var refineCmd = &cobra.Command{
	Use:   "refine [prompt]",
	Short: "Refine a prompt with the configured provider",
	Long: `Send a rough prompt to an LLM and print the refined version.

The prompt is taken from the arguments or, if none are given, from stdin.
Provider, key, endpoint and model default to the saved settings.`,
	Example: `  promptlight refine "write sql to find dup emails"
  echo "explain kubernetes" | promptlight refine --provider ollama --model llama3.2
  promptlight refine --provider anthropic --clean "summarize this paper"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readPrompt(args)
		if err != nil {
			return err
		}

		send := prompt
		var originals []string
		if refineProtect {
			send, originals = placeholder.Protect(prompt)
			if len(originals) > 0 {
				send += "\n\n" + placeholder.Hint()
			}
		}

		req := cfg.Request(send)
		if cmd.Flags().Changed("provider") {
			req = switchProvider(req, refine.Provider(refineProvider))
		}
		req.Credential = credentialFor(req.Provider, refineAPIKey)
		if refineEndpoint != "" {
			req.Endpoint = refineEndpoint
		}
		if refineModel != "" {
			req.Model = refineModel
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		d := refine.NewDispatcher(refine.WithLogger(lg))
		refined, err := d.Refine(ctx, req)
		if err != nil {
			return err
		}

		if len(originals) > 0 {
			if missing := placeholder.Missing(refined, originals); len(missing) > 0 {
				printErr(cmd, "warning: %d protected fragment(s) were dropped by the model\n", len(missing))
			}
			refined = placeholder.Restore(refined, originals)
		}

		if !refineNoHistory {
			if db, err := openStore(); err != nil {
				lg.Warn().Err(err).Msg("history not recorded")
			} else {
				if err := db.AddRecentPrompt(ctx, prompt); err != nil {
					lg.Warn().Err(err).Msg("history not recorded")
				}
				db.Close()
			}
		}

		if refineClean {
			refined = postprocess.Clean(refined)
		}
		if refinePlain {
			refined = markdown.ToPlainText(refined)
		}
		if refineCheck {
			for _, w := range validator.New().Check(prompt, refined) {
				printErr(cmd, "warning: %s\n", w)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), refined)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)

	refineCmd.Flags().StringVarP(&refineProvider, "provider", "p", "", "Provider ("+providerFlagUsage()+")")
	refineCmd.Flags().StringVarP(&refineAPIKey, "api-key", "k", "", "API key (default: env or saved key)")
	refineCmd.Flags().StringVar(&refineEndpoint, "endpoint", "", "Ollama base URL")
	refineCmd.Flags().StringVarP(&refineModel, "model", "m", "", "Model override")
	refineCmd.Flags().BoolVar(&refineClean, "clean", false, "Strip preambles, reasoning blocks and wrapping quotes from the result")
	refineCmd.Flags().BoolVar(&refinePlain, "plain", false, "Render markdown in the result as plain text")
	refineCmd.Flags().BoolVar(&refineCheck, "check", false, "Warn when the result is empty, unchanged or in another language")
	refineCmd.Flags().BoolVar(&refineProtect, "protect", false, "Keep code blocks and {fields} out of the model's reach")
	refineCmd.Flags().BoolVar(&refineNoHistory, "no-history", false, "Do not record the prompt in recent history")
}
