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
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/valpere/promptlight/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change saved settings",
	Long:  `Inspect and edit the settings file (provider, API key, Ollama endpoint, model, hotkey, theme).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "config\t%s\n", configPath)
		fmt.Fprintf(w, "provider\t%s\n", cfg.Provider)
		fmt.Fprintf(w, "api_key\t%s\n", cfg.MaskedKey())
		fmt.Fprintf(w, "ollama_endpoint\t%s\n", cfg.OllamaEndpoint)
		fmt.Fprintf(w, "model\t%s\n", cfg.Model)
		fmt.Fprintf(w, "hotkey\t%s\n", cfg.Hotkey)
		fmt.Fprintf(w, "theme\t%s\n", cfg.Theme)
		fmt.Fprintf(w, "db\t%s\n", cfg.DB)
		fmt.Fprintf(w, "log.level\t%s\n", cfg.Log.Level)
		fmt.Fprintf(w, "log.pretty\t%v\n", cfg.Log.Pretty)
		fmt.Fprintf(w, "log.file\t%s\n", cfg.Log.File)
		return w.Flush()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long:  "Change one setting. Keys: " + strings.Join(settings.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "api_key" {
			return fmt.Errorf("use \"promptlight config set-key\" so the key does not end up in shell history")
		}
		if err := settings.Update(configPath, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the API key, read from the terminal without echo",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readSecret(cmd, "API key: ")
		if err != nil {
			return err
		}
		if key == "" {
			return fmt.Errorf("empty key, nothing saved")
		}
		if err := settings.Update(configPath, "api_key", key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", configPath)
		return nil
	},
}

// readSecret reads one line without echo when stdin is a terminal, and the
// first line of stdin otherwise.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := readPrompt(nil)
		if err != nil {
			return "", err
		}
		first, _, _ := strings.Cut(line, "\n")
		return strings.TrimSpace(first), nil
	}

	printErr(cmd, "%s", prompt)
	b, err := term.ReadPassword(fd)
	printErr(cmd, "\n")
	if err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
}
