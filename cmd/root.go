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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/promptlight/internal/logger"
	"github.com/valpere/promptlight/internal/metrics"
	"github.com/valpere/promptlight/internal/settings"
)

var version = "0.1.0"

var (
	configPath string
	envFile    string
	logLevel   string

	v   = viper.New()
	cfg settings.Settings
	lg  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "promptlight",
	Short: "Refine rough prompts with an LLM of your choice",
	Long: `A prompt refinement tool. It sends a rough prompt to OpenAI, Anthropic or a
local Ollama model and returns a clearer, more specific version.

Supported providers: openai, anthropic, ollama

Use "promptlight refine --help" for refinement options and
"promptlight serve" to run the bridge for the desktop window.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load env file: %w", err)
			}
		}

		var err error
		cfg, err = settings.Load(v, configPath)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		lg, err = logger.Init(logger.Options{
			Level:  level,
			Pretty: cfg.Log.Pretty,
			File:   cfg.Log.File,
		})
		if err != nil {
			return err
		}

		metrics.Init()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", settings.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables (PROMPTLIGHT_*, OPENAI_API_KEY, ANTHROPIC_API_KEY) from a .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}
