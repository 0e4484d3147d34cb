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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/promptlight/internal/templates"
)

var (
	templatesCategory string
	templatesSearch   string
	templatesFuzzy    bool

	templateTitle       string
	templateDescription string
	templateBody        string

	templateFill []string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse and manage prompt templates",
	Long:  `List the built-in prompt templates and your own, mark favorites, and add or remove custom templates.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, favorites first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := templates.ParseCategory(templatesCategory)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		lib := newLibrary(db)
		var list []templates.Template
		if templatesFuzzy {
			list, err = lib.Search(context.Background(), templatesSearch, category)
		} else {
			list, err = lib.List(context.Background(), templatesSearch, category)
		}
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\tID\tCATEGORY\tTITLE\tDESCRIPTION")
		for _, t := range list {
			star := ""
			if t.IsFavorite {
				star = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", star, t.ID, t.Category, t.Title, truncate(t.Description, 50))
		}
		return w.Flush()
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a template, optionally filling its placeholders",
	Example: `  promptlight templates show code-debug
  promptlight templates show code-debug --fill language=Go --fill code="$(cat main.go)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		t, ok, err := newLibrary(db).Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("template not found: %s", args[0])
		}

		values := make(map[string]string, len(templateFill))
		for _, kv := range templateFill {
			k, val, found := strings.Cut(kv, "=")
			if !found {
				return fmt.Errorf("invalid --fill %q, want name=value", kv)
			}
			values[k] = val
		}

		out := cmd.OutOrStdout()
		if len(values) == 0 {
			fmt.Fprintf(out, "%s (%s)\n%s\n\n", t.Title, t.Category, t.Description)
			if ph := templates.Placeholders(t.Template); len(ph) > 0 {
				fmt.Fprintf(out, "Placeholders: %s\n\n", strings.Join(ph, ", "))
			}
		}
		fmt.Fprintln(out, templates.Fill(t.Template, values))
		return nil
	},
}

var templatesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom template",
	Example: `  promptlight templates add --title "Standup" --body "Summarize {notes} as a standup update"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		t, err := db.AddCustomTemplate(context.Background(), templates.Template{
			Title:       templateTitle,
			Description: templateDescription,
			Template:    templateBody,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added template: %s\n", t.ID)
		return nil
	},
}

var templatesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RemoveCustomTemplate(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed template: %s\n", args[0])
		return nil
	},
}

var templatesFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle the favorite mark on a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		if _, ok, err := newLibrary(db).Get(ctx, args[0]); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("template not found: %s", args[0])
		}

		on, err := db.ToggleFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as favorite\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesListCmd.Flags().StringVarP(&templatesCategory, "category", "c", "all", "Category (coding, writing, analysis, custom, all)")
	templatesListCmd.Flags().StringVarP(&templatesSearch, "search", "s", "", "Search text")

	templatesListCmd.Flags().BoolVar(&templatesFuzzy, "fuzzy", false, "Rank by fuzzy title match instead of substring search")

	templatesShowCmd.Flags().StringArrayVar(&templateFill, "fill", nil, "Placeholder value as name=value (repeatable)")

	templatesAddCmd.Flags().StringVar(&templateTitle, "title", "", "Template title (required)")
	templatesAddCmd.Flags().StringVar(&templateDescription, "description", "", "Short description")
	templatesAddCmd.Flags().StringVar(&templateBody, "body", "", "Template text, placeholders in {braces} (required)")
	_ = templatesAddCmd.MarkFlagRequired("title")
	_ = templatesAddCmd.MarkFlagRequired("body")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesAddCmd)
	templatesCmd.AddCommand(templatesRemoveCmd)
	templatesCmd.AddCommand(templatesFavoriteCmd)
}
