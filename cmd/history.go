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
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recently refined prompts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent prompts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.RecentPrompts(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recent prompts.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tUSED\tPROMPT")
		for i, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, e.UsedAt.Format("2006-01-02 15:04"), truncate(e.Text, 60))
		}
		return w.Flush()
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recent prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearRecentPrompts(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d recent prompts.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
