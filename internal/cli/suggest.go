// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/allie-tui/internal/config"
	"github.com/jeranaias/allie-tui/internal/suggest"
)

func newSuggestCommand(app *App) *cobra.Command {
	var (
		count int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print suggested questions",
		Long: `Print a sample of the suggested questions a new conversation opens with.

Use --seed for a reproducible sample and --all to list the whole catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			catalog := cfg.Catalog()

			if all {
				for _, q := range catalog.Questions() {
					fmt.Fprintln(app.Out, q)
				}
				return nil
			}

			n := cfg.Assistant.SuggestionCount
			if cmd.Flags().Changed("count") {
				n = count
			}
			if n < 0 || n > config.MaxSuggestionCount {
				return &UsageError{Msg: fmt.Sprintf("--count must be between 0 and %d", config.MaxSuggestionCount)}
			}

			var pool *suggest.Pool
			if cfg.Assistant.Seed != 0 {
				pool = suggest.NewSeededPool(catalog, cfg.Assistant.Seed)
			} else {
				pool = suggest.NewPool(catalog, nil)
			}
			for _, q := range pool.Sample(n) {
				fmt.Fprintln(app.Out, q)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", suggest.DefaultCount, "number of questions")
	cmd.Flags().BoolVar(&all, "all", false, "list the whole catalog")
	return cmd
}
