package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfpost/linkcheck/internal/inject"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var maxPerTitle int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "render DRAFT",
		Short: "Hyperlink affiliate titles in a draft and print sanitized HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxPerTitle < 1 {
				return fmt.Errorf("--max-per-title must be at least 1, got %d", maxPerTitle)
			}

			req, err := ctx.draftRequest(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := ctx.linkHealth(cmd, maxPerTitle).Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, result)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
			return err
		},
	}

	cmd.Flags().IntVar(&maxPerTitle, "max-per-title", inject.DefaultMaxPerTitle, "Maximum hyperlinks per title in the article")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print HTML and placements as JSON")

	return cmd
}
