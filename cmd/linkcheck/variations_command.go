package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shelfpost/linkcheck/internal/titlematch"
)

type variationRow struct {
	Variation string `json:"variation"`
	URL       string `json:"url"`
}

type variationsOutput struct {
	Variations []variationRow         `json:"variations"`
	Collisions []titlematch.Collision `json:"collisions"`
}

func newVariationsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "variations",
		Short: "List every spelling that resolves to each link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := ctx.loadLinks()
			if err != nil {
				return err
			}

			table := titlematch.BuildTable(links)
			out := variationsOutput{
				Variations: make([]variationRow, 0, table.Len()),
				Collisions: table.Collisions(),
			}
			for _, v := range table.Variations() {
				url, _ := table.Lookup(v)
				out.Variations = append(out.Variations, variationRow{Variation: v, URL: url})
			}

			if asJSON {
				return writeJSON(cmd, out)
			}

			rows := make([][]string, 0, len(out.Variations))
			for _, v := range out.Variations {
				rows = append(rows, []string{v.Variation, v.URL})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderTable([]column{{Header: "Variation"}, {Header: "URL"}}, rows))
			for _, c := range out.Collisions {
				fmt.Fprintf(w, "warning: %q links to %s, overriding %s\n", c.Variation, c.URL, c.PreviousURL)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")

	return cmd
}
