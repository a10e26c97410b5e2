package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func productsCmd(env *Env, flags *rootFlags) *cobra.Command {
	var includeInactive bool

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			products, err := client.AllProducts(cmd.Context(), !includeInactive)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(products))
			for id := range products {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			t := table.NewWriter()
			t.SetOutputMirror(env.Stdout)
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"ID", "Master Category", "Status"})
			for _, id := range ids {
				product := products[id]
				t.AppendRow(table.Row{id, product.MasterCategory, product.Status})
			}
			t.Render()

			fmt.Fprintf(env.Stdout, "%d products\n", len(products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeInactive, "all", false, "include inactive products")
	return cmd
}
