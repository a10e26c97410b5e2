package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func storesCmd(env *Env, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List all stores available to the auth token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			stores, err := client.Stores(cmd.Context())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(env.Stdout)
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"ID", "Name", "Status", "Address", "Lat", "Lon"})
			for _, store := range stores {
				t.AppendRow(table.Row{
					store.ID,
					store.Name,
					store.Status,
					store.Address,
					store.Location.Lat,
					store.Location.Lon,
				})
			}
			t.Render()

			fmt.Fprintf(env.Stdout, "%d stores\n", len(stores))
			return nil
		},
	}
}
