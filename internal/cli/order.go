package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func orderCmd(env *Env, flags *rootFlags) *cobra.Command {
	var orderID string

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Show the details of one order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			order, err := client.GetOrder(cmd.Context(), orderID)
			if err != nil {
				return err
			}

			fmt.Fprintf(env.Stdout, "Order %s\n", order.OrderID)
			fmt.Fprintf(env.Stdout, "  Store:        %s\n", order.StoreID)
			fmt.Fprintf(env.Stdout, "  Created:      %s\n", order.CreateTime)
			fmt.Fprintf(env.Stdout, "  Payment type: %s\n", order.PaymentType)
			if delivery := order.DeliveryAddress; delivery != nil {
				if addr := delivery.Address; addr != nil {
					fmt.Fprintf(env.Stdout, "  Delivery:     %s, %s %s\n", addr.City, addr.Street, addr.House)
				} else {
					fmt.Fprintf(env.Stdout, "  Delivery:     %g, %g\n", delivery.Position.Lat, delivery.Position.Lon)
				}
			}

			if order.Cart == nil {
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(env.Stdout)
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Product", "Quantity", "Price"})
			for _, item := range order.Cart.Items {
				t.AppendRow(table.Row{item.ProductID, item.Quantity, item.Price})
			}
			t.AppendFooter(table.Row{"", "Total", order.Cart.TotalPrice})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&orderID, "order-id", "", "order ID to retrieve")
	cmd.MarkFlagRequired("order-id")
	return cmd
}
