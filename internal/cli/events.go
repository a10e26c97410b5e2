package cli

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	storelink "github.com/storelink/client-go"
)

func orderEventsCmd(env *Env, flags *rootFlags) *cobra.Command {
	var (
		cursor string
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "order-events",
		Short: "Read the order event feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if follow {
				client.WatchOrderEventsFunc(cmd.Context(), func(event storelink.OrderEvent) {
					printOrderEvent(env, event)
				}, storelink.WithWatchCursor(cursor))
				return nil
			}

			page, err := client.OrderEvents(cmd.Context(), cursor)
			if err != nil {
				return err
			}
			for _, event := range page.Events {
				printOrderEvent(env, event)
			}
			fmt.Fprintf(env.Stdout, "%d events, next cursor %s\n", len(page.Events), page.Cursor)
			return nil
		},
	}

	cmd.Flags().StringVar(&cursor, "cursor", "", "feed cursor to start from")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep polling and print events as they arrive")
	return cmd
}

func printOrderEvent(env *Env, event storelink.OrderEvent) {
	switch event.Data.Type {
	case storelink.OrderEventStateChange:
		fmt.Fprintf(env.Stdout, "%s  order %s  %s -> %s\n",
			event.Occurred, event.OrderID, event.Data.Type, event.Data.CurrentState)
	case storelink.OrderEventReceiptIssued:
		fmt.Fprintf(env.Stdout, "%s  order %s  %s receipt %s\n",
			event.Occurred, event.OrderID, event.Data.Type, event.Data.ReceiptID)
	default:
		fmt.Fprintf(env.Stdout, "%s  order %s  %s\n",
			event.Occurred, event.OrderID, event.Data.Type)
	}
}

func deliveryEventsCmd(env *Env, flags *rootFlags) *cobra.Command {
	var (
		cursor string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "delivery-events",
		Short: "Summarize the third-party delivery event feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			page, err := client.DeliveryEvents(cmd.Context(), cursor, limit)
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, event := range page.Events {
				counts[event.Data.Type]++
			}
			types := make([]string, 0, len(counts))
			for eventType := range counts {
				types = append(types, eventType)
			}
			sort.Strings(types)

			t := table.NewWriter()
			t.SetOutputMirror(env.Stdout)
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Event Type", "Count"})
			for _, eventType := range types {
				t.AppendRow(table.Row{eventType, counts[eventType]})
			}
			t.Render()

			fmt.Fprintf(env.Stdout, "%d events, next cursor %s\n", len(page.Events), page.Cursor)
			return nil
		},
	}

	cmd.Flags().StringVar(&cursor, "cursor", "", "feed cursor to start from")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum events per page (platform default when 0)")
	return cmd
}
