package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	storelink "github.com/storelink/client-go"
)

// deliveryStatuses are the accepted values for --status.
var deliveryStatuses = []storelink.DeliveryStatus{
	storelink.DeliveryStatusCreated,
	storelink.DeliveryStatusPerformerFound,
	storelink.DeliveryStatusPickuped,
	storelink.DeliveryStatusDelivering,
	storelink.DeliveryStatusDelivered,
	storelink.DeliveryStatusReturning,
	storelink.DeliveryStatusCancelled,
}

func deliveryStatusCmd(env *Env, flags *rootFlags) *cobra.Command {
	var (
		deliveryID int64
		status     string
	)

	cmd := &cobra.Command{
		Use:   "delivery-status",
		Short: "Report the status of an externally performed delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseDeliveryStatus(status)
			if err != nil {
				return err
			}

			client, logger, err := env.setup(flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := client.UpdateDeliveryStatus(cmd.Context(), deliveryID, parsed); err != nil {
				return err
			}
			fmt.Fprintf(env.Stdout, "delivery %d is now %s\n", deliveryID, parsed)
			return nil
		},
	}

	cmd.Flags().Int64Var(&deliveryID, "delivery-id", 0, "delivery ID to update")
	cmd.Flags().StringVar(&status, "status", "", "new delivery status")
	cmd.MarkFlagRequired("delivery-id")
	cmd.MarkFlagRequired("status")
	return cmd
}

func parseDeliveryStatus(status string) (storelink.DeliveryStatus, error) {
	for _, known := range deliveryStatuses {
		if status == string(known) {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid status %q, valid statuses: %v", status, deliveryStatuses)
}
