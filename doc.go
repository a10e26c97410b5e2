// Package storelink provides a Go client SDK for the StoreLink B2B
// grocery-retail platform API: orders, products, stocks, prices,
// receipts, stores, and third-party logistics.
//
// Every outbound call passes through a client-side sliding-window rate
// limiter (keyed by auth token and endpoint) and a retry wrapper that
// re-attempts transient failures, so integrations stay inside the
// platform's request budget without hand-rolled pacing.
//
// Basic usage:
//
//	client, err := storelink.New("your-auth-token",
//	    storelink.WithRateLimit(5),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	order, err := client.GetOrder(ctx, "order-123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Store:", order.StoreID)
package storelink
