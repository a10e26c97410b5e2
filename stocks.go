package storelink

import (
	"context"

	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/api"
)

// Stock is the on-hand quantity of one product.
type Stock struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// StockRecord is one entry of a stock query, scoped to a store.
type StockRecord struct {
	StoreID   string `json:"store_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// StocksPage is one page of a stock query.
type StocksPage struct {
	Cursor string        `json:"cursor"`
	Stocks []StockRecord `json:"stocks"`
}

// stockUpdateModeModify applies quantities as corrections on top of the
// warehouse's own movements, rather than as an absolute snapshot.
const stockUpdateModeModify = "modify"

// InitializeStocks sets the initial stock snapshot for a store.
func (c *Client) InitializeStocks(ctx context.Context, storeID string, stocks []Stock) error {
	body := struct {
		StoreID string  `json:"store_id"`
		Stocks  []Stock `json:"stocks"`
	}{StoreID: storeID, Stocks: stocks}

	return wrapError(c.api.Do(ctx, api.StockInitializeEndpoint, body, nil))
}

// UpdateStocks applies stock corrections for a store in batches.
func (c *Client) UpdateStocks(ctx context.Context, storeID string, stocks []Stock) error {
	updated := 0
	for _, batch := range batches(stocks, StocksBatchSize) {
		body := struct {
			UpdateMode string  `json:"update_mode"`
			StoreID    string  `json:"store_id"`
			Stocks     []Stock `json:"stocks"`
		}{UpdateMode: stockUpdateModeModify, StoreID: storeID, Stocks: batch}

		if err := c.api.Do(ctx, api.StockUpdateEndpoint, body, nil); err != nil {
			return wrapError(err)
		}

		updated += len(batch)
		c.logger.Info("updated stocks",
			zap.Int("updated", updated),
			zap.Int("total", len(stocks)),
		)
	}
	return nil
}

// Stocks returns one page of current stock levels starting at cursor.
// An empty cursor starts from the beginning.
func (c *Client) Stocks(ctx context.Context, cursor string) (*StocksPage, error) {
	body := map[string]string{}
	if cursor != "" {
		body["cursor"] = cursor
	}

	var page StocksPage
	if err := c.api.Do(ctx, api.StockQueryEndpoint, body, &page); err != nil {
		return nil, wrapError(err)
	}
	return &page, nil
}
