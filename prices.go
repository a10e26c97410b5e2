package storelink

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/api"
)

// PriceListStatus is the lifecycle status of a price list.
type PriceListStatus string

// Price list statuses.
const (
	PriceListStatusActive  PriceListStatus = "active"
	PriceListStatusRemoved PriceListStatus = "removed"
)

// PriceList identifies a named price list.
type PriceList struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PriceListRecord is a price list as stored on the platform.
type PriceListRecord struct {
	PriceList
	Status PriceListStatus `json:"status"`
}

// Price assigns a product price within a price list.
type Price struct {
	ProductID        string
	PriceListID      string
	Value            float64
	PricePerQuantity int
}

// StorePriceListLink attaches a price list to a store.
type StorePriceListLink struct {
	StoreID     string `json:"wms_store_id"`
	PriceListID string `json:"pricelist_id"`
}

// Discount is a temporary price reduction for a product in a store.
type Discount struct {
	ProductID      string            `json:"product_id"`
	StoreID        string            `json:"store_id"`
	ActivityPeriod map[string]string `json:"discount_activity_period"`
	Value          map[string]string `json:"discount_value"`
}

// CreatePriceLists creates price lists in one request.
func (c *Client) CreatePriceLists(ctx context.Context, priceLists []PriceList) error {
	body := struct {
		PriceLists []PriceList `json:"pricelists"`
	}{PriceLists: priceLists}

	return wrapError(c.api.Do(ctx, api.PriceListCreateEndpoint, body, nil))
}

// PriceLists returns the price lists with the given IDs.
func (c *Client) PriceLists(ctx context.Context, priceListIDs []string) ([]PriceListRecord, error) {
	body := struct {
		PriceListIDs []string `json:"pricelist_ids"`
	}{PriceListIDs: priceListIDs}

	var result struct {
		Results []PriceListRecord `json:"results"`
	}
	if err := c.api.Do(ctx, api.PriceListGetEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.Results, nil
}

// PriceListsPage is one page of the price list feed.
type PriceListsPage struct {
	Cursor     string            `json:"cursor"`
	PriceLists []PriceListRecord `json:"pricelists"`
}

// QueryPriceLists returns one page of the price list feed starting at
// cursor. An empty cursor starts from the beginning.
func (c *Client) QueryPriceLists(ctx context.Context, cursor string) (*PriceListsPage, error) {
	body := struct {
		Cursor string `json:"cursor,omitempty"`
		Limit  int    `json:"limit"`
	}{Cursor: cursor, Limit: DefaultRequestLimit}

	var page PriceListsPage
	if err := c.api.Do(ctx, api.PriceListQueryEndpoint, body, &page); err != nil {
		return nil, wrapError(err)
	}
	return &page, nil
}

// AllPriceLists walks the price list feed to its end and returns every
// price list keyed by ID.
func (c *Client) AllPriceLists(ctx context.Context) (map[string]PriceListRecord, error) {
	priceLists := make(map[string]PriceListRecord)

	cursor := ""
	for {
		page, err := c.QueryPriceLists(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for _, pl := range page.PriceLists {
			priceLists[pl.ID] = pl
		}
		if len(page.PriceLists) < DefaultRequestLimit {
			return priceLists, nil
		}
		cursor = page.Cursor
	}
}

// Prices returns the prices of the given price lists, keyed by price
// list ID.
func (c *Client) Prices(ctx context.Context, priceListIDs []string) (map[string][]Price, error) {
	body := struct {
		PriceListIDs []string `json:"pricelist_ids"`
	}{PriceListIDs: priceListIDs}

	var result struct {
		Results []struct {
			PriceListID string `json:"pricelist_id"`
			PricesData  []struct {
				ProductID        string `json:"product_id"`
				Price            string `json:"price"`
				PricePerQuantity int    `json:"price_per_quantity"`
			} `json:"prices_data"`
		} `json:"results"`
	}
	if err := c.api.Do(ctx, api.PriceGetEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}

	prices := make(map[string][]Price, len(result.Results))
	for _, pl := range result.Results {
		records := make([]Price, 0, len(pl.PricesData))
		for _, data := range pl.PricesData {
			value, err := strconv.ParseFloat(data.Price, 64)
			if err != nil {
				return nil, fmt.Errorf("parse price %q for product %s: %w", data.Price, data.ProductID, err)
			}
			records = append(records, Price{
				ProductID:        data.ProductID,
				PriceListID:      pl.PriceListID,
				Value:            value,
				PricePerQuantity: data.PricePerQuantity,
			})
		}
		prices[pl.PriceListID] = records
	}
	return prices, nil
}

// SetPrices uploads prices in batches.
func (c *Client) SetPrices(ctx context.Context, prices []Price) error {
	set := 0
	for _, batch := range batches(prices, DefaultBatchSize) {
		records := make([]map[string]any, 0, len(batch))
		for _, p := range batch {
			records = append(records, priceRequestData(p))
		}
		body := map[string]any{"prices": records}

		if err := c.api.Do(ctx, api.PriceSetEndpoint, body, nil); err != nil {
			return wrapError(err)
		}

		set += len(batch)
		c.logger.Info("set prices",
			zap.Int("set", set),
			zap.Int("total", len(prices)),
		)
	}
	return nil
}

// priceRequestData converts a price into the wire shape: the platform
// takes the amount as a decimal string.
func priceRequestData(p Price) map[string]any {
	perQuantity := p.PricePerQuantity
	if perQuantity == 0 {
		perQuantity = 1
	}
	return map[string]any{
		"price":              strconv.FormatFloat(p.Value, 'f', -1, 64),
		"pricelist_id":       p.PriceListID,
		"product_id":         p.ProductID,
		"price_per_quantity": perQuantity,
	}
}

// CreateDiscounts uploads discounts in batches.
func (c *Client) CreateDiscounts(ctx context.Context, discounts []Discount) error {
	created := 0
	for _, batch := range batches(discounts, DefaultBatchSize) {
		body := struct {
			Discounts []Discount `json:"discounts"`
		}{Discounts: batch}

		if err := c.api.Do(ctx, api.DiscountsCreateEndpoint, body, nil); err != nil {
			return wrapError(err)
		}

		created += len(batch)
		c.logger.Info("created discounts",
			zap.Int("created", created),
			zap.Int("total", len(discounts)),
		)
	}
	return nil
}

// CreateStorePriceListLinks attaches price lists to stores.
func (c *Client) CreateStorePriceListLinks(ctx context.Context, links []StorePriceListLink) error {
	body := struct {
		Links []StorePriceListLink `json:"links"`
	}{Links: links}

	return wrapError(c.api.Do(ctx, api.StorePriceListLinkCreateEndpoint, body, nil))
}

// StorePriceListLinks returns the price list links for the given stores.
func (c *Client) StorePriceListLinks(ctx context.Context, storeIDs []string) ([]StorePriceListLink, error) {
	body := struct {
		StoreIDs []string `json:"wms_store_ids"`
	}{StoreIDs: storeIDs}

	var result struct {
		Results []StorePriceListLink `json:"results"`
	}
	if err := c.api.Do(ctx, api.StorePriceListLinkGetEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.Results, nil
}
