package storelink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/storelink/client-go/internal/api"
)

// ProductStatus is the catalog status of a product.
type ProductStatus string

// Product statuses.
const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDisabled ProductStatus = "disabled"
	ProductStatusArchived ProductStatus = "archived"
)

// CustomAttributes is the attribute block of a product. The platform
// allows arbitrary extra keys alongside the documented ones; unknown keys
// survive a round trip through ExtraAttributes.
type CustomAttributes struct {
	LongName         map[string]string `json:"longName"`
	ShortNameLoc     map[string]string `json:"shortNameLoc"`
	MarkCount        float64           `json:"markCount"`
	MarkCountUnit    string            `json:"markCountUnitList"`
	Barcode          []string          `json:"barcode,omitempty"`
	Images           []string          `json:"images,omitempty"`
	DescriptionLoc   map[string]string `json:"descriptionLoc,omitempty"`
	NomenclatureType string            `json:"nomenclatureType,omitempty"`
	TypeAccounting   string            `json:"typeAccounting,omitempty"`

	// ExtraAttributes holds every attribute key the schema above does not
	// name.
	ExtraAttributes map[string]any `json:"-"`
}

// knownAttributeKeys are the wire names of the typed CustomAttributes
// fields.
var knownAttributeKeys = map[string]bool{
	"longName":          true,
	"shortNameLoc":      true,
	"markCount":         true,
	"markCountUnitList": true,
	"barcode":           true,
	"images":            true,
	"descriptionLoc":    true,
	"nomenclatureType":  true,
	"typeAccounting":    true,
}

// customAttributesAlias avoids recursing into the custom JSON methods.
type customAttributesAlias CustomAttributes

// UnmarshalJSON splits incoming attributes into the typed fields and
// ExtraAttributes.
func (a *CustomAttributes) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*customAttributesAlias)(a)); err != nil {
		return err
	}

	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownAttributeKeys[key] {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if a.ExtraAttributes == nil {
			a.ExtraAttributes = make(map[string]any)
		}
		a.ExtraAttributes[key] = decoded
	}
	return nil
}

// MarshalJSON folds ExtraAttributes back into the attribute object.
func (a CustomAttributes) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(customAttributesAlias(a))
	if err != nil {
		return nil, err
	}
	if len(a.ExtraAttributes) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range a.ExtraAttributes {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = encoded
	}
	return json.Marshal(merged)
}

// Product is a catalog product record.
type Product struct {
	ProductID        string           `json:"product_id"`
	MasterCategory   string           `json:"master_category"`
	Status           ProductStatus    `json:"status"`
	IsMeta           bool             `json:"is_meta"`
	CustomAttributes CustomAttributes `json:"custom_attributes"`
}

// ProductIterator walks the product update feed page by page. It follows
// the bufio.Scanner idiom:
//
//	it := client.ProductUpdates("")
//	for it.Next(ctx) {
//	    product := it.Product()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type ProductIterator struct {
	client  *Client
	cursor  string
	buf     []Product
	current Product
	loaded  int
	done    bool
	err     error
}

// ProductUpdates returns an iterator over product updates starting at
// cursor. An empty cursor starts from the beginning of the feed, which
// yields a full catalog snapshot.
func (c *Client) ProductUpdates(cursor string) *ProductIterator {
	return &ProductIterator{client: c, cursor: cursor}
}

// Next advances to the next product, fetching feed pages as needed. It
// returns false when the feed is exhausted or a fetch failed; check Err
// to tell the two apart.
func (it *ProductIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}

	for len(it.buf) == 0 {
		if it.done {
			return false
		}
		if err := it.fetchPage(ctx); err != nil {
			it.err = err
			return false
		}
	}

	it.current = it.buf[0]
	it.buf = it.buf[1:]
	return true
}

// Product returns the product advanced to by the last call to Next.
func (it *ProductIterator) Product() Product {
	return it.current
}

// Err returns the first error encountered while iterating, if any.
func (it *ProductIterator) Err() error {
	return it.err
}

// Cursor returns the feed position after the last fetched page. Resume
// later with ProductUpdates(cursor).
func (it *ProductIterator) Cursor() string {
	return it.cursor
}

func (it *ProductIterator) fetchPage(ctx context.Context) error {
	body := struct {
		Cursor string `json:"cursor,omitempty"`
		Limit  int    `json:"limit"`
	}{Cursor: it.cursor, Limit: ProductsRequestLimit}

	var page struct {
		Products []Product `json:"products"`
		Cursor   string    `json:"cursor"`
	}
	if err := it.client.api.Do(ctx, api.ProductQueryEndpoint, body, &page); err != nil {
		return wrapError(err)
	}

	it.cursor = page.Cursor
	it.buf = page.Products
	it.loaded += len(page.Products)
	it.client.logger.Info("loaded products", zap.Int("total", it.loaded))

	if len(page.Products) < ProductsRequestLimit {
		it.done = true
	}
	return nil
}

// AllProducts returns the full product catalog keyed by product ID. With
// onlyActive set, non-active products are excluded; a later feed entry
// that deactivates a product removes it from the result.
func (c *Client) AllProducts(ctx context.Context, onlyActive bool) (map[string]Product, error) {
	products := make(map[string]Product)

	it := c.ProductUpdates("")
	for it.Next(ctx) {
		product := it.Product()
		if onlyActive && product.Status != ProductStatusActive {
			delete(products, product.ProductID)
			continue
		}
		products[product.ProductID] = product
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProducts uploads products to the catalog in batches.
func (c *Client) CreateProducts(ctx context.Context, products []Product) error {
	created := 0
	for _, batch := range batches(products, DefaultBatchSize) {
		body := struct {
			Products []Product `json:"products"`
		}{Products: batch}

		if err := c.api.Do(ctx, api.ProductCreateEndpoint, body, nil); err != nil {
			return wrapError(err)
		}

		created += len(batch)
		c.logger.Info("created products",
			zap.Int("created", created),
			zap.Int("total", len(products)),
		)
	}
	return nil
}

// MediaType is the kind of a product media asset.
type MediaType string

// Media types.
const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaPosition places a media asset within a product's gallery.
type MediaPosition string

// Media positions.
const (
	MediaPositionFirst MediaPosition = "first"
	MediaPositionLast  MediaPosition = "last"
)

// ProductMedia is a media asset uploaded for a product.
type ProductMedia struct {
	ProductID string
	MediaType MediaType
	Position  MediaPosition
	FileName  string
	Data      io.Reader
}

// CreateProductMedia uploads one media asset via a multipart form.
func (c *Client) CreateProductMedia(ctx context.Context, media ProductMedia) error {
	if media.Data == nil {
		return fmt.Errorf("media data is required")
	}

	fields := map[string]string{
		"product_id": media.ProductID,
		"media_type": string(media.MediaType),
		"position":   string(media.Position),
	}
	fileName := media.FileName
	if fileName == "" {
		fileName = "media"
	}

	err := c.api.DoMultipart(ctx, api.ProductMediaCreateEndpoint,
		fields, "data", fileName, media.Data, nil)
	return wrapError(err)
}

// ProductVat is a product's VAT rate; the rate is a decimal string.
type ProductVat struct {
	ProductID string `json:"product_id"`
	Vat       string `json:"vat"`
}

// ProductVats returns VAT rates for the given products.
func (c *Client) ProductVats(ctx context.Context, productIDs []string) ([]ProductVat, error) {
	body := struct {
		ProductIDs []string `json:"product_ids"`
	}{ProductIDs: productIDs}

	var result struct {
		Results []ProductVat `json:"results"`
	}
	if err := c.api.Do(ctx, api.ProductVatGetEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.Results, nil
}

// CreateProductVats uploads VAT rates in batches.
func (c *Client) CreateProductVats(ctx context.Context, vats []ProductVat) error {
	return c.sendProductVats(ctx, api.ProductVatCreateEndpoint, "created product VATs", vats)
}

// UpdateProductVats updates VAT rates in batches.
func (c *Client) UpdateProductVats(ctx context.Context, vats []ProductVat) error {
	return c.sendProductVats(ctx, api.ProductVatUpdateEndpoint, "updated product VATs", vats)
}

func (c *Client) sendProductVats(ctx context.Context, endpoint, progressMsg string, vats []ProductVat) error {
	sent := 0
	for _, batch := range batches(vats, DefaultBatchSize) {
		body := struct {
			ProductsVat []ProductVat `json:"products_vat"`
		}{ProductsVat: batch}

		if err := c.api.Do(ctx, endpoint, body, nil); err != nil {
			return wrapError(err)
		}

		sent += len(batch)
		c.logger.Info(progressMsg,
			zap.Int("sent", sent),
			zap.Int("total", len(vats)),
		)
	}
	return nil
}
