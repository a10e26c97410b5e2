package storelink

import (
	"context"
	"fmt"

	"github.com/storelink/client-go/internal/api"
)

// ReceiptType distinguishes payment receipts from refunds.
type ReceiptType string

// Receipt types.
const (
	ReceiptTypePayment ReceiptType = "payment"
	ReceiptTypeRefund  ReceiptType = "refund"
)

// Translations maps language codes to localized text.
type Translations map[string]string

// ReceiptOrder references the order a receipt was issued for.
type ReceiptOrder struct {
	ID         string `json:"id"`
	CreateTime string `json:"create_time,omitempty"`
}

// ReceiptStore references the store a receipt was issued by.
type ReceiptStore struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// ReceiptPaymentAmount is one payment's share of an item price.
type ReceiptPaymentAmount struct {
	PaymentID string `json:"payment_id"`
	Price     string `json:"price"`
}

// ReceiptItemPayment details how one item quantity was paid for.
type ReceiptItemPayment struct {
	Quantity       string                 `json:"quantity"`
	Discount       string                 `json:"discount"`
	DiscountAmount string                 `json:"discount_amount,omitempty"`
	PaymentAmounts []ReceiptPaymentAmount `json:"payment_amounts"`
	Barcode        string                 `json:"barcode,omitempty"`
}

// ReceiptItem is one line of a receipt. Product lines carry Name;
// non-product lines (delivery, tips, service fees) carry Title.
type ReceiptItem struct {
	ItemType string               `json:"item_type"`
	Name     Translations         `json:"name,omitempty"`
	Title    Translations         `json:"title,omitempty"`
	Payments []ReceiptItemPayment `json:"payments"`
	Vat      string               `json:"vat,omitempty"`
}

// ReceiptClientName is the customer's name as printed on the receipt.
type ReceiptClientName struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ReceiptClient is the customer block of a receipt.
type ReceiptClient struct {
	FullName        *ReceiptClientName `json:"full_name,omitempty"`
	PhoneNumber     string             `json:"phone_number,omitempty"`
	Email           string             `json:"email,omitempty"`
	DeliveryAddress *Address           `json:"delivery_address,omitempty"`
}

// PaymentMethod describes one payment used on a receipt.
type PaymentMethod struct {
	PaymentType string `json:"payment_type"`
}

// Receipt is a fiscal receipt record.
type Receipt struct {
	ReceiptID      string                   `json:"receipt_id"`
	Order          ReceiptOrder             `json:"order"`
	CreateTime     string                   `json:"create_time"`
	Store          ReceiptStore             `json:"store"`
	ReceiptType    ReceiptType              `json:"receipt_type"`
	PaymentMethods map[string]PaymentMethod `json:"payment_methods"`
	Items          map[string]ReceiptItem   `json:"items"`
	Client         *ReceiptClient           `json:"client,omitempty"`
}

// ReceiptQuery selects the receipts to fetch. Exactly one of ReceiptID or
// OrderID must be set. ClientFields optionally names the customer fields
// to include in the response.
type ReceiptQuery struct {
	ReceiptID    string
	OrderID      string
	ClientFields []string
}

// Receipts returns the receipts matching the query.
func (c *Client) Receipts(ctx context.Context, query ReceiptQuery) ([]Receipt, error) {
	if query.ReceiptID != "" && query.OrderID != "" {
		return nil, fmt.Errorf("exactly one of ReceiptID or OrderID is required")
	}
	if query.ReceiptID == "" && query.OrderID == "" {
		return nil, fmt.Errorf("one of ReceiptID or OrderID is required")
	}

	body := map[string]any{}
	if query.ReceiptID != "" {
		body["receipt_id"] = query.ReceiptID
	} else {
		body["order_id"] = query.OrderID
	}
	if len(query.ClientFields) > 0 {
		body["client_fields"] = query.ClientFields
	}

	var result struct {
		Receipts []Receipt `json:"receipts"`
	}
	if err := c.api.Do(ctx, api.ReceiptGetEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.Receipts, nil
}

// UploadReceiptDocument attaches a PDF document to a receipt. The
// document is the base64-encoded file contents.
func (c *Client) UploadReceiptDocument(ctx context.Context, receiptID, document string) error {
	body := struct {
		ReceiptID   string `json:"receipt_id"`
		Document    string `json:"document"`
		ContentType string `json:"content_type"`
	}{ReceiptID: receiptID, Document: document, ContentType: "application/pdf"}

	return wrapError(c.api.Do(ctx, api.ReceiptUploadEndpoint, body, nil))
}
