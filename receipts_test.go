package storelink

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func TestClient_Receipts(t *testing.T) {
	var body map[string]any
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/b2b/v1/receipts/get" {
			t.Errorf("path = %q, want /b2b/v1/receipts/get", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		io.WriteString(w, `{
			"receipts": [{
				"receipt_id": "rcpt-1",
				"order_id_source": "ignored",
				"order": {"id": "order-1"},
				"create_time": "2026-08-01T10:00:00Z",
				"store": {"id": "store-1"},
				"receipt_type": "payment",
				"payment_methods": {"card": {"payment_type": "card"}},
				"items": {
					"milk": {
						"item_type": "product",
						"name": {"en": "Milk"},
						"payments": [{
							"quantity": "1",
							"discount": "0",
							"payment_amounts": [{"payment_id": "card", "price": "12.5"}]
						}]
					}
				}
			}]
		}`)
	}))
	client := newTestClientWith(t, server)

	receipts, err := client.Receipts(context.Background(), ReceiptQuery{
		OrderID:      "order-1",
		ClientFields: []string{"phone_number"},
	})
	if err != nil {
		t.Fatalf("Receipts() error = %v", err)
	}

	if body["order_id"] != "order-1" {
		t.Errorf("order_id = %v, want order-1", body["order_id"])
	}
	if _, ok := body["receipt_id"]; ok {
		t.Error("receipt_id sent alongside order_id query")
	}
	if fields := body["client_fields"].([]any); len(fields) != 1 || fields[0] != "phone_number" {
		t.Errorf("client_fields = %v, want [phone_number]", fields)
	}

	if len(receipts) != 1 {
		t.Fatalf("receipts count = %d, want 1", len(receipts))
	}
	receipt := receipts[0]
	if receipt.ReceiptID != "rcpt-1" || receipt.Order.ID != "order-1" {
		t.Errorf("receipt = %+v, want rcpt-1 for order-1", receipt)
	}
	if receipt.ReceiptType != ReceiptTypePayment {
		t.Errorf("receipt type = %q, want payment", receipt.ReceiptType)
	}
	item, ok := receipt.Items["milk"]
	if !ok {
		t.Fatalf("items = %v, want milk entry", receipt.Items)
	}
	if item.Name["en"] != "Milk" {
		t.Errorf("item name = %v, want en=Milk", item.Name)
	}
	if item.Payments[0].PaymentAmounts[0].Price != "12.5" {
		t.Errorf("payment amount = %+v, want price 12.5", item.Payments[0].PaymentAmounts[0])
	}
}

func TestClient_Receipts_QueryValidation(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid query")
	}))
	client := newTestClientWith(t, server)

	tests := []struct {
		name  string
		query ReceiptQuery
	}{
		{name: "neither set", query: ReceiptQuery{}},
		{name: "both set", query: ReceiptQuery{ReceiptID: "rcpt-1", OrderID: "order-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.Receipts(context.Background(), tt.query); err == nil {
				t.Error("Receipts() error = nil, want validation error")
			}
		})
	}
}

func TestClient_UploadReceiptDocument(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["receipt_id"] != "rcpt-1" {
			t.Errorf("receipt_id = %q, want rcpt-1", body["receipt_id"])
		}
		if body["document"] != "JVBERi0=" {
			t.Errorf("document = %q, want base64 payload", body["document"])
		}
		if body["content_type"] != "application/pdf" {
			t.Errorf("content_type = %q, want application/pdf", body["content_type"])
		}
		io.WriteString(w, `{}`)
	}))
	client := newTestClientWith(t, server)

	if err := client.UploadReceiptDocument(context.Background(), "rcpt-1", "JVBERi0="); err != nil {
		t.Fatalf("UploadReceiptDocument() error = %v", err)
	}
}
