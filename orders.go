package storelink

import (
	"context"

	"github.com/storelink/client-go/internal/api"
)

// OrderState is the lifecycle state of an order on the platform.
type OrderState string

// Order lifecycle states.
const (
	OrderStateDraft             OrderState = "draft"
	OrderStateCanceled          OrderState = "canceled"
	OrderStateCheckedOut        OrderState = "checked_out"
	OrderStateReserving         OrderState = "reserving"
	OrderStateReserved          OrderState = "reserved"
	OrderStatePostponeReserving OrderState = "postpone_reserving"
	OrderStatePostponed         OrderState = "postponed"
	OrderStateAssembling        OrderState = "assembling"
	OrderStateAssembled         OrderState = "assembled"
	OrderStateDelivering        OrderState = "delivering"
	OrderStateClosed            OrderState = "closed"
	OrderStatePendingCancel     OrderState = "pending_cancel"
)

// PickingState is the warehouse picking state of an order.
type PickingState string

// Warehouse picking states.
const (
	PickingStateReserving  PickingState = "reserving"
	PickingStateApproving  PickingState = "approving"
	PickingStateRequest    PickingState = "request"
	PickingStateProcessing PickingState = "processing"
	PickingStateComplete   PickingState = "complete"
	PickingStateFailed     PickingState = "failed"
	PickingStateCanceled   PickingState = "canceled"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Address is a structured postal address.
type Address struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	House   string `json:"house,omitempty"`
	Street  string `json:"street,omitempty"`
}

// DeliveryAddress is the order drop-off location.
type DeliveryAddress struct {
	Position Point    `json:"position"`
	Address  *Address `json:"address,omitempty"`
	Comment  string   `json:"comment,omitempty"`
}

// DeliverySlot is a delivery time window; timestamps are RFC 3339 strings.
type DeliverySlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DeliveryProperties describes how an order is delivered.
type DeliveryProperties struct {
	Type string        `json:"type"`
	Slot *DeliverySlot `json:"slot,omitempty"`
}

// CartItem is one position in an order cart. Monetary values are decimal
// strings, as the platform transmits them.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Discount  string `json:"discount,omitempty"`
	Vat       string `json:"vat,omitempty"`
}

// Cart is the item list and totals of an order.
type Cart struct {
	Items         []CartItem `json:"items"`
	TotalPrice    string     `json:"total_price"`
	TotalDelivery string     `json:"total_delivery,omitempty"`
	TotalDiscount string     `json:"total_discount,omitempty"`
	TotalPackage  string     `json:"total_package,omitempty"`
	TotalPromo    string     `json:"total_promo,omitempty"`
	TotalVat      string     `json:"total_vat,omitempty"`
}

// Order is the record sent when creating or updating an order.
type Order struct {
	OrderID              string              `json:"order_id"`
	Cart                 *Cart               `json:"cart,omitempty"`
	ClientPhoneNumber    string              `json:"client_phone_number,omitempty"`
	CourierPin           string              `json:"courier_pin,omitempty"`
	DeliveryAddress      *DeliveryAddress    `json:"delivery_address,omitempty"`
	PaymentType          string              `json:"payment_type,omitempty"`
	StoreID              string              `json:"store_id,omitempty"`
	UseExternalLogistics *bool               `json:"use_external_logistics,omitempty"`
	DeliveryProperties   *DeliveryProperties `json:"delivery_properties,omitempty"`
}

// OrderDetails is the full order record returned by the platform.
type OrderDetails struct {
	Order
	CreateTime string `json:"create_time"`
}

// OrderStateResult is one entry of an order state query.
type OrderStateResult struct {
	OrderID string     `json:"order_id"`
	State   OrderState `json:"state"`
}

// OrderEventType discriminates order event payloads.
type OrderEventType string

// Order event types.
const (
	OrderEventStateChange   OrderEventType = "state_change"
	OrderEventNewOrder      OrderEventType = "new_order"
	OrderEventReceiptIssued OrderEventType = "receipt_issued"
)

// OrderEventData is the payload of an order event. CurrentState is set
// for state_change events, ReceiptID for receipt_issued events.
type OrderEventData struct {
	Type         OrderEventType `json:"type"`
	CurrentState OrderState     `json:"current_state,omitempty"`
	ReceiptID    string         `json:"receipt_id,omitempty"`
}

// OrderEvent is one entry of the order event feed.
type OrderEvent struct {
	OrderID  string         `json:"order_id"`
	Occurred string         `json:"occurred"`
	Data     OrderEventData `json:"data"`
}

// OrderEventsPage is one page of the order event feed. Pass Cursor to the
// next OrderEvents call to continue where this page ended.
type OrderEventsPage struct {
	Cursor string       `json:"cursor"`
	Events []OrderEvent `json:"orders_events"`
}

// CreateOrder creates a new order.
func (c *Client) CreateOrder(ctx context.Context, order Order) error {
	return wrapError(c.api.Do(ctx, api.OrderCreateEndpoint, order, nil))
}

// UpdateOrder updates an existing order.
func (c *Client) UpdateOrder(ctx context.Context, order Order) error {
	return wrapError(c.api.Do(ctx, api.OrderUpdateEndpoint, order, nil))
}

// CancelOrder cancels an order. The reason is optional and may be empty.
func (c *Client) CancelOrder(ctx context.Context, orderID, reason string) error {
	body := struct {
		OrderID string `json:"order_id"`
		Reason  string `json:"reason,omitempty"`
	}{OrderID: orderID, Reason: reason}

	return wrapError(c.api.Do(ctx, api.OrderCancelEndpoint, body, nil))
}

// GetOrder returns the full details of an order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*OrderDetails, error) {
	body := struct {
		OrderID string `json:"order_id"`
	}{OrderID: orderID}

	var details OrderDetails
	if err := c.api.Do(ctx, api.OrderDetailEndpoint, body, &details); err != nil {
		return nil, wrapError(err)
	}
	details.OrderID = orderID
	return &details, nil
}

// OrdersState returns the current state of the given orders.
func (c *Client) OrdersState(ctx context.Context, orderIDs []string) ([]OrderStateResult, error) {
	body := struct {
		Orders []string `json:"orders"`
	}{Orders: orderIDs}

	var result struct {
		QueryResults []OrderStateResult `json:"query_results"`
	}
	if err := c.api.Do(ctx, api.OrdersStateEndpoint, body, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.QueryResults, nil
}

// OrderEvents returns one page of the order event feed starting at cursor.
// An empty cursor starts from the feed's current tail position.
func (c *Client) OrderEvents(ctx context.Context, cursor string) (*OrderEventsPage, error) {
	body := map[string]string{}
	if cursor != "" {
		body["cursor"] = cursor
	}

	var page OrderEventsPage
	if err := c.api.Do(ctx, api.OrdersEventsEndpoint, body, &page); err != nil {
		return nil, wrapError(err)
	}
	return &page, nil
}

// SetPickingState moves an order's warehouse picking state.
func (c *Client) SetPickingState(ctx context.Context, orderID string, state PickingState) error {
	body := struct {
		OrderID string       `json:"order_id"`
		State   PickingState `json:"state"`
	}{OrderID: orderID, State: state}

	return wrapError(c.api.Do(ctx, api.PickingSetStateEndpoint, body, nil))
}

// SetDeliveryState moves an order's logistics delivery state.
func (c *Client) SetDeliveryState(ctx context.Context, orderID string, state string) error {
	body := struct {
		OrderID string `json:"order_id"`
		State   string `json:"state"`
	}{OrderID: orderID, State: state}

	return wrapError(c.api.Do(ctx, api.DeliverySetStateEndpoint, body, nil))
}
