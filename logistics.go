package storelink

import (
	"context"

	"github.com/storelink/client-go/internal/api"
)

// DeliveryStatus is the state of a third-party logistics delivery.
type DeliveryStatus string

// Third-party delivery statuses.
const (
	DeliveryStatusCreated        DeliveryStatus = "created"
	DeliveryStatusPerformerFound DeliveryStatus = "performer_found"
	DeliveryStatusPickuped       DeliveryStatus = "pickuped"
	DeliveryStatusDelivering     DeliveryStatus = "delivering"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
	DeliveryStatusReturning      DeliveryStatus = "returning"
	DeliveryStatusCancelled      DeliveryStatus = "cancelled"
)

// CourierInfo identifies the courier performing a delivery.
type CourierInfo struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CarNumber   string `json:"car_number,omitempty"`
}

// CourierPosition is a courier location fix.
type CourierPosition struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DeliveryEventData is the payload of a delivery event.
type DeliveryEventData struct {
	Type   string         `json:"type"`
	Status DeliveryStatus `json:"status,omitempty"`
}

// DeliveryEvent is one entry of the third-party delivery event feed.
type DeliveryEvent struct {
	DeliveryID int64             `json:"delivery_id"`
	Occurred   string            `json:"occurred"`
	Data       DeliveryEventData `json:"data"`
}

// DeliveryEventsPage is one page of the delivery event feed.
type DeliveryEventsPage struct {
	Cursor string          `json:"cursor"`
	Events []DeliveryEvent `json:"events"`
}

// DeliveryEvents returns one page of the third-party delivery event feed
// starting at cursor. An empty cursor starts from the feed's current tail;
// limit caps the page size, with the platform default applied when zero.
func (c *Client) DeliveryEvents(ctx context.Context, cursor string, limit int) (*DeliveryEventsPage, error) {
	body := map[string]any{}
	if cursor != "" {
		body["cursor"] = cursor
	}
	if limit > 0 {
		body["limit"] = limit
	}

	var page DeliveryEventsPage
	if err := c.api.Do(ctx, api.DeliveriesEventsEndpoint, body, &page); err != nil {
		return nil, wrapError(err)
	}
	return &page, nil
}

// UpdateDeliveryStatus reports the current status of a delivery performed
// by external logistics.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status DeliveryStatus) error {
	body := struct {
		DeliveryID int64          `json:"delivery_id"`
		Status     DeliveryStatus `json:"status"`
	}{DeliveryID: deliveryID, Status: status}

	return wrapError(c.api.Do(ctx, api.DeliveryStatusUpdateEndpoint, body, nil))
}

// UpdateDeliveryCourierInfo reports the courier assigned to a delivery.
func (c *Client) UpdateDeliveryCourierInfo(ctx context.Context, deliveryID int64, courier CourierInfo) error {
	body := struct {
		DeliveryID int64       `json:"delivery_id"`
		Courier    CourierInfo `json:"courier"`
	}{DeliveryID: deliveryID, Courier: courier}

	return wrapError(c.api.Do(ctx, api.CourierInfoUpdateEndpoint, body, nil))
}

// UpdateDeliveryCourierPosition reports a courier location fix for a
// delivery.
func (c *Client) UpdateDeliveryCourierPosition(ctx context.Context, deliveryID int64, position CourierPosition) error {
	body := struct {
		DeliveryID int64           `json:"delivery_id"`
		Position   CourierPosition `json:"position"`
	}{DeliveryID: deliveryID, Position: position}

	return wrapError(c.api.Do(ctx, api.CourierPositionUpdateEndpoint, body, nil))
}
