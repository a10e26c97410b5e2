package storelink

import (
	"context"

	"github.com/storelink/client-go/internal/api"
)

// Store is a warehouse or darkstore on the platform.
type Store struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Location Point  `json:"location"`
	Address  string `json:"address,omitempty"`
	Name     string `json:"name,omitempty"`
}

// Stores returns all stores available to the auth token.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	var result struct {
		Stores []Store `json:"stores"`
	}
	if err := c.api.Do(ctx, api.StoresGetEndpoint, struct{}{}, &result); err != nil {
		return nil, wrapError(err)
	}
	return result.Stores, nil
}
