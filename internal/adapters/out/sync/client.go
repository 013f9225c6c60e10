// Package sync implements the order store client over plain HTTP. The store
// is an opaque full-collection endpoint: GET returns every order snapshot,
// PUT replaces the collection with the body.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

const defaultTimeout = 10 * time.Second

// Client talks to the external order store. Implements ports.OrderSyncClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a store client for the given base URL.
// The order collection lives at baseURL/orders.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// FetchAll returns the complete current order collection.
func (c *Client) FetchAll(ctx context.Context) ([]order.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order store fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order store fetch: unexpected status %d", resp.StatusCode)
	}

	var snapshots []order.Snapshot
	if err = json.NewDecoder(resp.Body).Decode(&snapshots); err != nil {
		return nil, fmt.Errorf("order store fetch: decode: %w", err)
	}

	return snapshots, nil
}

// PushAll writes the full order collection to the external store.
func (c *Client) PushAll(ctx context.Context, snapshots []order.Snapshot) error {
	body, err := json.Marshal(snapshots)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order store push: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("order store push: unexpected status %d", resp.StatusCode)
	}

	return nil
}
