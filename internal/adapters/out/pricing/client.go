// Package pricing calls the external pricing service over HTTP. Offer
// acceptance and its cancellation are the remote halves of the acceptance
// workflow's first step.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type pointRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type offerRequest struct {
	Pickup   pointRequest `json:"pickup"`
	Delivery pointRequest `json:"delivery"`
}

type offerResponse struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// Client implements ports.PricingClient against the HTTP pricing service.
type Client struct {
	session *http.Client
	baseURL string
}

// NewClient creates a pricing client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetOffer requests a priced proposal for a shipment.
func (c *Client) GetOffer(ctx context.Context, pickup, delivery kernel.Location) (ports.Offer, error) {
	body, err := json.Marshal(offerRequest{
		Pickup:   pointRequest{Latitude: pickup.Latitude(), Longitude: pickup.Longitude()},
		Delivery: pointRequest{Latitude: delivery.Latitude(), Longitude: delivery.Longitude()},
	})
	if err != nil {
		return ports.Offer{}, err
	}

	resp, err := c.post(ctx, "/offers", bytes.NewReader(body))
	if err != nil {
		return ports.Offer{}, err
	}
	defer resp.Body.Close()

	var decoded offerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Offer{}, fmt.Errorf("decode response: %w", err)
	}

	offerID, err := kernel.UUIDFromString(decoded.ID)
	if err != nil {
		return ports.Offer{}, err
	}

	return ports.Offer{ID: offerID, Price: decoded.Price}, nil
}

// AcceptOffer confirms an offer.
func (c *Client) AcceptOffer(ctx context.Context, offerID kernel.UUID) error {
	resp, err := c.post(ctx, "/offers/"+offerID.String()+"/accept", nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// CancelAcceptOffer reverts a confirmed offer.
func (c *Client) CancelAcceptOffer(ctx context.Context, offerID kernel.UUID) error {
	resp, err := c.post(ctx, "/offers/"+offerID.String()+"/cancel", nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	return resp, nil
}
