// Package rajaongkir is a small client for the RajaOngkir (Komerce) shipping API.
package rajaongkir

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("rajaongkir: API key not configured")

// StatusError is a non-2xx upstream answer; Body is the raw upstream payload.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rajaongkir: upstream returned %d", e.StatusCode)
}

// ID accepts both numeric and string ids, the API has used both.
type ID int

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("rajaongkir: invalid id %s", b)
	}
	*id = ID(n)
	return nil
}

func (id ID) String() string { return strconv.Itoa(int(id)) }

// Location is a province, city or district entry.
type Location struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	ZipCode string `json:"zip_code,omitempty"`
}

// CostRequest is the domestic cost query. Origin and Destination are district ids.
type CostRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Weight      int    `json:"weight" validate:"required,gt=0"`
	Courier     string `json:"courier" validate:"required"`
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client. A nil httpClient gets one with the given timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Provinces(ctx context.Context) ([]Location, error) {
	return c.locations(ctx, "/destination/province")
}

func (c *Client) Cities(ctx context.Context, provinceID int) ([]Location, error) {
	return c.locations(ctx, fmt.Sprintf("/destination/city/%d", provinceID))
}

func (c *Client) Districts(ctx context.Context, cityID int) ([]Location, error) {
	return c.locations(ctx, fmt.Sprintf("/destination/district/%d", cityID))
}

// Cost returns the upstream list of courier services for the route, untouched.
func (c *Client) Cost(ctx context.Context, req CostRequest) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("origin", req.Origin)
	form.Set("destination", req.Destination)
	form.Set("weight", strconv.Itoa(req.Weight))
	form.Set("courier", req.Courier)

	data, err := c.do(ctx, http.MethodPost, "/calculate/domestic-cost", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return json.RawMessage("[]"), nil
	}
	return data, nil
}

func (c *Client) locations(ctx context.Context, path string) ([]Location, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return []Location{}, nil
	}

	var out []Location
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("rajaongkir: decode %s: %w", path, err)
	}
	return out, nil
}

// do performs the call and returns the "data" member of the envelope.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("rajaongkir: build request: %w", err)
	}
	req.Header.Set("key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rajaongkir: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rajaongkir: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: bytes.TrimSpace(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("rajaongkir: decode envelope: %w", err)
	}
	return env.Data, nil
}
