package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// HTTPSource polls an external JSON price endpoint. The endpoint must answer
// GET with a body containing a "price" field, either a number or a numeric
// string, e.g. {"symbol":"ETHUSDT","price":"1745.10"}.
type HTTPSource struct {
	client *resty.Client
	url    string
}

// NewHTTPSource builds a source for the given endpoint URL.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := resty.New().SetTimeout(timeout)
	return &HTTPSource{client: client, url: url}
}

type priceResponse struct {
	Price json.Number `json:"price"`
}

// LatestPrice fetches and parses the endpoint's current price.
func (s *HTTPSource) LatestPrice(ctx context.Context) (decimal.Decimal, error) {
	var body priceResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(s.url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch price: %w", err)
	}
	if resp.IsError() {
		return decimal.Zero, fmt.Errorf("fetch price: status %d", resp.StatusCode())
	}
	if body.Price == "" {
		return decimal.Zero, fmt.Errorf("fetch price: missing price field")
	}
	price, err := decimal.NewFromString(body.Price.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", body.Price, err)
	}
	return price, nil
}

// Describe implements PriceSource.
func (s *HTTPSource) Describe() string { return "http:" + s.url }

// StaticSource returns a fixed price. Useful for tests and for pinning a
// settlement price operationally.
type StaticSource struct {
	price decimal.Decimal
}

// NewStaticSource builds a source that always answers with price.
func NewStaticSource(price decimal.Decimal) *StaticSource {
	return &StaticSource{price: price}
}

// LatestPrice implements PriceSource.
func (s *StaticSource) LatestPrice(context.Context) (decimal.Decimal, error) {
	return s.price, nil
}

// Describe implements PriceSource.
func (s *StaticSource) Describe() string { return "static:" + s.price.String() }
