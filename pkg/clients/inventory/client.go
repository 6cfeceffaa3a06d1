package inventory

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/poultry-stock/internal/config"
	"github.com/mamadbah2/poultry-stock/internal/domain/models"
)

const stockPath = "inventory-stock"

// Client exposes the inventory API operations used by the reconciliation service.
type Client interface {
	// ListStock returns the records dated within [start, end]. A zero bound is open.
	ListStock(ctx context.Context, start, end time.Time) ([]models.StockRecord, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds an inventory API client using the provided configuration values.
func NewClient(cfg config.InventoryAPIConfig) *APIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{httpClient: restyClient}
}

// apiError represents an error payload returned by the inventory API.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory api error: code=%d, message=%s", e.Code, e.Message)
}

func (c *APIClient) ListStock(ctx context.Context, start, end time.Time) ([]models.StockRecord, error) {
	var records []models.StockRecord
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(&records).
		SetError(apiErr)

	if !start.IsZero() {
		req.SetQueryParam("startDate", start.Format(models.DateLayout))
	}
	if !end.IsZero() {
		req.SetQueryParam("endDate", end.Format(models.DateLayout))
	}

	resp, err := req.Get(stockPath)
	if err != nil {
		return nil, fmt.Errorf("list inventory stock: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return nil, &StatusError{Code: resp.StatusCode(), Message: message}
	}

	return records, nil
}
