package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"marnie-pos/internal/domain"
)

// Client reads from a running POS server.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type statsResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Stats   *domain.Stats `json:"stats"`
}

func (c *Client) DashboardStats(ctx context.Context) (*domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard/stats", nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch dashboard stats")
	}
	defer resp.Body.Close()

	var body statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrapf(err, "decode dashboard stats (HTTP %d)", resp.StatusCode)
	}
	if !body.Success || body.Stats == nil {
		msg := body.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, errors.Errorf("server refused dashboard stats: %s", msg)
	}
	return body.Stats, nil
}
