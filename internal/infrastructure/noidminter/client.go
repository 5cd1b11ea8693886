// Package noidminter provides a Minter implementation backed by the
// noidminter HTTP service.
package noidminter

import (
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

	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
)

// requestTimeout bounds one mint request.
const requestTimeout = 30 * time.Second

// Client implements ports.Minter against the noidminter service.
type Client struct {
	url      string
	username string
	password string
	http     *http.Client
}

// NewClient creates a new noidminter client.
func NewClient(cfg config.NoidMinterConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("noidminter url is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("noidminter credentials are required")
	}
	return &Client{
		url:      cfg.URL,
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: requestTimeout},
	}, nil
}

// Mint requests num new identifiers from the service. Identifiers must
// come from the central service; there is no local fallback, so any
// failure here is final.
func (c *Client) Mint(ctx context.Context, num int) ([]string, error) {
	if num <= 0 {
		return nil, nil
	}

	form := url.Values{}
	form.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building mint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %d ids: %w", num, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading mint response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("minter returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("parsing mint response: %w", err)
	}
	if len(ids) < num {
		return nil, fmt.Errorf("requested %d ids, got %d", num, len(ids))
	}
	return ids, nil
}
