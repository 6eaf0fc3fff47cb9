// Package client is a thin HTTP client for the GrindZone API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/services"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("grindzone api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New. httpClient == nil даёт клиент с таймаутом 10s.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListTournaments(ctx context.Context, f services.ListFilter) ([]models.Tournament, error) {
	q := url.Values{}
	if f.Game != "" {
		q.Set("game", f.Game)
	}
	if f.Tier != "" {
		q.Set("tier", f.Tier)
	}
	if f.FullOnly {
		q.Set("full", strconv.FormatBool(true))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}

	var out struct {
		Tournaments []models.Tournament `json:"tournaments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tournaments", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Tournaments, nil
}

func (c *Client) Categories(ctx context.Context) (models.TournamentCategories, error) {
	var out models.TournamentCategories
	err := c.do(ctx, http.MethodGet, "/api/tournaments/categories", nil, nil, &out)
	return out, err
}

func (c *Client) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	var out struct {
		Tournament *models.Tournament `json:"tournament"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tournaments/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Tournament, nil
}

func (c *Client) Register(ctx context.Context, id string, in services.RegisterInput) (*services.RegistrationResult, error) {
	var out services.RegistrationResult
	path := "/api/tournaments/" + url.PathEscape(id) + "/register"
	if err := c.do(ctx, http.MethodPost, path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var out struct {
		Payments []models.Payment `json:"payments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/payments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

func (c *Client) Stats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Error == "" {
			env.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
