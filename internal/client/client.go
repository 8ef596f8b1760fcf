package client

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

	"jobquest/internal/usecase"
)

// ErrNotSignedIn is returned by favorite mutations attempted without a
// token. An anonymous caller never reaches the favorites API.
var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non-2xx envelope response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status=%d message=%s", e.Status, e.Message)
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type FavoriteJob struct {
	JobID          string `json:"jobId"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	ApplyLink      string `json:"applyLink"`
	CompanyLogo    string `json:"companyLogo,omitempty"`
	Description    string `json:"description,omitempty"`
	Salary         string `json:"salary,omitempty"`
	SavedAt        string `json:"savedAt,omitempty"`
}

type favoritesPage struct {
	Data       []FavoriteJob      `json:"data"`
	Pagination usecase.Pagination `json:"pagination"`
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SignedIn() bool {
	return c != nil && c.token != ""
}

// ListAllFavorites walks every page of the favorites list.
func (c *Client) ListAllFavorites(ctx context.Context) ([]FavoriteJob, error) {
	if !c.SignedIn() {
		return nil, ErrNotSignedIn
	}

	var all []FavoriteJob
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", "50")

		var out favoritesPage
		if err := c.do(ctx, http.MethodGet, "/api/v1/favorites?"+q.Encode(), nil, &out); err != nil {
			return nil, err
		}
		all = append(all, out.Data...)
		if !out.Pagination.HasNextPage {
			return all, nil
		}
	}
}

func (c *Client) AddFavorite(ctx context.Context, j FavoriteJob) error {
	if !c.SignedIn() {
		return ErrNotSignedIn
	}

	body := map[string]string{
		"id":             j.JobID,
		"title":          j.Title,
		"company":        j.Company,
		"location":       j.Location,
		"employmentType": j.EmploymentType,
		"applyLink":      j.ApplyLink,
		"companyLogo":    j.CompanyLogo,
		"description":    j.Description,
		"salary":         j.Salary,
	}
	return c.do(ctx, http.MethodPost, "/api/v1/favorites", body, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, jobID string) error {
	if !c.SignedIn() {
		return ErrNotSignedIn
	}

	q := url.Values{}
	q.Set("jobId", jobID)
	return c.do(ctx, http.MethodDelete, "/api/v1/favorites?"+q.Encode(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
