package jsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable marks a transport-level failure reaching the API, as
// opposed to a response the API itself returned.
var ErrUnavailable = errors.New("job search service unavailable")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jsearch: status=%d body=%s", e.Status, e.Body)
}

// RawJob mirrors the fields of one JSearch result this service consumes.
type RawJob struct {
	JobID          string   `json:"job_id"`
	JobTitle       string   `json:"job_title"`
	EmployerName   string   `json:"employer_name"`
	EmployerLogo   string   `json:"employer_logo"`
	JobCity        string   `json:"job_city"`
	JobState       string   `json:"job_state"`
	JobCountry     string   `json:"job_country"`
	EmploymentType string   `json:"job_employment_type"`
	ApplyLink      string   `json:"job_apply_link"`
	Description    string   `json:"job_description"`
	Salary         string   `json:"job_salary"`
	PostedAtUTC    string   `json:"job_posted_at_datetime_utc"`
	RequiredSkills []string `json:"job_required_skills"`
	Benefits       []string `json:"job_benefits"`
	IsRemote       bool     `json:"job_is_remote"`
}

type searchResponse struct {
	Data []RawJob `json:"data"`
}

// Query carries the already-translated upstream parameters: Country is set
// only when the caller resolved the location to an ISO code, otherwise
// Location holds the free-text filter.
type Query struct {
	Text            string
	Location        string
	Country         string
	EmploymentTypes []string
}

type Client struct {
	baseURL string
	apiKey  string
	host    string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL, apiKey, host string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		host:    host,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Search fetches exactly one page of results. No retry: a failure is
// surfaced to the caller as either a *StatusError or ErrUnavailable.
func (c *Client) Search(ctx context.Context, q Query) ([]RawJob, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil jsearch client")
	}

	params := url.Values{}
	params.Set("query", strings.TrimSpace(q.Text))
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "all")
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if len(q.EmploymentTypes) > 0 {
		params.Set("employment_types", strings.Join(q.EmploymentTypes, ","))
	}

	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("[JSearch] request failed endpoint=%s err=%v", endpoint, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		body := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[JSearch] upstream error status=%d body=%q", resp.StatusCode, body)
		}
		return nil, &StatusError{Status: resp.StatusCode, Body: body}
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return out.Data, nil
}
