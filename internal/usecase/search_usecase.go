package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobquest/internal/domain/job"
	"jobquest/internal/infrastructure/jsearch"
)

const (
	placeholderTitle    = "No title available"
	placeholderCompany  = "Unknown Company"
	placeholderLocation = "Location not specified"
)

// countryCodeMap resolves common country names to ISO 3166-1 alpha-2 codes.
// A location that matches becomes an upstream country filter; anything else
// is forwarded as a free-text location.
var countryCodeMap = map[string]string{
	"india":          "in",
	"united states":  "us",
	"usa":            "us",
	"united kingdom": "gb",
	"uk":             "gb",
	"germany":        "de",
	"canada":         "ca",
	"australia":      "au",
	"japan":          "jp",
	"china":          "cn",
}

type SearchParams struct {
	Query           string
	Location        string
	EmploymentTypes []string
}

type SearchQueryEcho struct {
	SearchTerm      string   `json:"searchTerm"`
	Location        string   `json:"location,omitempty"`
	EmploymentTypes []string `json:"employmentTypes,omitempty"`
	Country         string   `json:"country,omitempty"`
}

type SearchResult struct {
	Jobs  []job.Job       `json:"data"`
	Total int             `json:"total"`
	Query SearchQueryEcho `json:"query"`
}

type searchClient interface {
	Search(ctx context.Context, q jsearch.Query) ([]jsearch.RawJob, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type Search struct {
	client searchClient
	cache  SearchCache
	logger *log.Logger

	now func() time.Time
}

func NewSearchUsecase(client searchClient, cache SearchCache, logger *log.Logger) *Search {
	return &Search{client: client, cache: cache, logger: logger, now: time.Now}
}

func (u *Search) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return SearchResult{}, ErrInvalidInput
	}

	location := strings.TrimSpace(params.Location)
	country := ""
	freeText := ""
	if location != "" {
		if code, ok := countryCodeMap[strings.ToLower(location)]; ok {
			country = code
		} else {
			freeText = location
		}
	}

	types := make([]string, 0, len(params.EmploymentTypes))
	for _, t := range params.EmploymentTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		types = append(types, t)
	}

	echo := SearchQueryEcho{
		SearchTerm:      query,
		Location:        location,
		EmploymentTypes: types,
		Country:         country,
	}

	cacheKey := JobsSearchCacheKey(SearchParams{Query: query, Location: location, EmploymentTypes: types})
	if u.cache != nil {
		var cached SearchResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	raws, err := u.client.Search(ctx, jsearch.Query{
		Text:            query,
		Location:        freeText,
		Country:         country,
		EmploymentTypes: types,
	})
	if err != nil {
		var statusErr *jsearch.StatusError
		if errors.As(err, &statusErr) {
			return SearchResult{}, &UpstreamError{Status: statusErr.Status}
		}
		if errors.Is(err, jsearch.ErrUnavailable) {
			return SearchResult{}, ErrServiceUnavailable
		}
		return SearchResult{}, ErrInternal
	}

	jobs := make([]job.Job, 0, len(raws))
	for _, raw := range raws {
		jobs = append(jobs, u.normalize(raw))
	}

	result := SearchResult{Jobs: jobs, Total: len(jobs), Query: echo}
	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, result, 0); err != nil && u.logger != nil {
			u.logger.Printf("[Search] cache write failed key=%s err=%v", cacheKey, err)
		}
	}
	return result, nil
}

// normalize degrades missing fields to placeholders instead of failing the
// whole response. A result without a source job_id gets a synthetic id from
// the employer name and the current time; such ids do not deduplicate
// across requests.
func (u *Search) normalize(raw jsearch.RawJob) job.Job {
	id := raw.JobID
	if id == "" {
		id = fmt.Sprintf("%s-%d", raw.EmployerName, u.now().UnixMilli())
	}

	title := raw.JobTitle
	if title == "" {
		title = placeholderTitle
	}

	company := raw.EmployerName
	if company == "" {
		company = placeholderCompany
	}

	location := placeholderLocation
	switch {
	case raw.JobCity != "" && raw.JobState != "":
		location = raw.JobCity + ", " + raw.JobState
	case raw.JobCountry != "":
		location = raw.JobCountry
	}

	employmentType := raw.EmploymentType
	if employmentType == "" {
		employmentType = "Not specified"
	}

	applyLink := raw.ApplyLink
	if applyLink == "" {
		applyLink = "#"
	}

	requirements := raw.RequiredSkills
	if requirements == nil {
		requirements = []string{}
	}
	benefits := raw.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	return job.Job{
		ID:             id,
		Title:          title,
		Company:        company,
		Location:       location,
		EmploymentType: employmentType,
		ApplyLink:      applyLink,
		CompanyLogo:    raw.EmployerLogo,
		Description:    raw.Description,
		Salary:         raw.Salary,
		PostedDate:     raw.PostedAtUTC,
		Requirements:   requirements,
		Benefits:       benefits,
		IsRemote:       raw.IsRemote,
	}
}
