package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type jobSearchCacheKeyInput struct {
	Query           string   `json:"query"`
	Location        string   `json:"location"`
	EmploymentTypes []string `json:"employment_types"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func JobsSearchCacheKey(params SearchParams) string {
	types := make([]string, 0, len(params.EmploymentTypes))
	for _, t := range params.EmploymentTypes {
		t = normalizeSearchValue(t)
		if t == "" {
			continue
		}
		types = append(types, t)
	}

	in := jobSearchCacheKeyInput{
		Query:           normalizeSearchValue(params.Query),
		Location:        normalizeSearchValue(params.Location),
		EmploymentTypes: types,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "jobs:search:" + hex.EncodeToString(sum[:])
}
