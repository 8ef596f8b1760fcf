package handler

import (
	"errors"
	"strings"

	"jobquest/internal/delivery/http/middleware"
	"jobquest/internal/pkg/response"
	"jobquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.SearchUsecase
}

func NewJobsHandler(uc usecase.SearchUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search", h.Search)
}

func (h *JobsHandler) Search(c fiber.Ctx) error {
	result, err := h.uc.Search(c.Context(), usecase.SearchParams{
		Query:           c.Query("query"),
		Location:        c.Query("location"),
		EmploymentTypes: parseEmploymentTypes(c.Query("employment_types")),
	})
	if err != nil {
		return mapSearchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func parseEmploymentTypes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func mapSearchError(err error) error {
	if err == nil {
		return nil
	}

	var upstream *usecase.UpstreamError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job title/query is required", nil, err)
	case errors.As(err, &upstream):
		return middleware.NewAppError(
			fiber.StatusBadGateway,
			"Failed to fetch jobs from external service",
			map[string]any{"upstreamStatus": upstream.Status},
			err,
		)
	case errors.Is(err, usecase.ErrServiceUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Unable to connect to job search service. Please try again later.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
