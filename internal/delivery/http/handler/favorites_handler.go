package handler

import (
	"errors"
	"strconv"

	"jobquest/internal/delivery/http/dto"
	"jobquest/internal/delivery/http/middleware"
	"jobquest/internal/domain/favorite"
	"jobquest/internal/domain/user"
	"jobquest/internal/pkg/response"
	"jobquest/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FavoritesHandler struct {
	uc usecase.FavoritesUsecase
}

type addFavoriteRequest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	ApplyLink      string `json:"applyLink"`
	CompanyLogo    string `json:"companyLogo"`
	Description    string `json:"description"`
	Salary         string `json:"salary"`
}

func NewFavoritesHandler(uc usecase.FavoritesUsecase) *FavoritesHandler {
	return &FavoritesHandler{uc: uc}
}

func (h *FavoritesHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Delete("/", h.Remove)
}

func (h *FavoritesHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	favs, pagination, err := h.uc.List(c.Context(), middleware.UserIDFromCtx(c), usecase.FavoritesListParams{
		Page:   page,
		Limit:  limit,
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	})
	if err != nil {
		return mapFavoritesError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewFavoritesPageResponse(favs, pagination))
}

func (h *FavoritesHandler) Add(c fiber.Ctx) error {
	var req addFavoriteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.Add(c.Context(), middleware.UserIDFromCtx(c), usecase.AddFavoriteInput{
		ID:             req.ID,
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		ApplyLink:      req.ApplyLink,
		CompanyLogo:    req.CompanyLogo,
		Description:    req.Description,
		Salary:         req.Salary,
	})
	if err != nil {
		// A duplicate is reported distinctly but carries the stored entry,
		// so retries after an optimistic UI update stay safe.
		if errors.Is(err, favorite.ErrAlreadyExists) {
			return middleware.NewAppError(
				fiber.StatusConflict,
				"This job is already in your favorites",
				dto.NewFavoriteResponse(saved),
				nil,
			)
		}
		return mapFavoritesError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job added to favorites successfully", dto.NewFavoriteResponse(saved))
}

func (h *FavoritesHandler) Remove(c fiber.Ctx) error {
	removed, err := h.uc.Remove(c.Context(), middleware.UserIDFromCtx(c), c.Query("jobId"))
	if err != nil {
		if errors.Is(err, favorite.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found in favorites", nil, err)
		}
		return mapFavoritesError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job removed from favorites successfully", dto.NewFavoriteResponse(removed))
}

func mapFavoritesError(err error) error {
	if err == nil {
		return nil
	}

	var missing *usecase.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return middleware.NewAppError(fiber.StatusBadRequest, missing.Error(), nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User account not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}
