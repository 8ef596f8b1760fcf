package dto

import (
	"time"

	"jobquest/internal/domain/favorite"
	"jobquest/internal/usecase"
)

type FavoriteResponse struct {
	JobID          string `json:"jobId"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	EmploymentType string `json:"employmentType"`
	ApplyLink      string `json:"applyLink"`
	CompanyLogo    string `json:"companyLogo,omitempty"`
	Description    string `json:"description"`
	Salary         string `json:"salary"`
	SavedAt        string `json:"savedAt"`
}

type FavoritesPageResponse struct {
	Data       []FavoriteResponse `json:"data"`
	Pagination usecase.Pagination `json:"pagination"`
}

func NewFavoriteResponse(f favorite.Favorite) FavoriteResponse {
	return FavoriteResponse{
		JobID:          f.JobID,
		Title:          f.Title,
		Company:        f.Company,
		Location:       f.Location,
		EmploymentType: f.EmploymentType,
		ApplyLink:      f.ApplyLink,
		CompanyLogo:    f.CompanyLogo,
		Description:    f.Description,
		Salary:         f.Salary,
		SavedAt:        f.SavedAt.UTC().Format(time.RFC3339),
	}
}

func NewFavoritesPageResponse(favs []favorite.Favorite, p usecase.Pagination) FavoritesPageResponse {
	out := make([]FavoriteResponse, 0, len(favs))
	for _, f := range favs {
		out = append(out, NewFavoriteResponse(f))
	}
	return FavoritesPageResponse{Data: out, Pagination: p}
}
