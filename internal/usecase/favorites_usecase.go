package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"jobquest/internal/domain/favorite"
	"jobquest/internal/domain/user"
	"jobquest/internal/ws"

	"github.com/google/uuid"
)

const (
	SortBySavedAt = "savedAt"
	SortByTitle   = "title"
	SortByCompany = "company"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type FavoritesListParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

type AddFavoriteInput struct {
	ID             string
	Title          string
	Company        string
	Location       string
	EmploymentType string
	ApplyLink      string
	CompanyLogo    string
	Description    string
	Salary         string
}

type FavoritesUsecase interface {
	List(ctx context.Context, userID uuid.UUID, params FavoritesListParams) ([]favorite.Favorite, Pagination, error)
	// Add is idempotent: a duplicate JobID returns the existing entry with
	// favorite.ErrAlreadyExists rather than creating a second one.
	Add(ctx context.Context, userID uuid.UUID, in AddFavoriteInput) (favorite.Favorite, error)
	Remove(ctx context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error)
}

type Favorites struct {
	users     user.Repository
	favorites favorite.Repository
	logger    *log.Logger

	now func() time.Time
}

func NewFavoritesUsecase(users user.Repository, favorites favorite.Repository, logger *log.Logger) *Favorites {
	return &Favorites{users: users, favorites: favorites, logger: logger, now: time.Now}
}

func (u *Favorites) List(ctx context.Context, userID uuid.UUID, params FavoritesListParams) ([]favorite.Favorite, Pagination, error) {
	params = normalizeListParams(params)
	if params.Page < 1 || params.Limit < 1 {
		return nil, Pagination{}, ErrInvalidInput
	}
	if !validSortBy(params.SortBy) || !validOrder(params.Order) {
		return nil, Pagination{}, ErrInvalidInput
	}

	if err := u.ensureUser(ctx, userID); err != nil {
		return nil, Pagination{}, err
	}

	all, err := u.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, Pagination{}, ErrInternal
	}

	sortFavorites(all, params.SortBy, params.Order)

	total := len(all)
	totalPages := (total + params.Limit - 1) / params.Limit
	skip := (params.Page - 1) * params.Limit

	page := []favorite.Favorite{}
	if skip < total {
		end := skip + params.Limit
		if end > total {
			end = total
		}
		page = all[skip:end]
	}

	p := Pagination{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: params.Limit,
		HasNextPage:  skip+params.Limit < total,
		HasPrevPage:  params.Page > 1,
	}
	return page, p, nil
}

func (u *Favorites) Add(ctx context.Context, userID uuid.UUID, in AddFavoriteInput) (favorite.Favorite, error) {
	if missing := missingAddFields(in); len(missing) > 0 {
		return favorite.Favorite{}, &MissingFieldsError{Fields: missing}
	}

	if err := u.ensureUser(ctx, userID); err != nil {
		return favorite.Favorite{}, err
	}

	f := favorite.Favorite{
		ID:             uuid.New(),
		UserID:         userID,
		JobID:          strings.TrimSpace(in.ID),
		Title:          strings.TrimSpace(in.Title),
		Company:        strings.TrimSpace(in.Company),
		Location:       strings.TrimSpace(in.Location),
		EmploymentType: in.EmploymentType,
		ApplyLink:      in.ApplyLink,
		CompanyLogo:    in.CompanyLogo,
		Description:    in.Description,
		Salary:         in.Salary,
		SavedAt:        u.now().UTC(),
	}

	if err := u.favorites.Add(ctx, f); err != nil {
		if errors.Is(err, favorite.ErrAlreadyExists) {
			existing, getErr := u.favorites.GetByUserAndJob(ctx, userID, f.JobID)
			if getErr != nil {
				return favorite.Favorite{}, ErrInternal
			}
			return existing, favorite.ErrAlreadyExists
		}
		return favorite.Favorite{}, ErrInternal
	}

	ws.NotifyFavoritesUpdated(userID, "added", f.JobID)
	return f, nil
}

func (u *Favorites) Remove(ctx context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return favorite.Favorite{}, ErrInvalidInput
	}

	if err := u.ensureUser(ctx, userID); err != nil {
		return favorite.Favorite{}, err
	}

	removed, err := u.favorites.Remove(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, favorite.ErrNotFound) {
			return favorite.Favorite{}, favorite.ErrNotFound
		}
		return favorite.Favorite{}, ErrInternal
	}

	ws.NotifyFavoritesUpdated(userID, "removed", jobID)
	return removed, nil
}

func (u *Favorites) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if _, err := u.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func normalizeListParams(params FavoritesListParams) FavoritesListParams {
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}
	if params.SortBy == "" {
		params.SortBy = SortBySavedAt
	}
	if params.Order == "" {
		params.Order = OrderDesc
	}
	return params
}

func validSortBy(sortBy string) bool {
	switch sortBy {
	case SortBySavedAt, SortByTitle, SortByCompany:
		return true
	}
	return false
}

func validOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}

// sortFavorites sorts in place by the requested key. The input arrives in
// insertion order and the sort is stable, so equal keys keep that order.
func sortFavorites(favs []favorite.Favorite, sortBy, order string) {
	asc := order == OrderAsc

	less := func(a, b favorite.Favorite) bool {
		switch sortBy {
		case SortByTitle:
			return a.Title < b.Title
		case SortByCompany:
			return a.Company < b.Company
		default:
			return a.SavedAt.Before(b.SavedAt)
		}
	}

	sort.SliceStable(favs, func(i, j int) bool {
		if asc {
			return less(favs[i], favs[j])
		}
		return less(favs[j], favs[i])
	})
}

func missingAddFields(in AddFavoriteInput) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("id", in.ID)
	check("title", in.Title)
	check("company", in.Company)
	check("location", in.Location)
	check("employmentType", in.EmploymentType)
	check("applyLink", in.ApplyLink)
	return missing
}
