package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"jobquest/internal/domain/favorite"
	"jobquest/internal/domain/user"

	"github.com/google/uuid"
)

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemUserRepo(ids ...uuid.UUID) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]user.User)}
	for _, id := range ids {
		r.users[id] = user.User{ID: id, Email: fmt.Sprintf("%s@example.com", id)}
	}
	return r
}

func (r *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, u user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) GetUserByGoogleID(_ context.Context, googleID string) (user.User, error) {
	for _, u := range r.users {
		if u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(context.Background(), email)
	return err == nil, nil
}

type memFavoriteRepo struct {
	items []favorite.Favorite
	seq   int64
}

func (r *memFavoriteRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	out := make([]favorite.Favorite, 0)
	for _, f := range r.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFavoriteRepo) GetByUserAndJob(_ context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error) {
	for _, f := range r.items {
		if f.UserID == userID && f.JobID == jobID {
			return f, nil
		}
	}
	return favorite.Favorite{}, favorite.ErrNotFound
}

func (r *memFavoriteRepo) Add(_ context.Context, f favorite.Favorite) error {
	for _, existing := range r.items {
		if existing.UserID == f.UserID && existing.JobID == f.JobID {
			return favorite.ErrAlreadyExists
		}
	}
	r.seq++
	f.Seq = r.seq
	r.items = append(r.items, f)
	return nil
}

func (r *memFavoriteRepo) Remove(_ context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error) {
	for i, f := range r.items {
		if f.UserID == userID && f.JobID == jobID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return f, nil
		}
	}
	return favorite.Favorite{}, favorite.ErrNotFound
}

func (r *memFavoriteRepo) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.items {
		if f.UserID == userID {
			n++
		}
	}
	return n, nil
}

func validInput(jobID string) AddFavoriteInput {
	return AddFavoriteInput{
		ID:             jobID,
		Title:          "Backend Engineer",
		Company:        "Acme",
		Location:       "Berlin",
		EmploymentType: "FULLTIME",
		ApplyLink:      "https://example.com/apply",
	}
}

func TestFavorites_Add_Idempotent(t *testing.T) {
	userID := uuid.New()
	repo := &memFavoriteRepo{}
	uc := NewFavoritesUsecase(newMemUserRepo(userID), repo, nil)

	first, err := uc.Add(context.Background(), userID, validInput("job-123"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	second, err := uc.Add(context.Background(), userID, validInput("job-123"))
	if !errors.Is(err, favorite.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if second.JobID != first.JobID || second.SavedAt != first.SavedAt {
		t.Fatalf("duplicate add must return the existing entry unchanged")
	}

	if n, _ := repo.CountByUser(context.Background(), userID); n != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", n)
	}
}

func TestFavorites_Add_MissingFields(t *testing.T) {
	userID := uuid.New()
	uc := NewFavoritesUsecase(newMemUserRepo(userID), &memFavoriteRepo{}, nil)

	in := validInput("job-1")
	in.Title = "  "
	in.ApplyLink = ""

	_, err := uc.Add(context.Background(), userID, in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %T", err)
	}
	if len(missing.Fields) != 2 || missing.Fields[0] != "title" || missing.Fields[1] != "applyLink" {
		t.Fatalf("unexpected missing fields: %v", missing.Fields)
	}
}

func TestFavorites_Remove_Absent(t *testing.T) {
	userID := uuid.New()
	repo := &memFavoriteRepo{}
	uc := NewFavoritesUsecase(newMemUserRepo(userID), repo, nil)

	if _, err := uc.Add(context.Background(), userID, validInput("job-1")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := uc.Remove(context.Background(), userID, "job-2")
	if !errors.Is(err, favorite.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n, _ := repo.CountByUser(context.Background(), userID); n != 1 {
		t.Fatalf("remove of an absent job must leave the list unchanged, got %d entries", n)
	}
}

func TestFavorites_List_UserMissing(t *testing.T) {
	uc := NewFavoritesUsecase(newMemUserRepo(), &memFavoriteRepo{}, nil)

	_, _, err := uc.List(context.Background(), uuid.New(), FavoritesListParams{})
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestFavorites_List_Unauthenticated(t *testing.T) {
	uc := NewFavoritesUsecase(newMemUserRepo(), &memFavoriteRepo{}, nil)

	_, _, err := uc.List(context.Background(), uuid.Nil, FavoritesListParams{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestFavorites_List_InvalidParams(t *testing.T) {
	userID := uuid.New()
	uc := NewFavoritesUsecase(newMemUserRepo(userID), &memFavoriteRepo{}, nil)

	cases := []FavoritesListParams{
		{Page: -1},
		{Limit: -5},
		{SortBy: "salary"},
		{Order: "sideways"},
	}
	for _, params := range cases {
		if _, _, err := uc.List(context.Background(), userID, params); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("params %+v: expected ErrInvalidInput, got %v", params, err)
		}
	}
}

func seedFavorites(t *testing.T, uc *Favorites, userID uuid.UUID) []favorite.Favorite {
	t.Helper()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	uc.now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Minute)
	}

	inputs := []struct{ id, title, company string }{
		{"job-a", "Zookeeper", "Acme"},
		{"job-b", "Analyst", "Zenith"},
		{"job-c", "Analyst", "Acme"},
		{"job-d", "Machinist", "Borealis"},
		{"job-e", "Zookeeper", "Borealis"},
	}
	for _, in := range inputs {
		input := validInput(in.id)
		input.Title = in.title
		input.Company = in.company
		if _, err := uc.Add(context.Background(), userID, input); err != nil {
			t.Fatalf("seed add %s: %v", in.id, err)
		}
	}

	all, _, err := uc.List(context.Background(), userID, FavoritesListParams{Limit: 50, SortBy: SortBySavedAt, Order: OrderAsc})
	if err != nil {
		t.Fatalf("seed list: %v", err)
	}
	return all
}

func TestFavorites_List_SortMatrix(t *testing.T) {
	userID := uuid.New()
	uc := NewFavoritesUsecase(newMemUserRepo(userID), &memFavoriteRepo{}, nil)
	inserted := seedFavorites(t, uc, userID)

	for _, sortBy := range []string{SortBySavedAt, SortByTitle, SortByCompany} {
		for _, order := range []string{OrderAsc, OrderDesc} {
			got, _, err := uc.List(context.Background(), userID, FavoritesListParams{
				Limit:  50,
				SortBy: sortBy,
				Order:  order,
			})
			if err != nil {
				t.Fatalf("%s/%s: unexpected err: %v", sortBy, order, err)
			}

			want := make([]favorite.Favorite, len(inserted))
			copy(want, inserted)
			sort.SliceStable(want, func(i, j int) bool {
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
				if order == OrderAsc {
					return less(want[i], want[j])
				}
				return less(want[j], want[i])
			})

			for i := range want {
				if got[i].JobID != want[i].JobID {
					t.Fatalf("%s/%s: position %d: got %s want %s", sortBy, order, i, got[i].JobID, want[i].JobID)
				}
			}
		}
	}
}

func TestFavorites_List_PaginationReconstructsWhole(t *testing.T) {
	userID := uuid.New()
	uc := NewFavoritesUsecase(newMemUserRepo(userID), &memFavoriteRepo{}, nil)
	inserted := seedFavorites(t, uc, userID)

	for limit := 1; limit <= len(inserted)+1; limit++ {
		var collected []string
		page := 1
		for {
			got, p, err := uc.List(context.Background(), userID, FavoritesListParams{
				Page:   page,
				Limit:  limit,
				SortBy: SortByTitle,
				Order:  OrderAsc,
			})
			if err != nil {
				t.Fatalf("limit=%d page=%d: %v", limit, page, err)
			}
			if p.CurrentPage != page || p.ItemsPerPage != limit || p.TotalItems != len(inserted) {
				t.Fatalf("limit=%d page=%d: bad pagination %+v", limit, page, p)
			}
			wantPages := (len(inserted) + limit - 1) / limit
			if p.TotalPages != wantPages {
				t.Fatalf("limit=%d: totalPages=%d want %d", limit, p.TotalPages, wantPages)
			}
			if p.HasPrevPage != (page > 1) {
				t.Fatalf("limit=%d page=%d: bad hasPrevPage", limit, page)
			}
			for _, f := range got {
				collected = append(collected, f.JobID)
			}
			if !p.HasNextPage {
				break
			}
			page++
		}

		reference, _, err := uc.List(context.Background(), userID, FavoritesListParams{
			Limit:  50,
			SortBy: SortByTitle,
			Order:  OrderAsc,
		})
		if err != nil {
			t.Fatalf("reference list: %v", err)
		}
		if len(collected) != len(reference) {
			t.Fatalf("limit=%d: concatenated pages have %d items, want %d", limit, len(collected), len(reference))
		}
		for i := range reference {
			if collected[i] != reference[i].JobID {
				t.Fatalf("limit=%d: position %d: got %s want %s", limit, i, collected[i], reference[i].JobID)
			}
		}
	}
}

func TestFavorites_List_StableTieBreak(t *testing.T) {
	userID := uuid.New()
	uc := NewFavoritesUsecase(newMemUserRepo(userID), &memFavoriteRepo{}, nil)
	seedFavorites(t, uc, userID)

	// job-b and job-c share the title "Analyst"; insertion order must hold
	// for both sort directions.
	for _, order := range []string{OrderAsc, OrderDesc} {
		got, _, err := uc.List(context.Background(), userID, FavoritesListParams{
			Limit:  50,
			SortBy: SortByTitle,
			Order:  order,
		})
		if err != nil {
			t.Fatalf("%s: %v", order, err)
		}
		bIdx, cIdx := -1, -1
		for i, f := range got {
			switch f.JobID {
			case "job-b":
				bIdx = i
			case "job-c":
				cIdx = i
			}
		}
		if bIdx == -1 || cIdx == -1 || bIdx > cIdx {
			t.Fatalf("%s: tie-break broke insertion order: b=%d c=%d", order, bIdx, cIdx)
		}
	}
}

func TestFavorites_EndToEnd(t *testing.T) {
	userID := uuid.New()
	repo := &memFavoriteRepo{}
	uc := NewFavoritesUsecase(newMemUserRepo(userID), repo, nil)
	ctx := context.Background()

	if _, err := uc.Add(ctx, userID, validInput("job-123")); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, _, err := uc.List(ctx, userID, FavoritesListParams{})
	if err != nil || len(got) != 1 || got[0].JobID != "job-123" {
		t.Fatalf("expected single job-123 entry, got %v err=%v", got, err)
	}

	if _, err := uc.Add(ctx, userID, validInput("job-123")); !errors.Is(err, favorite.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	got, _, _ = uc.List(ctx, userID, FavoritesListParams{})
	if len(got) != 1 {
		t.Fatalf("expected still exactly 1 entry, got %d", len(got))
	}

	if _, err := uc.Remove(ctx, userID, "job-123"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, p, _ := uc.List(ctx, userID, FavoritesListParams{})
	if len(got) != 0 || p.TotalItems != 0 {
		t.Fatalf("expected empty list, got %d items", len(got))
	}
}
