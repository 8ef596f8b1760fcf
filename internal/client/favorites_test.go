package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeServer serves the favorites API envelope backed by an in-memory set.
type fakeServer struct {
	mu        sync.Mutex
	favorites map[string]bool
	listCalls int

	failAdds    bool
	addStatus   int
	failRemoves bool
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/favorites", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			f.listCalls++
			jobs := make([]map[string]string, 0, len(f.favorites))
			for id := range f.favorites {
				jobs = append(jobs, map[string]string{"jobId": id})
			}
			writeEnvelope(w, http.StatusOK, map[string]any{
				"data": jobs,
				"pagination": map[string]any{
					"currentPage": 1,
					"totalPages":  1,
					"totalItems":  len(jobs),
					"hasNextPage": false,
					"hasPrevPage": false,
				},
			})
		case http.MethodPost:
			if f.failAdds {
				status := f.addStatus
				if status == 0 {
					status = http.StatusInternalServerError
				}
				writeEnvelope(w, status, nil)
				return
			}
			var body struct {
				ID string `json:"id"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.favorites[body.ID] = true
			writeEnvelope(w, http.StatusCreated, nil)
		case http.MethodDelete:
			if f.failRemoves {
				writeEnvelope(w, http.StatusInternalServerError, nil)
				return
			}
			id := r.URL.Query().Get("jobId")
			if !f.favorites[id] {
				writeEnvelope(w, http.StatusNotFound, nil)
				return
			}
			delete(f.favorites, id)
			writeEnvelope(w, http.StatusOK, nil)
		}
	})
	return mux
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": http.StatusText(status),
		"data":    data,
	})
}

func newFakeServer(favorites ...string) (*fakeServer, *httptest.Server) {
	f := &fakeServer{favorites: make(map[string]bool)}
	for _, id := range favorites {
		f.favorites[id] = true
	}
	return f, httptest.NewServer(f.handler())
}

func TestFavoriteSet_LoadAndLookup(t *testing.T) {
	_, srv := newFakeServer("job-1", "job-2")
	defer srv.Close()

	set := NewFavoriteSet(New(srv.URL, "token"))
	ctx := context.Background()

	for id, want := range map[string]bool{"job-1": true, "job-2": true, "job-9": false} {
		got, err := set.IsFavorite(ctx, id)
		if err != nil {
			t.Fatalf("IsFavorite(%s): %v", id, err)
		}
		if got != want {
			t.Fatalf("IsFavorite(%s)=%v want %v", id, got, want)
		}
	}
}

func TestFavoriteSet_OptimisticAdd(t *testing.T) {
	fake, srv := newFakeServer()
	defer srv.Close()

	set := NewFavoriteSet(New(srv.URL, "token"))
	ctx := context.Background()

	if err := set.Add(ctx, FavoriteJob{JobID: "job-1", Title: "Engineer", Company: "Acme", Location: "Berlin", EmploymentType: "FULLTIME", ApplyLink: "https://x"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got, _ := set.IsFavorite(ctx, "job-1"); !got {
		t.Fatalf("local set must reflect the add")
	}
	if !fake.favorites["job-1"] {
		t.Fatalf("server must hold the favorite")
	}
}

func TestFavoriteSet_FailedAddInvalidatesAndRefetches(t *testing.T) {
	fake, srv := newFakeServer("job-keep")
	defer srv.Close()

	set := NewFavoriteSet(New(srv.URL, "token"))
	ctx := context.Background()

	if err := set.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	loadsBefore := fake.listCalls

	fake.failAdds = true
	err := set.Add(ctx, FavoriteJob{JobID: "job-2", Title: "Engineer", Company: "Acme", Location: "Berlin", EmploymentType: "FULLTIME", ApplyLink: "https://x"})
	if err == nil {
		t.Fatalf("expected add to fail")
	}

	// The optimistic entry must not survive the failure: the next read
	// refetches the authoritative list.
	got, err := set.IsFavorite(ctx, "job-2")
	if err != nil {
		t.Fatalf("IsFavorite after failure: %v", err)
	}
	if got {
		t.Fatalf("failed optimistic add left job-2 in the local set")
	}
	if kept, _ := set.IsFavorite(ctx, "job-keep"); !kept {
		t.Fatalf("refetch lost a server-side favorite")
	}
	if fake.listCalls <= loadsBefore {
		t.Fatalf("expected a reload after invalidation")
	}
}

func TestFavoriteSet_ConflictCountsAsSuccess(t *testing.T) {
	fake, srv := newFakeServer("job-1")
	defer srv.Close()

	fake.failAdds = true
	fake.addStatus = http.StatusConflict

	set := NewFavoriteSet(New(srv.URL, "token"))
	ctx := context.Background()

	if err := set.Add(ctx, FavoriteJob{JobID: "job-1", Title: "Engineer", Company: "Acme", Location: "Berlin", EmploymentType: "FULLTIME", ApplyLink: "https://x"}); err != nil {
		t.Fatalf("conflict must not surface as a failure, got %v", err)
	}
	if got, _ := set.IsFavorite(ctx, "job-1"); !got {
		t.Fatalf("conflict must keep the optimistic state")
	}
}

func TestFavoriteSet_RemoveAbsentOnServer(t *testing.T) {
	_, srv := newFakeServer()
	defer srv.Close()

	set := NewFavoriteSet(New(srv.URL, "token"))
	ctx := context.Background()

	if err := set.Remove(ctx, "job-404"); err != nil {
		t.Fatalf("server-side not-found already matches the local state, got %v", err)
	}
}

func TestFavoriteSet_AnonymousNeverCallsAPI(t *testing.T) {
	fake, srv := newFakeServer()
	defer srv.Close()

	set := NewFavoriteSet(New(srv.URL, ""))
	ctx := context.Background()

	if err := set.Add(ctx, FavoriteJob{JobID: "job-1"}); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if err := set.Remove(ctx, "job-1"); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if fake.listCalls != 0 {
		t.Fatalf("anonymous toggles must never reach the service")
	}
}
