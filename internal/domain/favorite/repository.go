package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("favorite not found")
	ErrAlreadyExists = errors.New("favorite already exists")
)

type Repository interface {
	// ListByUser returns every favorite of the user in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	GetByUserAndJob(ctx context.Context, userID uuid.UUID, jobID string) (Favorite, error)
	// Add persists f. Returns ErrAlreadyExists when the user already holds
	// a favorite with the same JobID; the store's uniqueness constraint
	// guarantees this even for concurrent adds.
	Add(ctx context.Context, f Favorite) error
	// Remove deletes the user's favorite with the given JobID, returning
	// the removed row, or ErrNotFound.
	Remove(ctx context.Context, userID uuid.UUID, jobID string) (Favorite, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
