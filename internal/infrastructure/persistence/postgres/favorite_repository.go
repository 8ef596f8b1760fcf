package postgres

import (
	"context"
	"errors"

	"jobquest/internal/database"
	"jobquest/internal/domain/favorite"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FavoriteRepository struct {
	db database.DB
}

func NewFavoriteRepository(db database.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

const favoriteColumns = `id, user_id, job_id, title, company, location, employment_type, apply_link,
	COALESCE(company_logo, ''), description, salary, saved_at, seq`

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Favorite, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+favoriteColumns+` FROM user_favorites WHERE user_id = $1 ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]favorite.Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FavoriteRepository) GetByUserAndJob(ctx context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+favoriteColumns+` FROM user_favorites WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	return scanFavorite(row)
}

// Add relies on the unique index on (user_id, job_id): the insert is a no-op
// when the pair already exists, so concurrent adds from two tabs can never
// produce a duplicate entry.
func (r *FavoriteRepository) Add(ctx context.Context, f favorite.Favorite) error {
	affected, err := r.db.Exec(
		ctx,
		`INSERT INTO user_favorites
			(id, user_id, job_id, title, company, location, employment_type, apply_link, company_logo, description, salary, saved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		f.ID, f.UserID, f.JobID, f.Title, f.Company, f.Location, f.EmploymentType,
		f.ApplyLink, f.CompanyLogo, f.Description, f.Salary, f.SavedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return favorite.ErrAlreadyExists
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID uuid.UUID, jobID string) (favorite.Favorite, error) {
	row := r.db.QueryRow(
		ctx,
		`DELETE FROM user_favorites WHERE user_id = $1 AND job_id = $2 RETURNING `+favoriteColumns,
		userID, jobID,
	)
	f, err := scanFavorite(row)
	if err != nil {
		if errors.Is(err, favorite.ErrNotFound) {
			return favorite.Favorite{}, favorite.ErrNotFound
		}
		return favorite.Favorite{}, err
	}
	return f, nil
}

func (r *FavoriteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_favorites WHERE user_id = $1`, userID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanFavorite(row database.Row) (favorite.Favorite, error) {
	var f favorite.Favorite
	err := row.Scan(
		&f.ID, &f.UserID, &f.JobID, &f.Title, &f.Company, &f.Location,
		&f.EmploymentType, &f.ApplyLink, &f.CompanyLogo, &f.Description,
		&f.Salary, &f.SavedAt, &f.Seq,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return favorite.Favorite{}, favorite.ErrNotFound
		}
		return favorite.Favorite{}, err
	}
	return f, nil
}

var _ favorite.Repository = (*FavoriteRepository)(nil)
