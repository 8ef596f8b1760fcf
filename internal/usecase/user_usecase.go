package usecase

import (
	"context"
	"errors"

	"jobquest/internal/domain/favorite"
	"jobquest/internal/domain/user"

	"github.com/google/uuid"
)

type Profile struct {
	User           user.User `json:"user"`
	FavoritesCount int       `json:"favoritesCount"`
}

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (Profile, error)
}

type User struct {
	users     user.Repository
	favorites favorite.Repository
}

func NewUserUsecase(users user.Repository, favorites favorite.Repository) *User {
	return &User{users: users, favorites: favorites}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (Profile, error) {
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	count, err := u.favorites.CountByUser(ctx, userID)
	if err != nil {
		return Profile{}, ErrInternal
	}

	return Profile{User: usr, FavoritesCount: count}, nil
}
