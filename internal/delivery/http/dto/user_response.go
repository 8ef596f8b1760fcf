package dto

import (
	"jobquest/internal/domain/user"
	"jobquest/internal/usecase"
)

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ProfileResponse struct {
	User           UserResponse `json:"user"`
	FavoritesCount int          `json:"favoritesCount"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

func NewProfileResponse(p usecase.Profile) ProfileResponse {
	return ProfileResponse{
		User:           NewUserResponse(p.User),
		FavoritesCount: p.FavoritesCount,
	}
}
