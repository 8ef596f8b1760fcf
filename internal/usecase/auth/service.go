package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobquest/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// GoogleProfile is the identity-provider payload after the collaborator has
// verified it. The OAuth exchange itself happens outside this service.
type GoogleProfile struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}
	if u.PasswordHash == "" {
		return user.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// SignInWithGoogle provisions the user on first sign-in and refreshes the
// profile fields on every later one. Users are never deleted here.
func (s *Service) SignInWithGoogle(ctx context.Context, profile GoogleProfile) (user.User, error) {
	googleID := strings.TrimSpace(profile.GoogleID)
	email := normalizeEmail(profile.Email)
	if googleID == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}

	existing, err := s.users.GetUserByGoogleID(ctx, googleID)
	if err == nil {
		existing.Email = email
		existing.Name = strings.TrimSpace(profile.Name)
		existing.AvatarURL = strings.TrimSpace(profile.AvatarURL)
		if err := s.users.UpdateUser(ctx, existing); err != nil {
			return user.User{}, ErrInternal
		}
		updated, err := s.users.GetUserByID(ctx, existing.ID)
		if err != nil {
			return user.User{}, ErrInternal
		}
		return updated, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:        uuid.New(),
		GoogleID:  googleID,
		Email:     email,
		Name:      strings.TrimSpace(profile.Name),
		AvatarURL: strings.TrimSpace(profile.AvatarURL),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// A concurrent first sign-in may have won the race; fall back to
		// the stored record.
		if winner, getErr := s.users.GetUserByGoogleID(ctx, googleID); getErr == nil {
			return winner, nil
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return created, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
