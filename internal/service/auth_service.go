package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"profilehub/internal/auth"
	apperrors "profilehub/internal/errors"
	"profilehub/internal/model"
	"profilehub/internal/repository"
)

// SignupInput carries the signup form. Picture is optional.
type SignupInput struct {
	Username     string
	Email        string
	City         string
	MobileNumber string
	Password     string
	Picture      *Upload
}

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.JWTService
	media  MediaService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.JWTService, media MediaService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		media:  media,
	}
}

// Signup validates, hashes the password, stores the optional picture and
// creates the user. No token is issued; the user logs in separately.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.City = strings.TrimSpace(in.City)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	if in.Username == "" || in.Email == "" || in.City == "" || in.MobileNumber == "" || in.Password == "" {
		return nil, apperrors.ErrValidation
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	in.Password = ""

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		City:         in.City,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
	}

	if in.Picture != nil {
		if s.media == nil {
			return nil, fmt.Errorf("media intake is not configured")
		}
		stored, err := s.media.Accept(ctx, *in.Picture)
		if err != nil {
			return nil, err
		}
		user.ProfilePicturePath = stored
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if user.ProfilePicturePath != "" {
			// the record was never written, so the picture is unreferenced
			_ = s.media.Discard(context.WithoutCancel(ctx), user.ProfilePicturePath)
		}
		if errors.Is(err, apperrors.ErrDuplicateUser) || errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user.Sanitized(), nil
}

// Login looks the user up, verifies the password and issues a token.
// Unknown usernames and wrong passwords are reported separately.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, apperrors.ErrValidation
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user.Sanitized(), nil
}
