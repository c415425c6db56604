package auth

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserSource is the slice of the store the login flow needs.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	store UserSource
	codec *TokenCodec
}

func NewService(store UserSource, codec *TokenCodec) *Service {
	return &Service{store: store, codec: codec}
}

// Login verifies a username/password pair and issues a bearer token. An
// unknown username and a wrong password surface as the same error; store
// failures are wrapped separately so handlers can map them to a 500.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}
	if !CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := s.codec.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
