package services

import (
	"context"
	"errors"
	"fmt"

	"bloglist/app/repositories"
)

// LoginRequest is the body of a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoginService checks credentials and issues tokens
type LoginService struct {
	users  repositories.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewLoginService creates a new LoginService
func NewLoginService(users repositories.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *LoginService {
	return &LoginService{users: users, hasher: hasher, tokens: tokens}
}

// Login returns a token for valid credentials. An unknown user and a wrong
// password fail the same way.
func (s *LoginService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Username: user.Username, Name: user.Name}, nil
}
