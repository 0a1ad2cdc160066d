// Package services holds one typed wrapper per backend resource. Each
// service translates between Go types and the API's JSON envelopes and
// leaves error policy to its callers.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type AuthService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewAuthService(client *api.Client, logger zerolog.Logger) *AuthService {
	return &AuthService{client: client, logger: logger}
}

type authResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    *models.AuthData `json:"data"`
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthData, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, errors.New("full name, email, and password are required")
	}

	var resp authResponse
	if err := s.client.Post(ctx, "/auth/users/register", req, &resp); err != nil {
		return nil, err
	}
	return s.checkAuthData(resp, "registration failed")
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.AuthData, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var resp authResponse
	if err := s.client.Post(ctx, "/auth/users/signin", models.SignInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return s.checkAuthData(resp, "sign in failed")
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	var resp struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Data    *models.User `json:"data"`
	}
	if err := s.client.Put(ctx, "/auth/users/profile/"+userID, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("profile update failed: %s", resp.Message)
	}

	s.logger.Info().Str("user_id", userID).Msg("Profile updated")
	return resp.Data, nil
}

func (s *AuthService) checkAuthData(resp authResponse, fallback string) (*models.AuthData, error) {
	if !resp.Success || resp.Data == nil || resp.Data.User == nil || resp.Data.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		return nil, errors.New(msg)
	}

	s.logger.Info().
		Str("user_id", resp.Data.User.UserID).
		Str("email", resp.Data.User.Email).
		Msg("Authentication succeeded")
	return resp.Data, nil
}
