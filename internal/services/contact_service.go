package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type ContactService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewContactService(client *api.Client, logger zerolog.Logger) *ContactService {
	return &ContactService{client: client, logger: logger}
}

func (s *ContactService) Send(ctx context.Context, req models.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return errors.New("name, email, and message are required")
	}

	if err := s.client.Post(ctx, "/contact/send", req, nil); err != nil {
		return err
	}
	s.logger.Info().Str("email", req.Email).Msg("Contact message sent")
	return nil
}
