package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type FavoritesService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewFavoritesService(client *api.Client, logger zerolog.Logger) *FavoritesService {
	return &FavoritesService{client: client, logger: logger}
}

func (s *FavoritesService) List(ctx context.Context, userID string) ([]models.Product, error) {
	var resp struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    []models.Product `json:"data"`
	}
	if err := s.client.Get(ctx, "/user/"+userID+"/favorites", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *FavoritesService) Add(ctx context.Context, userID, productID string) error {
	body := map[string]string{"product_id": productID}
	return s.client.Post(ctx, "/user/"+userID+"/favorites", body, nil)
}

func (s *FavoritesService) Remove(ctx context.Context, userID, productID string) error {
	return s.client.Delete(ctx, "/user/"+userID+"/favorites/"+productID, nil, nil)
}
