package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type CartService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewCartService(client *api.Client, logger zerolog.Logger) *CartService {
	return &CartService{client: client, logger: logger}
}

func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartProduct, error) {
	var resp struct {
		Success bool                 `json:"success"`
		Message string               `json:"message"`
		Data    []models.CartProduct `json:"data"`
	}
	if err := s.client.Get(ctx, "/cart/"+userID, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *CartService) Add(ctx context.Context, req models.AddToCartRequest) error {
	return s.client.Post(ctx, "/cart/add", req, nil)
}

func (s *CartService) Update(ctx context.Context, req models.UpdateCartRequest) error {
	return s.client.Put(ctx, "/cart/update", req, nil)
}

func (s *CartService) Remove(ctx context.Context, req models.RemoveFromCartRequest) error {
	return s.client.Delete(ctx, "/cart/remove", req, nil)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.client.Delete(ctx, "/cart/clear/"+userID, nil, nil)
}
