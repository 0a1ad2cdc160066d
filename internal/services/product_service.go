package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type ProductService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewProductService(client *api.Client, logger zerolog.Logger) *ProductService {
	return &ProductService{client: client, logger: logger}
}

type productListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []models.Product `json:"data"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *models.Product `json:"data"`
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var resp productListResponse
	if err := s.client.Get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*models.Product, error) {
	var resp productResponse
	if err := s.client.Get(ctx, "/products/"+productID, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	return resp.Data, nil
}

func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	var resp productListResponse
	path := "/products/search?q=" + url.QueryEscape(query)
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var resp productListResponse
	path := "/products/category/" + url.PathEscape(category)
	if err := s.client.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Create, Update, and Delete are admin-only; the backend enforces the
// role, the client just forwards the token.

func (s *ProductService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	var resp productResponse
	if err := s.client.Post(ctx, "/products", input, &resp); err != nil {
		return nil, err
	}
	if resp.Data != nil {
		s.logger.Info().Str("product_id", resp.Data.ID).Str("name", resp.Data.Name).Msg("Product created")
	}
	return resp.Data, nil
}

func (s *ProductService) Update(ctx context.Context, productID string, input models.ProductInput) (*models.Product, error) {
	var resp productResponse
	if err := s.client.Put(ctx, "/products/"+productID, input, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *ProductService) Delete(ctx context.Context, productID string) error {
	if err := s.client.Delete(ctx, "/products/"+productID, nil, nil); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", productID).Msg("Product deleted")
	return nil
}
