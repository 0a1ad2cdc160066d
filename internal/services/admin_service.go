package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type AdminService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewAdminService(client *api.Client, logger zerolog.Logger) *AdminService {
	return &AdminService{client: client, logger: logger}
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var resp struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    *models.DashboardStats `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/dashboard/stats", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *AdminService) Customers(ctx context.Context) ([]models.CustomerSummary, error) {
	var resp struct {
		Success bool                     `json:"success"`
		Message string                   `json:"message"`
		Data    []models.CustomerSummary `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/customers", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *AdminService) DeleteCustomer(ctx context.Context, userID string) error {
	if err := s.client.Delete(ctx, "/admin/customers/"+userID, nil, nil); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("Customer deleted")
	return nil
}

func (s *AdminService) SalesAnalytics(ctx context.Context) ([]models.SalesPoint, error) {
	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    []models.SalesPoint `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/analytics/sales", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *AdminService) TopProducts(ctx context.Context) ([]models.TopProduct, error) {
	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Data    []models.TopProduct `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/analytics/top-products", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
