package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

type OrderService struct {
	client *api.Client
	logger zerolog.Logger
}

func NewOrderService(client *api.Client, logger zerolog.Logger) *OrderService {
	return &OrderService{client: client, logger: logger}
}

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *models.Order `json:"data"`
}

type orderListResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    []models.Order `json:"data"`
}

func (s *OrderService) Create(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var resp orderResponse
	if err := s.client.Post(ctx, "/order/create", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("order creation failed: %s", resp.Message)
	}

	s.logger.Info().
		Str("order_id", resp.Data.OrderID).
		Float64("total_amount", resp.Data.TotalAmount).
		Msg("Order created")
	return resp.Data, nil
}

func (s *OrderService) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	var resp orderListResponse
	if err := s.client.Get(ctx, "/order/user/"+userID, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var resp orderResponse
	if err := s.client.Get(ctx, "/order/"+orderID, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return resp.Data, nil
}

func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	var resp orderListResponse
	if err := s.client.Get(ctx, "/order/all", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	var resp orderResponse
	req := models.UpdateOrderStatusRequest{OrderID: orderID, Status: status}
	if err := s.client.Put(ctx, "/order/status", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Cancel is accepted by the backend only while the order is Pending.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	var resp orderResponse
	if err := s.client.Put(ctx, "/order/cancel/"+orderID, nil, &resp); err != nil {
		return nil, err
	}
	s.logger.Info().Str("order_id", orderID).Msg("Order cancelled")
	return resp.Data, nil
}

func (s *OrderService) Stats(ctx context.Context) (*models.OrderStats, error) {
	var resp struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Data    *models.OrderStats `json:"data"`
	}
	if err := s.client.Get(ctx, "/order/stats", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
