package bakeryapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if requestUserID(r) != req.UserID {
		s.respondError(w, http.StatusForbidden, "Cannot place an order for another user")
		return
	}
	if len(req.Items) == 0 {
		s.respondError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}
	if req.DeliveryAddress.Street == "" || req.DeliveryAddress.City == "" || req.DeliveryAddress.ZipCode == "" {
		s.respondError(w, http.StatusBadRequest, "Street, city, and zip code are required")
		return
	}

	order := s.store.createOrder(req)
	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("user_id", order.UserID).
		Float64("total_amount", order.TotalAmount).
		Msg("Order placed")
	s.respondData(w, http.StatusCreated, order)
}

func (s *Server) ordersForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if requestUserID(r) != userID && requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Cannot read another user's orders")
		return
	}
	s.respondData(w, http.StatusOK, s.store.ordersForUser(userID))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.store.order(mux.Vars(r)["id"])
	if !ok {
		s.respondError(w, http.StatusNotFound, errOrderNotFound.Error())
		return
	}
	if order.UserID != requestUserID(r) && requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Cannot read another user's order")
		return
	}
	s.respondData(w, http.StatusOK, order)
}

func (s *Server) allOrders(w http.ResponseWriter, r *http.Request) {
	if requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}
	s.respondData(w, http.StatusOK, s.store.allOrders())
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := s.store.setOrderStatus(req.OrderID, req.Status)
	if err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondData(w, http.StatusOK, order)
}

func (s *Server) cancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.cancelOrder(mux.Vars(r)["id"], requestUserID(r))
	if err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondData(w, http.StatusOK, order)
}

func (s *Server) orderStats(w http.ResponseWriter, r *http.Request) {
	if requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}
	s.respondData(w, http.StatusOK, s.store.orderStats())
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.dashboardStats())
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.customerSummaries())
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteUser(mux.Vars(r)["id"]); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Customer deleted"})
}

func (s *Server) salesAnalytics(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.salesAnalytics())
}

func (s *Server) topProducts(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.topProducts())
}
