package bakeryapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if requestUserID(r) != userID {
		s.respondError(w, http.StatusForbidden, "Cannot read another user's cart")
		return
	}
	s.respondData(w, http.StatusOK, s.store.cartFor(userID))
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if requestUserID(r) != req.UserID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's cart")
		return
	}
	if req.Quantity < 1 {
		s.respondError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	if err := s.store.addToCart(req.UserID, req.ProductID, req.Quantity); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, envelope{Success: true, Message: "Item added to cart"})
}

func (s *Server) updateCart(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if requestUserID(r) != req.UserID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's cart")
		return
	}

	if err := s.store.updateCart(req.UserID, req.ProductID, req.Quantity); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Cart updated"})
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if requestUserID(r) != req.UserID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's cart")
		return
	}

	if err := s.store.removeFromCart(req.UserID, req.ProductID); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Item removed"})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if requestUserID(r) != userID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's cart")
		return
	}

	s.store.clearCart(userID)
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Cart cleared"})
}
