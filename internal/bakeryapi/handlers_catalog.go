package bakeryapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.listProducts())
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.product(mux.Vars(r)["id"])
	if !ok {
		s.respondError(w, http.StatusNotFound, errProductNotFound.Error())
		return
	}
	s.respondData(w, http.StatusOK, p)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.searchProducts(r.URL.Query().Get("q")))
}

func (s *Server) productsByCategory(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, s.store.productsByCategory(mux.Vars(r)["category"]))
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Name == "" || input.Category == "" || input.Price <= 0 {
		s.respondError(w, http.StatusBadRequest, "Name, category, and a positive price are required")
		return
	}

	p := s.store.createProduct(input)
	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("Product created")
	s.respondData(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.store.updateProduct(mux.Vars(r)["id"], input)
	if err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondData(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteProduct(mux.Vars(r)["id"]); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Product deleted"})
}
