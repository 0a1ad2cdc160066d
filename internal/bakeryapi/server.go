// Package bakeryapi is an in-process implementation of the BakedBliss
// REST backend. The storefront client is developed and contract-tested
// against it; it mirrors the production API's routes, envelopes, and
// auth behavior with an in-memory store.
package bakeryapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const tokenTTL = 24 * time.Hour

type Server struct {
	store  *store
	secret []byte
	logger zerolog.Logger
}

func NewServer(secret string, logger zerolog.Logger) *Server {
	return &Server{
		store:  newStore(),
		secret: []byte(secret),
		logger: logger,
	}
}

// Router mounts the full API under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.Use(recovery(s.logger))
	r.Use(requestLogging(s.logger))
	r.Use(corsMiddleware())
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(100), 200)))

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/users/register", s.register).Methods("POST")
	auth.HandleFunc("/users/signin", s.signIn).Methods("POST")

	profile := api.PathPrefix("/auth/users/profile").Subrouter()
	profile.Use(s.authentication)
	profile.HandleFunc("/{id}", s.updateProfile).Methods("PUT")

	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", s.listProducts).Methods("GET")
	products.HandleFunc("/search", s.searchProducts).Methods("GET")
	products.HandleFunc("/category/{category}", s.productsByCategory).Methods("GET")
	products.HandleFunc("/{id}", s.getProduct).Methods("GET")

	adminProducts := api.PathPrefix("/products").Subrouter()
	adminProducts.Use(s.authentication)
	adminProducts.Use(s.requireRole("admin"))
	adminProducts.HandleFunc("", s.createProduct).Methods("POST")
	adminProducts.HandleFunc("/{id}", s.updateProduct).Methods("PUT")
	adminProducts.HandleFunc("/{id}", s.deleteProduct).Methods("DELETE")

	cart := api.PathPrefix("/cart").Subrouter()
	cart.Use(s.authentication)
	cart.HandleFunc("/add", s.addToCart).Methods("POST")
	cart.HandleFunc("/update", s.updateCart).Methods("PUT")
	cart.HandleFunc("/remove", s.removeFromCart).Methods("DELETE")
	cart.HandleFunc("/clear/{userId}", s.clearCart).Methods("DELETE")
	cart.HandleFunc("/{userId}", s.getCart).Methods("GET")

	orders := api.PathPrefix("/order").Subrouter()
	orders.Use(s.authentication)
	orders.HandleFunc("/create", s.createOrder).Methods("POST")
	orders.HandleFunc("/all", s.allOrders).Methods("GET")
	orders.HandleFunc("/stats", s.orderStats).Methods("GET")
	orders.HandleFunc("/user/{userId}", s.ordersForUser).Methods("GET")
	orders.HandleFunc("/status", s.updateOrderStatus).Methods("PUT")
	orders.HandleFunc("/cancel/{id}", s.cancelOrder).Methods("PUT")
	orders.HandleFunc("/{id}", s.getOrder).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.authentication)
	admin.Use(s.requireRole("admin"))
	admin.HandleFunc("/dashboard/stats", s.dashboardStats).Methods("GET")
	admin.HandleFunc("/customers", s.listCustomers).Methods("GET")
	admin.HandleFunc("/customers/{id}", s.deleteCustomer).Methods("DELETE")
	admin.HandleFunc("/analytics/sales", s.salesAnalytics).Methods("GET")
	admin.HandleFunc("/analytics/top-products", s.topProducts).Methods("GET")

	api.HandleFunc("/contact/send", s.sendContact).Methods("POST")

	favorites := api.PathPrefix("/user").Subrouter()
	favorites.Use(s.authentication)
	favorites.HandleFunc("/{userId}/favorites", s.listFavorites).Methods("GET")
	favorites.HandleFunc("/{userId}/favorites", s.addFavorite).Methods("POST")
	favorites.HandleFunc("/{userId}/favorites/{productId}", s.removeFavorite).Methods("DELETE")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) respondData(w http.ResponseWriter, code int, data any) {
	s.respondJSON(w, code, envelope{Success: true, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	s.respondJSON(w, code, envelope{Success: false, Message: message})
}

func (s *Server) respondJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
