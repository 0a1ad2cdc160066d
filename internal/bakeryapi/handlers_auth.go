package bakeryapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/models"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "Full name, email, and password are required")
		return
	}

	role := req.Role
	if !role.Valid() {
		role = models.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		s.respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	user, err := s.store.createUser(models.User{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
	}, string(hash))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := issueToken(s.secret, user, tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token generation failed")
		s.respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Str("email", user.Email).Msg("User registered")
	s.respondJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Account created",
		Data:    models.AuthData{User: user, Token: token},
	})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, ok := s.store.userByEmail(req.Email)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed sign-in attempt")
		s.respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	user := stored.User
	token, err := issueToken(s.secret, &user, tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token generation failed")
		s.respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Signed in",
		Data:    models.AuthData{User: &user, Token: token},
	})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	if requestUserID(r) != targetID && requestUserRole(r) != string(models.RoleAdmin) {
		s.respondError(w, http.StatusForbidden, "Cannot update another user's profile")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.updateUser(targetID, req)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondData(w, http.StatusOK, user)
}

func (s *Server) sendContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "Name, email, and message are required")
		return
	}

	s.store.addContact(req)
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Message received"})
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if requestUserID(r) != userID {
		s.respondError(w, http.StatusForbidden, "Cannot read another user's favorites")
		return
	}
	s.respondData(w, http.StatusOK, s.store.favoritesFor(userID))
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if requestUserID(r) != userID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's favorites")
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		s.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	if err := s.store.addFavorite(userID, req.ProductID); err != nil {
		s.respondNotFoundOrBadRequest(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, envelope{Success: true, Message: "Added to favorites"})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	if requestUserID(r) != userID {
		s.respondError(w, http.StatusForbidden, "Cannot modify another user's favorites")
		return
	}

	s.store.removeFavorite(userID, vars["productId"])
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Removed from favorites"})
}

func (s *Server) respondNotFoundOrBadRequest(w http.ResponseWriter, err error) {
	if errors.Is(err, errProductNotFound) || errors.Is(err, errOrderNotFound) || errors.Is(err, errUserNotFound) {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondError(w, http.StatusBadRequest, err.Error())
}
