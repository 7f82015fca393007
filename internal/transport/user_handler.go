package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUserRequest represents the user creation payload
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a full-replace user update payload
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.List)
	r.Get("/user/{id}", h.GetByID)
	r.Post("/user", h.Create)
	r.Post("/login", h.Login)
	r.Put("/user/{id}", h.Update)
	r.Delete("/user/{id}", h.Delete)
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	allUsers, err := h.users.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(allUsers) == 0 {
		middleware.RespondWithError(w, http.StatusNotFound, "No users at this time.")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"total":    len(allUsers),
		"allUsers": allUsers,
	})
}

// GetByID handles GET /user/{id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "User not found.")
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "User not found.")
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err), zap.String("user_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Create handles POST /user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("User creation validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Please provide all the required parameters.")
		return
	}

	newUser, err := h.users.Create(r.Context(), repository.CreateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("User created", zap.String("user_id", newUser.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"newUser": newUser})
}

// Login handles POST /login. The checks run in a fixed order: field
// presence, then account existence, then the credential comparison. The
// comparison is resolved by email through the repository rather than
// against the already-fetched record, so both lookups must agree.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Please provide all the required parameters.")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "No user exists with the email provided.")
			return
		}
		h.logger.Error("Failed to resolve user by email", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	match, err := h.users.ComparePassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "No user exists with the email provided.")
			return
		}
		h.logger.Error("Failed to compare credentials", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !match {
		middleware.RespondWithError(w, http.StatusBadRequest, "Incorrect password.")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Update handles PUT /user/{id}. A missing field responds 401 before the
// existence check, and success responds 201; both are long-standing
// quirks of this endpoint that clients rely on.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	var req UpdateUserRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("User update validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusUnauthorized, "Please provide all the required parameters.")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "No user with id "+rawID)
		return
	}

	if _, err := h.users.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "No user with id "+rawID)
			return
		}
		h.logger.Error("Failed to look up user", zap.Error(err), zap.String("user_id", rawID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	updateUser, err := h.users.Update(r.Context(), id, repository.UpdateUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "No user with id "+rawID)
			return
		}
		h.logger.Error("Failed to update user", zap.Error(err), zap.String("user_id", rawID))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{"updateUser": updateUser})
}

// Delete handles DELETE /user/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "User does not exist.")
		return
	}

	if _, err := h.users.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "User does not exist.")
			return
		}
		h.logger.Error("Failed to look up user", zap.Error(err), zap.String("user_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "User does not exist.")
			return
		}
		h.logger.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("User deleted", zap.String("user_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"msg": "User deleted."})
}
