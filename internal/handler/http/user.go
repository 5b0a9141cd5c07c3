package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/lazyhr/lazyhr-backend-go/internal/domain/user"
	"github.com/lazyhr/lazyhr-backend-go/internal/handler/http/response"
	userService "github.com/lazyhr/lazyhr-backend-go/internal/service/user"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService *userService.Service
}

func NewUserHandler(svc *userService.Service) UserHandler {
	return &UserHandlerImpl{userService: svc}
}

// subjectID extracts the authenticated user id from the JWT claims.
func subjectID(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	return userID, ok && userID != ""
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User created", "user_id", created.ID, "username", created.Username)
	response.Created(w, "User created successfully", user.ToResponse(created))
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.ToResponse(u))
	}
	response.Success(w, out)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	u, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// Me implements UserHandler.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User deactivated", "user_id", id)
	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// Activate implements UserHandler.
func (h *UserHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	if err := h.userService.Activate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("User activated", "user_id", id)
	response.SuccessWithMessage(w, "User activated successfully", nil)
}
