package http

import (
	"encoding/json"
	"net/http"

	"github.com/tasktab/tasktab/internal/tasktab/service"
	"github.com/tasktab/tasktab/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates a new user and returns a token bound to it.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req.Handle, req.Secret)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// HandleLogin verifies credentials and returns a token. Unknown handles and
// wrong secrets produce identical responses.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Handle, req.Secret)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// HandleProfile returns the authenticated user's record and task statistics.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing identity")
		return
	}

	user, stats, err := h.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profileResponse{
		User: newUserResponse(user),
		Stats: statsResponse{
			TotalTasks:     stats.TotalTasks,
			CompletedTasks: stats.CompletedTasks,
			PendingTasks:   stats.PendingTasks,
			AvgPriority:    stats.AvgPriority,
		},
	})
}
