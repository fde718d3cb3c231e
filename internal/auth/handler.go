package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/joshwmy/record-management/internal/transport"
	"github.com/joshwmy/record-management/pkg/logger"
)

// SessionInvalidator is the slice of the session manager the handler needs
// for logout.
type SessionInvalidator interface {
	Invalidate(token string) error
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionInvalidator
}

func NewHandler(svc ServiceAPI, sessions SessionInvalidator) *Handler {
	lg := logger.Default()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Register(dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUser):
			h.WriteError(w, http.StatusConflict, "username already exists")
		case errors.Is(err, ErrStorageUnavailable):
			h.Logger.Error("registration failed", "error", err)
			h.WriteError(w, http.StatusServiceUnavailable, "credential store unavailable")
		default:
			var verr ValidationError
			if errors.As(err, &verr) {
				h.WriteError(w, http.StatusBadRequest, verr.Msg)
			} else {
				h.Logger.Error("registration failed", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.Service.Login(dto)
	if err != nil {
		var lockErr *LockedError
		var verr ValidationError
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.As(err, &lockErr):
			h.WriteError(w, http.StatusLocked, lockErr.Error())
		case errors.As(err, &verr):
			h.WriteError(w, http.StatusBadRequest, verr.Msg)
		case errors.Is(err, ErrStorageUnavailable):
			h.Logger.Error("login failed", "error", err)
			h.WriteError(w, http.StatusServiceUnavailable, "credential store unavailable")
		default:
			h.Logger.Error("login failed", "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, sess)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if err := h.Sessions.Invalidate(token); err != nil {
		h.Logger.Error("logout failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unlock clears another user's lockout state. The router gates this route on
// the manage-users permission.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		h.WriteError(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.Service.Unlock(username); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, ErrStorageUnavailable) {
			h.Logger.Error("unlock failed", "error", err, "username", username)
			h.WriteError(w, http.StatusServiceUnavailable, "credential store unavailable")
			return
		}
		h.Logger.Error("unlock failed", "error", err, "username", username)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
