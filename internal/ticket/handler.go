package ticket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/joshwmy/record-management/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateTicketDTO) (*Ticket, error)
	GetByID(id int64) (*Ticket, error)
	List(filter Filter, limit, offset int) ([]*Ticket, error)
	Update(id int64, dto UpdateTicketDTO) (*Ticket, error)
	Delete(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, base *transport.BaseHandler) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(dto)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			h.WriteError(w, http.StatusConflict, "ticket already exists")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	t, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Priority:   r.URL.Query().Get("priority"),
		Status:     r.URL.Query().Get("status"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
	}

	limit := 20
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	ts, err := h.Service.List(filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tickets": ts,
		"limit":   limit,
		"offset":  offset,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	var dto UpdateTicketDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "ticket not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
