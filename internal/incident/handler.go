package incident

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/joshwmy/record-management/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateIncidentDTO) (*Incident, error)
	GetByID(id int64) (*Incident, error)
	List(filter Filter, limit, offset int) ([]*Incident, error)
	Update(id int64, dto UpdateIncidentDTO) (*Incident, error)
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
	var dto CreateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.Create(dto)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			h.WriteError(w, http.StatusConflict, "incident already exists")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, inc)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	inc, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "incident not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Severity: r.URL.Query().Get("severity"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
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

	incs, err := h.Service.List(filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"incidents": incs,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	var dto UpdateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inc, err := h.Service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "incident not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "incident not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
