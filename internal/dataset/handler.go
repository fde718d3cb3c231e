package dataset

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/joshwmy/record-management/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateDatasetDTO) (*Dataset, error)
	GetByID(id int64) (*Dataset, error)
	List(filter Filter, limit, offset int) ([]*Dataset, error)
	Update(id int64, dto UpdateDatasetDTO) (*Dataset, error)
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
	var dto CreateDatasetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Create(dto)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			h.WriteError(w, http.StatusConflict, "dataset already exists")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dataset id")
		return
	}

	d, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "dataset not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		UploadedBy: r.URL.Query().Get("uploaded_by"),
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

	ds, err := h.Service.List(filter, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": ds,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dataset id")
		return
	}

	var dto UpdateDatasetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "dataset not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid dataset id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "dataset not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
