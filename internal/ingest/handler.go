package ingest

import (
	"net/http"

	"github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/transport"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service, base *transport.BaseHandler) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// Upload returns the multipart CSV upload handler for one business domain.
func (h *Handler) Upload(domain authz.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.WriteError(w, http.StatusBadRequest, "expected multipart form with a file field")
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()

		uploadedBy := ""
		if sess, ok := internal.SessionFromContext(r.Context()); ok {
			uploadedBy = sess.Username
		}

		report, err := h.Service.IngestCSV(r.Context(), domain, file, uploadedBy)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		h.WriteJSON(w, http.StatusOK, report)
	}
}
