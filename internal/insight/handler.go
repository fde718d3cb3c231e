package insight

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/joshwmy/record-management/internal/transport"
)

type Summarizer interface {
	Summarize(ctx context.Context, domain, text string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Client Summarizer
}

func NewHandler(client Summarizer, base *transport.BaseHandler) *Handler {
	return &Handler{
		BaseHandler: base,
		Client:      client,
	}
}

type summarizeRequest struct {
	Domain string `json:"domain"`
	Text   string `json:"text"`
}

// Summarize proxies a summary request to the insight service. Failures
// degrade to a fallback message rather than an error status.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		h.WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	summary, err := h.Client.Summarize(r.Context(), req.Domain, req.Text)
	if err != nil {
		h.Logger.Warn("summary degraded to fallback", "error", err)
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"domain":  req.Domain,
		"summary": summary,
	})
}
