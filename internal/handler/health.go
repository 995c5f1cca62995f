package handler

import (
	"net/http"

	"github.com/openforum-dev/openforum/shared/utils"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"})
}

// Ready reports whether the content store answers; the search index is
// deliberately excluded because searches degrade to 503 on their own.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.WriteJSON(w, map[string]string{"status": "ready"})
}
