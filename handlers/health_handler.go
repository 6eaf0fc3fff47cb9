package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/grindzone/grindzone-api/storage"
)

const healthProbeTimeout = 2 * time.Second

type HealthHandler struct {
	store storage.KVStore
}

func NewHealthHandler(store storage.KVStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz godoc
// @Summary Проверка живости и доступности хранилища
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if _, _, err := h.store.Get(ctx, storage.KeyTournaments); err != nil {
		status, code = "storage unavailable", http.StatusServiceUnavailable
	}
	if err := writeJSON(w, code, jsonResponse{"status": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
