package handlers

import (
	"net/http"
	"time"

	"github.com/grindzone/grindzone-api/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s, now: time.Now}
}

// Stats godoc
// @Summary Статистика для панели администратора
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), h.now())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, stats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
