package handlers

import (
	"net/http"

	"github.com/grindzone/grindzone-api/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(ps *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// ListHandler godoc
// @Summary Журнал платежей (новые первыми)
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]interface{} "payments"
// @Router /payments [get]
func (h *PaymentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	payments := h.paymentService.ListPayments(r.Context())
	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
