package handlers

import (
	"errors"
	"net/http"

	"github.com/grindzone/grindzone-api/services"
)

type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

func NewRegistrationHandler(rs *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register godoc
// @Summary Зарегистрировать команду в турнире
// @Tags registrations
// @Description Занимает одно место и записывает платёж. Тело необязательно.
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.RegisterInput false "Команда"
// @Success 201 {object} services.RegistrationResult
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 409 {object} map[string]string "Турнир заполнен"
// @Router /tournaments/{tournamentID}/register [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// тело необязательно, в том числе при chunked-запросе без данных
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.registrationService.Register(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
