package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/grindzone/grindzone-api/services"
)

const maxBannerBytes = 10 << 20

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

// ListHandler godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param game query string false "Игра (All - без фильтра)"
// @Param tier query string false "Уровень (All - без фильтра)"
// @Param full query bool false "Только заполненные"
// @Param category query string false "upcoming | ongoing | past"
// @Success 200 {object} map[string]interface{} "tournaments"
// @Failure 400 {object} map[string]string "Неверные параметры"
// @Router /tournaments [get]
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := services.ListFilter{
		Filter: services.Filter{
			Game: query.Get("game"),
			Tier: query.Get("tier"),
		},
		Category: query.Get("category"),
	}
	if fullStr := query.Get("full"); fullStr != "" {
		full, err := strconv.ParseBool(fullStr)
		if err != nil {
			badRequestResponse(w, r, errors.New("invalid full query parameter"))
			return
		}
		filter.FullOnly = full
	}

	tournaments, err := h.tournamentService.ListTournaments(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CategoriesHandler godoc
// @Summary Турниры, сгруппированные по фазе
// @Tags tournaments
// @Produce json
// @Success 200 {object} models.TournamentCategories
// @Router /tournaments/categories [get]
func (h *TournamentHandler) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	cats := h.tournamentService.Categorize(r.Context())
	if err := writeJSON(w, http.StatusOK, cats, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler godoc
// @Summary Детали турнира
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetTournamentDetails(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler godoc
// @Summary Создать турнир
// @Tags tournaments
// @Accept json
// @Produce json
// @Param input body services.CreateTournamentInput true "Данные турнира"
// @Success 201 {object} map[string]interface{} "tournament"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.CreateTournament(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", "/api/tournaments/"+tournament.ID)
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler godoc
// @Summary Обновить турнир (полная замена)
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param input body services.UpdateTournamentInput true "Турнир из GET с правками; version - для проверки конкурентных изменений"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 409 {object} map[string]string "Турнир изменён другим запросом"
// @Router /tournaments/{tournamentID} [put]
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler godoc
// @Summary Удалить турнир
// @Tags tournaments
// @Param tournamentID path string true "Tournament ID"
// @Success 204 "Удалён"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.DeleteTournament(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImageHandler godoc
// @Summary Загрузить баннер турнира
// @Tags tournaments
// @Accept multipart/form-data
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param image formData file true "Баннер (jpeg, png, webp)"
// @Success 200 {object} map[string]interface{} "tournament"
// @Failure 400 {object} map[string]string "Неверный файл"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Failure 501 {object} map[string]string "Хранилище файлов не настроено"
// @Router /tournaments/{tournamentID}/image [put]
func (h *TournamentHandler) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBannerBytes)
	if err := r.ParseMultipartForm(maxBannerBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get image file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for image"))
		return
	}

	tournament, err := h.tournamentService.UploadImage(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
