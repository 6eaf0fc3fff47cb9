package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindzone/grindzone-api/metrics"
	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/repositories"
	"github.com/grindzone/grindzone-api/services"
	"github.com/grindzone/grindzone-api/storage"
)

type testServer struct {
	router      chi.Router
	tournaments repositories.TournamentRepository
	payments    repositories.PaymentRepository
}

func newTestServer(t *testing.T, store storage.KVStore, seed ...models.Tournament) *testServer {
	t.Helper()
	tournamentRepo := repositories.NewKVTournamentRepository(store)
	paymentRepo := repositories.NewKVPaymentRepository(store)
	if seed != nil {
		require.NoError(t, tournamentRepo.ReplaceAll(context.Background(), seed))
	}

	tournamentHandler := NewTournamentHandler(services.NewTournamentService(tournamentRepo, nil, nil, nil))
	registrationHandler := NewRegistrationHandler(services.NewRegistrationService(tournamentRepo, paymentRepo, metrics.NewMock(), nil, nil))
	paymentHandler := NewPaymentHandler(services.NewPaymentService(paymentRepo, nil))
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(tournamentRepo, paymentRepo))
	healthHandler := NewHealthHandler(store)

	r := chi.NewRouter()
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/api/tournaments", tournamentHandler.ListHandler)
	r.Post("/api/tournaments", tournamentHandler.CreateHandler)
	r.Get("/api/tournaments/categories", tournamentHandler.CategoriesHandler)
	r.Get("/api/tournaments/{tournamentID}", tournamentHandler.GetByIDHandler)
	r.Put("/api/tournaments/{tournamentID}", tournamentHandler.UpdateHandler)
	r.Delete("/api/tournaments/{tournamentID}", tournamentHandler.DeleteHandler)
	r.Put("/api/tournaments/{tournamentID}/image", tournamentHandler.UploadImageHandler)
	r.Post("/api/tournaments/{tournamentID}/register", registrationHandler.Register)
	r.Get("/api/payments", paymentHandler.ListHandler)
	r.Get("/api/dashboard/stats", dashboardHandler.Stats)

	return &testServer{router: r, tournaments: tournamentRepo, payments: paymentRepo}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func fixtures() []models.Tournament {
	return []models.Tournament{
		{ID: "t1", Name: "Nearly Full", Game: "Valorant", Tier: "Pro", Date: "2099-01-10", Participants: "31/32 teams", EntryFee: "$40", Version: 1},
		{ID: "t2", Name: "Old Cup", Game: "PUBG", Tier: "Amateur", Date: "2020-01-10", Participants: "8/8 teams", Version: 1},
	}
}

func TestListHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodGet, "/api/tournaments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Tournaments []models.Tournament `json:"tournaments"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Tournaments, 2)
	assert.Equal(t, models.StatusUpcoming, body.Tournaments[0].Status)
	assert.True(t, body.Tournaments[1].IsFull)

	rec = srv.do(t, http.MethodGet, "/api/tournaments?game=PUBG&full=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	require.Len(t, body.Tournaments, 1)
	assert.Equal(t, "t2", body.Tournaments[0].ID)

	rec = srv.do(t, http.MethodGet, "/api/tournaments?category=past", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	require.Len(t, body.Tournaments, 1)
	assert.Equal(t, "t2", body.Tournaments[0].ID)
}

func TestListHandler_BadQuery(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/tournaments?full=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/tournaments?category=later", "").Code)
}

func TestListHandler_UnavailableStoreReturnsEmptyList(t *testing.T) {
	srv := newTestServer(t, unavailableStore{})

	rec := srv.do(t, http.MethodGet, "/api/tournaments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tournaments": []}`, rec.Body.String())
}

func TestCategoriesHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodGet, "/api/tournaments/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cats models.TournamentCategories
	decode(t, rec, &cats)
	assert.Len(t, cats.Upcoming, 1)
	assert.Empty(t, cats.Ongoing)
	assert.Len(t, cats.Past, 1)
}

func TestGetByIDHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodGet, "/api/tournaments/t1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tournament models.Tournament `json:"tournament"`
	}
	decode(t, rec, &body)
	assert.Equal(t, models.DefaultRules, body.Tournament.Rules)

	rec = srv.do(t, http.MethodGet, "/api/tournaments/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestRegisterHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodPost, "/api/tournaments/t1/register", `{"team":"Phoenix"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result services.RegistrationResult
	decode(t, rec, &result)
	assert.Equal(t, "32/32 teams", result.Tournament.Participants)
	assert.True(t, result.Tournament.IsFull)
	assert.True(t, result.PaymentRecorded)
	assert.Equal(t, "Phoenix", result.Payment.Team)

	rec = srv.do(t, http.MethodPost, "/api/tournaments/t1/register", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/tournaments/missing/register", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/tournaments/t1/register", `{"squad":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/payments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var payments struct {
		Payments []models.Payment `json:"payments"`
	}
	decode(t, rec, &payments)
	require.Len(t, payments.Payments, 1)
	assert.Equal(t, "$40", payments.Payments[0].Amount)
}

func TestRegisterHandler_EmptyChunkedBody(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	// io.Reader без известной длины: ContentLength == -1
	body := struct{ io.Reader }{strings.NewReader("")}
	req := httptest.NewRequest(http.MethodPost, "/api/tournaments/t1/register", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)

	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result services.RegistrationResult
	decode(t, rec, &result)
	assert.Equal(t, services.DefaultTeamName, result.Payment.Team)
}

func TestCreateHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/api/tournaments", `{"name":"Spring Clash","game":"COD","date":"2099-04-01","maxTeams":16,"entryFee":"20"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		Tournament models.Tournament `json:"tournament"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "/api/tournaments/"+body.Tournament.ID, rec.Header().Get("Location"))
	assert.Equal(t, "0/16 teams", body.Tournament.Participants)
	assert.Equal(t, "$20", body.Tournament.EntryFee)

	rec = srv.do(t, http.MethodPost, "/api/tournaments", `{"name":"No date","game":"COD"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/tournaments", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDeleteHandlers(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodPut, "/api/tournaments/t1", `{"name":"Renamed","game":"Valorant","date":"2099-01-10","participants":"31/32 teams","version":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(t, http.MethodPut, "/api/tournaments/t1", `{"name":"Stale","participants":"31/32 teams","version":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/tournaments/t2", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodDelete, "/api/tournaments/t2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateHandler_RejectsUnknownFields(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodPut, "/api/tournaments/t1", `{"name":"Renamed","game":"Valorant","date":"2099-01-10","participant":"3/32 teams","version":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "participant")

	stored, err := srv.tournaments.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "31/32 teams", stored.Participants)
	assert.Equal(t, "Nearly Full", stored.Name)
}

func TestUpdateHandler_AcceptsEchoedRecord(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	rec := srv.do(t, http.MethodGet, "/api/tournaments/t2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Tournament map[string]interface{} `json:"tournament"`
	}
	decode(t, rec, &body)
	require.Equal(t, true, body.Tournament["isFull"])

	body.Tournament["participants"] = "2/8 teams"
	raw, err := json.Marshal(body.Tournament)
	require.NoError(t, err)

	rec = srv.do(t, http.MethodPut, "/api/tournaments/t2", string(raw))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stored, err := srv.tournaments.GetByID(context.Background(), "t2")
	require.NoError(t, err)
	assert.Equal(t, "2/8 teams", stored.Participants)
	assert.False(t, stored.IsFull)
	assert.Empty(t, stored.Status)
}

func TestUploadImageHandler_Disabled(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="banner.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/tournaments/t1/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestDashboardStatsHandler(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore(), fixtures()...)
	require.NoError(t, srv.payments.Append(context.Background(), models.Payment{ID: "p1", Amount: "$1,500"}))

	rec := srv.do(t, http.MethodGet, "/api/dashboard/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.TournamentsTotal)
	assert.Equal(t, 1, stats.ActiveTournaments)
	assert.Equal(t, 39, stats.RegisteredTeams)
	assert.Equal(t, 1500, stats.TotalPaymentsUSD)
}

func TestStorageUnavailableMapsTo503(t *testing.T) {
	srv := newTestServer(t, unavailableStore{})

	assert.Equal(t, http.StatusServiceUnavailable, srv.do(t, http.MethodGet, "/api/dashboard/stats", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, srv.do(t, http.MethodPost, "/api/tournaments/t1/register", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, srv.do(t, http.MethodGet, "/healthz", "").Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, storage.NewMemoryStore())
	rec := srv.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type unavailableStore struct{}

func (unavailableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, storage.ErrUnavailable
}

func (unavailableStore) Set(context.Context, string, string) error {
	return storage.ErrUnavailable
}
