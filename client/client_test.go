package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindzone/grindzone-api/models"
	"github.com/grindzone/grindzone-api/services"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func TestListTournaments_SendsFilters(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tournaments", r.URL.Path)
		assert.Equal(t, "Valorant", r.URL.Query().Get("game"))
		assert.Equal(t, "true", r.URL.Query().Get("full"))
		assert.Equal(t, "upcoming", r.URL.Query().Get("category"))
		assert.Empty(t, r.URL.Query().Get("tier"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"tournaments": []models.Tournament{{ID: "t1", Name: "Night Cup", Participants: "32/32 teams"}},
		})
	})

	got, err := c.ListTournaments(context.Background(), services.ListFilter{
		Filter:   services.Filter{Game: "Valorant", FullOnly: true},
		Category: "upcoming",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestRegister_PostsBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tournaments/t1/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in services.RegisterInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Falcons", in.Team)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(services.RegistrationResult{
			Tournament:      models.Tournament{ID: "t1", Participants: "5/16 teams"},
			Payment:         models.Payment{Team: "Falcons", Amount: "$50"},
			CapacityTracked: true,
			PaymentRecorded: true,
		})
	})

	res, err := c.Register(context.Background(), "t1", services.RegisterInput{Team: "Falcons"})
	require.NoError(t, err)
	assert.Equal(t, "5/16 teams", res.Tournament.Participants)
	assert.Equal(t, "Falcons", res.Payment.Team)
	assert.True(t, res.PaymentRecorded)
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error envelope", http.StatusConflict, `{"error":"tournament is full"}`, "tournament is full"},
		{"no envelope", http.StatusServiceUnavailable, `oops`, "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetTournament(context.Background(), "t1")
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestStatsAndPayments(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dashboard/stats":
			_ = json.NewEncoder(w).Encode(models.DashboardStats{TournamentsTotal: 4, TotalPaymentsUSD: 200})
		case "/api/payments":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"payments": []models.Payment{{ID: "p1"}, {ID: "p2"}},
			})
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TournamentsTotal)
	assert.Equal(t, 200, stats.TotalPaymentsUSD)

	payments, err := c.ListPayments(context.Background())
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
