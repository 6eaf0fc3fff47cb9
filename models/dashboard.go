package models

type DashboardStats struct {
	TournamentsTotal  int `json:"tournaments_total"`
	ActiveTournaments int `json:"active_tournaments"`
	RegisteredTeams   int `json:"registered_teams"`
	PaymentsTotal     int `json:"payments_total"`
	TotalPaymentsUSD  int `json:"total_payments_usd"`
}
