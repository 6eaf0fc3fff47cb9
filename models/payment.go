package models

// Payment - запись об оплате участия. Турнир указан только по отображаемому имени.
type Payment struct {
	ID         string `json:"id"`
	Team       string `json:"team"`
	Tournament string `json:"tournament"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
}
