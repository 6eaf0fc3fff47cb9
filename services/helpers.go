package services

import (
	"strconv"
	"strings"
)

// withDollarPrefix добавляет "$" к денежной строке, если его нет.
func withDollarPrefix(amount string) string {
	amount = strings.TrimSpace(amount)
	if amount == "" || strings.HasPrefix(amount, "$") {
		return amount
	}
	return "$" + amount
}

// parseDollars извлекает целое число долларов из строки вида "$1,250".
// Дробная часть отбрасывается, мусор даёт 0.
func parseDollars(amount string) int {
	amount = strings.TrimSpace(amount)
	amount = strings.TrimPrefix(amount, "$")
	amount = strings.ReplaceAll(amount, ",", "")
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		amount = amount[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(amount))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func defaultString(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
