package otp

import "time"

// Entry выданный код: секрет TOTP и момент выдачи, по которому код проверяется
type Entry struct {
	Secret   string    `json:"secret"`
	IssuedAt time.Time `json:"issued_at"`
	Attempts int       `json:"attempts"`
}
