package models

// SendRequest запрос кода
type SendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendResponse ответ на запрос кода. OTP заполняется только в режиме разработки.
type SendResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

// VerifyRequest проверка кода
type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// VerifyResponse ответ на успешную проверку
type VerifyResponse struct {
	Message string `json:"message"`
}
