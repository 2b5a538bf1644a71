package models

// LoginRequest запрос на вход администратора
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse ответ на успешный вход. Token передаётся как Bearer в /admin/*.
type LoginResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}
