package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const maxBodyBytes = 1 << 20

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется авторизация"
	msgForbidden     = "недостаточно прав"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку в формате {"code", "message"}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgUnauthorized
	}
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgForbidden
	}
	RespondError(w, http.StatusForbidden, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation отдаёт сообщение *domain.ValidationError как есть, иначе fallback
func RespondValidation(w http.ResponseWriter, err error, fallback string) {
	RespondBadRequest(w, ValidationMessage(err, fallback))
}

// ValidationMessage текст ошибки валидации для клиента
func ValidationMessage(err error, fallback string) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return fallback
}

// DecodeJSON читает тело запроса. Данные после первого объекта - ошибка.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
