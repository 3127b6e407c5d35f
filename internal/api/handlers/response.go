// Package handlers holds the shared HTTP helpers of the booking API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgSessionNotFound  = "сессия бронирования не найдена"
	msgSessionExpired   = "срок действия сессии истек"
	msgSessionCompleted = "бронирование по этой сессии уже подтверждено"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON читает JSON тело запроса; неизвестные поля запрещены
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку в формате {"code", "message"}
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

func RespondGone(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusGone, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondSessionError отвечает на ошибки доступа к сессии
// Возвращает false, если ошибка другого вида и ответ не отправлен
func RespondSessionError(w http.ResponseWriter, err error, sessionNotFound error) bool {
	switch {
	case errors.Is(err, sessionNotFound):
		RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, domain.ErrSessionCompleted):
		RespondGone(w, msgSessionCompleted)
	case errors.Is(err, domain.ErrSessionExpired):
		RespondGone(w, msgSessionExpired)
	default:
		return false
	}
	return true
}
