package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"auth-service/internal/model/requestresponse"
)

// LogError пишет подробности ошибки в лог и возвращает обёрнутую ошибку.
// Клиенту уходит только message, внутренние детали остаются в логе
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := requestresponse.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("ошибка кодирования ответа: %v", err)
	}
}
