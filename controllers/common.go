package controllers

import (
	"encoding/json"
	"net/http"

	"glik/exceptions"
)

// httpError отправляет ошибку клиенту. Доменные ошибки несут свой
// HTTP-код, все остальное отдается как 500 без деталей.
func httpError(w http.ResponseWriter, err error) {
	code := exceptions.StatusCodeOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON отправляет успешный ответ
func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
