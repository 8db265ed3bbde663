package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/worlddist/ordering-backend/internal/domain"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindUnauthenticated:    http.StatusUnauthorized,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindConflict:           http.StatusBadRequest,
	domain.KindPaymentUnavailable: http.StatusServiceUnavailable,
	domain.KindPaymentRejected:    http.StatusBadRequest,
	domain.KindInternal:           http.StatusInternalServerError,
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the error's classification to a status code and
// renders it as a structured body. Unclassified errors never leak
// their message to the client.
func respondError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	if kind == domain.KindInternal {
		message = "internal server error"
	}

	respondJSON(w, status, map[string]errorBody{
		"error": {Code: string(kind), Message: message},
	})
}
