package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"brainflip/internal/flashcards"
	"brainflip/internal/quiz"
)

func writeServiceError(w http.ResponseWriter, err error) {
	var violations quiz.ValidationErrors
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "quiz not found"})
	case errors.As(err, &violations):
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Error:      "quiz failed validation",
			Violations: toViolationResponses(violations),
		})
	case errors.Is(err, flashcards.ErrNoCards):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no flashcards stored"})
	case errors.Is(err, flashcards.ErrEmptyField):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question and answer are both required"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func toViolationResponses(violations quiz.ValidationErrors) []violationResponse {
	response := make([]violationResponse, 0, len(violations))
	for _, violation := range violations {
		response = append(response, violationResponse{
			Field:   violation.Field,
			Message: violation.Message,
		})
	}
	return response
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethods string) {
	w.Header().Set("Allow", allowedMethods)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
