package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"quizladder/internal/models"
	"quizladder/internal/service"
)

func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Error().Err(err).Int("status", status).Msg(userMsg)
	}
	writeJSON(w, status, map[string]string{"error": userMsg})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondWithServiceError translates the game rule errors into HTTP statuses.
// Anything unrecognized is treated as an internal failure.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameInProgress):
		respondWithError(w, http.StatusConflict, "you already have a game in progress", nil)
	case errors.Is(err, service.ErrGameNotFound):
		respondWithError(w, http.StatusNotFound, "game not found", nil)
	case errors.Is(err, service.ErrNotGameOwner):
		respondWithError(w, http.StatusForbidden, "this is not your game", nil)
	case errors.Is(err, service.ErrNotEnoughQuestions):
		respondWithError(w, http.StatusUnprocessableEntity, "not enough questions to start a game", nil)
	case errors.Is(err, models.ErrGameFinished):
		respondWithError(w, http.StatusUnprocessableEntity, "game is already finished", nil)
	case errors.Is(err, models.ErrNoCurrentQuestion):
		respondWithError(w, http.StatusUnprocessableEntity, "game has no current question", nil)
	case errors.Is(err, models.ErrHelpAlreadyUsed), errors.Is(err, models.ErrHelpAlreadyApplied):
		respondWithError(w, http.StatusUnprocessableEntity, "help already used", nil)
	case errors.Is(err, models.ErrUnknownHelpKind):
		respondWithError(w, http.StatusBadRequest, "unknown help type", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "something went wrong", err)
	}
}
