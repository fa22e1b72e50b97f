package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"quizladder/internal/models"
	"quizladder/internal/service"
)

// GameHandler handles game HTTP requests
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Create starts a new game for the player. If a game is already in progress
// the response points at it instead.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	game, err := h.gameService.CreateGameForPlayer(user.ID)
	if errors.Is(err, service.ErrGameInProgress) {
		existing, lookupErr := h.gameService.UnfinishedGame(user.ID)
		if lookupErr != nil || existing == nil {
			respondWithServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "you already have a game in progress",
			"game_id": existing.ID,
		})
		return
	}
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameView(game, h.gameService.Now()))
}

// Show returns the player's view of a game
func (h *GameHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(user.ID, gameID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game, h.gameService.Now()))
}

type answerRequest struct {
	Letter string `json:"letter"`
}

// Answer submits an answer letter for the game's current question
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Letter == "" {
		respondWithError(w, http.StatusBadRequest, "answer letter is required", nil)
		return
	}

	game, inProgress, err := h.gameService.Answer(user.ID, gameID, req.Letter)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"in_progress": inProgress,
		"game":        newGameView(game, h.gameService.Now()),
	})
}

// TakeMoney cashes the game out
func (h *GameHandler) TakeMoney(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	game, err := h.gameService.TakeMoney(user.ID, gameID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game, h.gameService.Now()))
}

type helpRequest struct {
	Type string `json:"type"`
}

// UseHelp spends a lifeline on the current question
func (h *GameHandler) UseHelp(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	gameID, ok := h.gameID(w, r)
	if !ok {
		return
	}

	var req helpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
		respondWithError(w, http.StatusBadRequest, "help type is required", nil)
		return
	}

	game, err := h.gameService.UseHelp(user.ID, gameID, models.HelpKind(req.Type))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameView(game, h.gameService.Now()))
}

func (h *GameHandler) gameID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	gameID, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid game ID", nil)
		return 0, false
	}
	return gameID, true
}
