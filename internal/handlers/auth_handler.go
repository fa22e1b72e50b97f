package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"quizladder/internal/security"
	"quizladder/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	csrf           *security.CSRFGenerator
	oauthProviders map[string]OAuthProvider
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, csrf *security.CSRFGenerator, oauthProviders map[string]OAuthProvider) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		csrf:           csrf,
		oauthProviders: oauthProviders,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	User      UserView `json:"user"`
	CSRFToken string   `json:"csrf_token"`
}

// Register creates a new account and logs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if _, err := h.authService.Register(req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "email already taken", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	h.login(w, r, req.Email, req.Password)
}

// Login verifies credentials and starts a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	h.login(w, r, req.Email, req.Password)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, email, password string) {
	user, session, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))

	token, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: newUserView(user), CSRFToken: token})
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated player
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}
