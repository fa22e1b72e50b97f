package handlers

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"quizladder/internal/security"
)

// OAuthProvider defines provider configuration and metadata
type OAuthProvider struct {
	Name        string
	Label       string
	Config      *oauth2.Config
	UserInfoURL string
	AuthParams  map[string]string
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

// StartOAuth initiates the OAuth flow for a provider
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	providerKey := chi.URLParam(r, "provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", nil)
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	options := []oauth2.AuthCodeOption{oauth2.AccessTypeOnline}
	for key, value := range provider.AuthParams {
		options = append(options, oauth2.SetAuthURLParam(key, value))
	}

	http.Redirect(w, r, config.AuthCodeURL(state, options...), http.StatusFound)
}

// OAuthCallback handles the OAuth provider callback
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerKey := chi.URLParam(r, "provider")
	provider, ok := h.oauthProviders[providerKey]
	if !ok || provider.Config == nil || provider.Config.ClientID == "" || provider.Config.ClientSecret == "" {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, "invalid OAuth state", nil)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "missing authorization code", nil)
		return
	}

	config := *provider.Config
	config.RedirectURL = h.oauthRedirectURL(r, providerKey)

	token, err := config.Exchange(r.Context(), code)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "OAuth code exchange failed", err)
		return
	}

	var info *oauthUserInfo
	if providerKey == "apple" {
		info, err = appleUserInfo(token)
	} else {
		info, err = fetchUserInfo(r.Context(), &config, token, provider.UserInfoURL)
	}
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to fetch OAuth user info", err)
		return
	}

	_, session, err := h.authService.LoginOAuth(providerKey, info.Subject, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "OAuth sign-in failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, lifetime time.Duration) {
	http.SetCookie(w, security.CreateSessionCookie(r, name, value, time.Now().Add(lifetime)))
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request, providerKey string) string {
	scheme := "http"
	if security.IsSecureRequest(r) {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/auth/%s/callback", scheme, r.Host, providerKey)
}

// fetchUserInfo calls the provider's userinfo endpoint with the access token
func fetchUserInfo(ctx context.Context, config *oauth2.Config, token *oauth2.Token, userInfoURL string) (*oauthUserInfo, error) {
	if userInfoURL == "" {
		return nil, errors.New("provider has no userinfo endpoint")
	}

	client := config.Client(ctx, token)
	resp, err := client.Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo request failed: %s: %s", resp.Status, body)
	}

	var payload struct {
		ID    string `json:"id"`
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	subject := payload.Sub
	if subject == "" {
		subject = payload.ID
	}
	if subject == "" {
		return nil, errors.New("userinfo response has no subject")
	}

	return &oauthUserInfo{Subject: subject, Email: payload.Email, Name: payload.Name}, nil
}

const appleKeysURL = "https://appleid.apple.com/auth/keys"

type appleClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// appleUserInfo extracts identity from Apple's id_token; Apple has no
// userinfo endpoint. The token signature is verified against Apple's
// published RSA keys.
func appleUserInfo(token *oauth2.Token) (*oauthUserInfo, error) {
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, errors.New("apple response has no id_token")
	}

	keys, err := fetchAppleKeys()
	if err != nil {
		return nil, err
	}

	claims := &appleClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	parsed, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown apple key id %q", kid)
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify apple id_token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.New("invalid apple id_token")
	}

	return &oauthUserInfo{Subject: claims.Subject, Email: claims.Email}, nil
}

// fetchAppleKeys downloads Apple's JWKS and builds the RSA public keys
func fetchAppleKeys() (map[string]*rsa.PublicKey, error) {
	resp, err := http.Get(appleKeysURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, key := range payload.Keys {
		nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
		if err != nil {
			continue
		}
		eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
		if err != nil {
			continue
		}
		keys[key.Kid] = &rsa.PublicKey{
			N: new(big.Int).SetBytes(nBytes),
			E: int(new(big.Int).SetBytes(eBytes).Int64()),
		}
	}
	return keys, nil
}
