package controllers

import (
	"net/http"
	"sentinel/internal/providers"
	"sentinel/internal/structures"
	"sentinel/internal/token"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	logger providers.Logger
	issuer *token.Issuer
	conf   *structures.Config
}

func NewAuthController(logger providers.Logger, issuer *token.Issuer, conf *structures.Config) *AuthController {
	return &AuthController{
		logger: logger,
		issuer: issuer,
		conf:   conf,
	}
}

// IssueChallenge hands out a fresh arithmetic challenge for the login form.
func (ac *AuthController) IssueChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := ac.issuer.IssueChallenge()
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Challenge generation failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

type verifyChallengeRequest struct {
	Token  string `json:"token"`
	Answer string `json:"answer"`
}

func (ac *AuthController) VerifyChallenge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload verifyChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	valid := ac.issuer.VerifyChallenge(payload.Token, payload.Answer)
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	CaptchaToken  string `json:"captchaToken"`
	CaptchaAnswer string `json:"captchaAnswer"`
}

// Login verifies the challenge, then the admin credentials, and returns a
// session token. Failure responses carry no detail about which check broke.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if !ac.issuer.VerifyChallenge(payload.CaptchaToken, payload.CaptchaAnswer) {
		http.Error(w, "Invalid captcha", http.StatusBadRequest)
		return
	}

	err := bcrypt.CompareHashAndPassword([]byte(ac.conf.Auth.AdminPasswordHash), []byte(payload.Password))
	if err != nil || payload.Username != ac.conf.Auth.AdminUser {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	tok, err := ac.issuer.IssueSession(payload.Username, "admin")
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Session issue failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.logger.Infof(providers.TypeApp, "Admin login: %s", payload.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// Me introspects the bearer session token.
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || tok == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	claims, valid := ac.issuer.VerifySession(tok)
	if !valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"username": claims.Subject,
		"role":     claims.Role,
	})
}
