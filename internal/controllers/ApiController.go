package controllers

import (
	"errors"
	"net/http"
	"sentinel/internal/models"
	"sentinel/internal/providers"
	"sentinel/internal/services"
	"sentinel/internal/storage"
	"sentinel/internal/token"
	"strings"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.SiteServiceInterface
	issuer  *token.Issuer
}

func NewApiController(logger providers.Logger, service services.SiteServiceInterface, issuer *token.Issuer) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		issuer:  issuer,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// requireSession rejects the request unless it carries a valid bearer
// session token. Write operations on sites, categories and the theme all
// go through here.
func (ac *ApiController) requireSession(w http.ResponseWriter, r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok || tok == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	if _, valid := ac.issuer.VerifySession(tok); !valid {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// storeError maps storage sentinel errors to HTTP statuses.
func (ac *ApiController) storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrValidation):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, storage.ErrLastCategory):
		http.Error(w, "Cannot delete the last category", http.StatusBadRequest)
	case errors.Is(err, storage.ErrUnavailable):
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Store unavailable: %s", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Unexpected store error: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// --- sites ---

func (ac *ApiController) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := ac.service.ListSites(r.Context())
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

func (ac *ApiController) CreateSite(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.SiteInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	site, err := ac.service.CreateSite(r.Context(), payload)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

type updateSiteRequest struct {
	ID    string           `json:"id"`
	Patch models.SitePatch `json:"patch"`
}

func (ac *ApiController) UpdateSite(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload updateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ok, err := ac.service.UpdateSite(r.Context(), payload.ID, payload.Patch)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type idRequest struct {
	ID string `json:"id"`
}

func (ac *ApiController) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload idRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ok, err := ac.service.DeleteSite(r.Context(), payload.ID)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ac *ApiController) ImportSites(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var entries []models.ImportEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		http.Error(w, "Invalid format. Expected an array of websites.", http.StatusBadRequest)
		return
	}
	count, err := ac.service.ImportSites(r.Context(), entries)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// --- categories ---

func (ac *ApiController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := ac.service.ListCategories(r.Context())
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (ac *ApiController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload nameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	cat, err := ac.service.CreateCategory(r.Context(), payload.Name)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

type renameCategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (ac *ApiController) RenameCategory(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload renameCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ok, err := ac.service.RenameCategory(r.Context(), payload.ID, payload.Name)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ac *ApiController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload idRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ok, err := ac.service.DeleteCategory(r.Context(), payload.ID)
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// --- theme ---

func (ac *ApiController) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := ac.service.GetTheme(r.Context())
	if err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Theme{"theme": theme})
}

type themeRequest struct {
	Theme models.Theme `json:"theme"`
}

func (ac *ApiController) SetTheme(w http.ResponseWriter, r *http.Request) {
	if !ac.requireSession(w, r) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload themeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.service.SetTheme(r.Context(), payload.Theme); err != nil {
		ac.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
