package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/worlddist/ordering-backend/internal/api/middleware"
	"github.com/worlddist/ordering-backend/internal/config"
	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CompanyName   string `json:"companyName"`
	Country       string `json:"country"`
	Region        string `json:"region"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Phone         string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, domain.Validationf("a valid email is required"))
		return
	}
	if len(req.Password) < 6 {
		respondError(w, domain.Validationf("password must be at least 6 characters"))
		return
	}
	if req.CompanyName == "" || req.Country == "" {
		respondError(w, domain.Validationf("company name and country are required"))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		CompanyName:   req.CompanyName,
		Country:       req.Country,
		Region:        req.Region,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	respondJSON(w, http.StatusCreated, UserResponse{User: result.User})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, domain.Validationf("email and password are required"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookie(w, result.Token)
	respondJSON(w, http.StatusOK, UserResponse{User: result.User})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, domain.Unauthenticatedf("not authenticated"))
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{User: user})
}

// Logout clears the cookie and revokes the session if one is present.
// It never fails: the cookie is gone either way, and a row that
// survived a failed revoke is filtered out at expiry like any other.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)

	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		_ = h.authService.Revoke(r.Context(), cookie.Value)
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
