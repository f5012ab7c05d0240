package handlers

import (
	"net/http"
	"time"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type AuthHandler struct {
	authService     *service.AuthService
	refreshTokenTTL time.Duration
	accessTokenTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, accessTokenTTL, refreshTokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "auth.Register", err)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, "auth.Register", badRequest("Username, email and password are required"))
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, "auth.Register", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusCreated, AuthResponse{
		User:         newUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "auth.Login", err)
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		respondError(w, "auth.Login", badRequest("Username or email and password are required"))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		respondError(w, "auth.Login", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusOK, AuthResponse{
		User:         newUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Logged in successfully")
}

// Refresh rotates the token pair. The incoming refresh token is read from
// the refreshToken cookie or, failing that, from the request body.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshRequest
		if err := decodeBody(w, r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		respondError(w, "auth.Refresh", errUnauthorized)
		return
	}

	result, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		respondError(w, "auth.Refresh", err)
		return
	}

	h.setAuthCookies(w, result)
	respond(w, http.StatusOK, AuthResponse{
		User:         newUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}, "Tokens refreshed successfully")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "auth.Logout", errUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		respondError(w, "auth.Logout", err)
		return
	}

	h.clearAuthCookies(w)
	respond(w, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, "auth.Me", errUnauthorized)
		return
	}

	respond(w, http.StatusOK, newUserResponse(user), "Current user fetched successfully")
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, "auth.ChangePassword", errUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, "auth.ChangePassword", err)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(w, "auth.ChangePassword", badRequest("Old and new passwords are required"))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondError(w, "auth.ChangePassword", err)
		return
	}

	respond(w, http.StatusOK, nil, "Password changed successfully")
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.accessTokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/",
		Expires:  time.Now().Add(h.refreshTokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
