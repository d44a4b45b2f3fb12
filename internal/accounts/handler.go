package accounts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/analyses"
	"ats-backend/internal/shared/auth"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the accounts service.
type Handler struct {
	Svc      *Service
	Sessions *analyses.SessionStore
}

func NewHandler(svc *Service, sessions *analyses.SessionStore) *Handler {
	return &Handler{Svc: svc, Sessions: sessions}
}

// RegisterRoutes attaches account routes to the router group. Register and
// login are exempted from the auth middleware by path.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.GET("/auth/me", h.me)
	rg.POST("/auth/password", h.changePassword)
	rg.DELETE("/auth/account", h.deleteAccount)
}

// RegisterDevRoutes attaches administrative routes. Only mounted outside
// production.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.GET("/dev/users", h.listAccounts)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	account, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			respond.Error(c, http.StatusConflict, "duplicate_username", "username already taken", nil)
		case errors.Is(err, ErrDuplicateEmail):
			respond.Error(c, http.StatusConflict, "duplicate_email", "email already registered", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	telemetry.Info("account.registered", map[string]any{"username": account.Username})
	respond.JSON(c, http.StatusCreated, gin.H{
		"username":  account.Username,
		"email":     account.Email,
		"createdAt": account.CreatedAt,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	account, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	token, err := auth.SignToken(account.ID, account.Username, account.Email)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"token":     token,
		"username":  account.Username,
		"email":     account.Email,
		"lastLogin": account.LastLogin,
	})
}

func (h *Handler) me(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	account, err := h.Svc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "account not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch account", nil)
		return
	}

	respond.JSON(c, http.StatusOK, account)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) changePassword(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.UpdatePassword(c.Request.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"updated": true})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *Handler) deleteAccount(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.DeleteAccount(c.Request.Context(), username, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "password is incorrect", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete account", nil)
		return
	}

	if h.Sessions != nil {
		h.Sessions.Drop(username)
	}
	telemetry.Info("account.deleted", map[string]any{"username": username})
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listAccounts(c *gin.Context) {
	accounts, err := h.Svc.ListAccounts(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list accounts", nil)
		return
	}
	respond.JSON(c, http.StatusOK, accounts)
}
