package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"personaai/internal/auth"
	"personaai/internal/models"
	"personaai/internal/storage"
)

// SignupRequest is the credentials payload for account creation.
type SignupRequest struct {
	Name     string `json:"name" binding:"required" example:"John Doe"`
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required,min=4" example:"password123"`
}

// LoginRequest is the credentials payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"john@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// Signup godoc
// @Summary      Create a user account
// @Description  Registers a new user with the "user" role. When an invite code is configured it must be sent in X-Invite-Code.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.SignupRequest true "signup payload"
// @Success      200 {object} handler.Response
// @Failure      400 {object} handler.Response
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Type:     models.RoleUser,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			respondError(c, http.StatusBadRequest, "Email already exists")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	respondOK(c, user)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies email and password and returns a signed session token carrying the role claim.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "login payload"
// @Success      200 {object} handler.Response
// @Failure      401 {object} handler.Response
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("failed to load user for login", "error", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondOK(c, gin.H{"token": token, "user": user})
}
