package handlers

import (
	"errors"
	"net/http"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUser creates an account and hands out the API key once. The
// key is shown again only after an explicit rotation.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed."})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		APIKey:       utils.GenerateAPIKey(),
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Username or email already registered."})
			return
		}
		h.logger.Error("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed."})
		return
	}

	h.audit.LogAction(&user.ID, "REGISTER", user.Username, nil, c.ClientIP())

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"api_key":  user.APIKey,
	})
}

// LoginUser opens a cookie session. Wrong username and wrong password
// share one message.
func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", req.Username).First(&user).Error; err != nil ||
		!utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		h.logger.Error("failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Login failed."})
		return
	}

	h.audit.LogAction(&user.ID, "LOGIN", user.Username, nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"detail": "Logged in.", "username": user.Username})
}

func (h *Handler) LogoutUser(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Logged out."})
}

// RotateAPIKey replaces the caller's key. The old key stops working the
// moment the update commits.
func (h *Handler) RotateAPIKey(c *gin.Context) {
	userID := c.GetUint("user_id")

	newKey := utils.GenerateAPIKey()
	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("api_key", newKey).Error; err != nil {
		h.logger.Error("failed to rotate api key", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to rotate API key."})
		return
	}

	h.audit.LogAction(&userID, "ROTATE_API_KEY", "", nil, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"api_key": newKey})
}

// DeleteAccount removes the user. Their links survive as ownerless
// records so issued short URLs keep resolving.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID := c.GetUint("user_id")

	if err := h.db.Model(&models.ShortLink{}).
		Where("user_id = ?", userID).
		Update("user_id", nil).Error; err != nil {
		h.logger.Error("failed to detach links", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete account."})
		return
	}

	if err := h.db.Delete(&models.User{}, userID).Error; err != nil {
		h.logger.Error("failed to delete user", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete account."})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	h.audit.LogAction(nil, "DELETE_ACCOUNT", "", map[string]any{"user_id": userID}, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"detail": "Account deleted."})
}
