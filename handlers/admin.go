package handlers

import (
	"net/http"
	"strings"

	"digicoop-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminHandler serves the platform-level account oversight endpoints. Every
// route it backs sits behind the admin guard.
type AdminHandler struct {
	DB *gorm.DB
}

// ListUsers returns every account with its derived role, filterable by
// stored profile and free text.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := h.DB.Model(&models.User{})

	if profile := c.Query("profile"); profile != "" {
		query = query.Where("profile = ?", profile)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du chargement des comptes"})
		return
	}

	accounts := make([]gin.H, 0, len(users))
	for i := range users {
		entry := userResponse(&users[i])
		entry["is_blocked"] = users[i].IsBlocked
		entry["created_at"] = users[i].CreatedAt
		accounts = append(accounts, entry)
	}

	c.JSON(http.StatusOK, gin.H{"users": accounts, "total": len(accounts)})
}

// SetUserBlocked blocks or unblocks an account. Blocked accounts fail login
// and token refresh.
func (h *AdminHandler) SetUserBlocked(c *gin.Context) {
	var req struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res := h.DB.Model(&models.User{}).
		Where("id = ?", c.Param("id")).
		Update("is_blocked", *req.Blocked)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du compte"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Compte introuvable"})
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": c.Param("id"), "blocked": *req.Blocked}).Info("account block state changed")
	c.JSON(http.StatusOK, gin.H{"message": "Compte mis à jour"})
}
