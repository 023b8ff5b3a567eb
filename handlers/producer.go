package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"digicoop-backend/models"
	"digicoop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProducerHandler struct {
	DB *gorm.DB
}

// ProducerInput is the payload for creating or importing a producer. The
// password is optional on create: a random one is generated when missing.
type ProducerInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	FarmName       string `json:"farm_name"`
	Location       string `json:"location"`
	ProductionType string `json:"production_type"`
	Description    string `json:"description"`
	Password       string `json:"password"`
	AccountStatus  string `json:"account_status"`
}

// ValidateProducerInput checks every field and returns the full list of
// violations so the caller sees all problems at once rather than only the
// first one.
func ValidateProducerInput(in *ProducerInput) []string {
	var errs []string

	firstName := strings.TrimSpace(in.FirstName)
	if firstName == "" {
		errs = append(errs, "Le prénom est requis")
	} else if len([]rune(firstName)) < 2 {
		errs = append(errs, "Le prénom doit contenir au moins 2 caractères")
	}

	lastName := strings.TrimSpace(in.LastName)
	if lastName == "" {
		errs = append(errs, "Le nom est requis")
	} else if len([]rune(lastName)) < 2 {
		errs = append(errs, "Le nom doit contenir au moins 2 caractères")
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, "L'email est requis")
	} else if !utils.IsValidEmail(email) {
		errs = append(errs, "L'email n'est pas valide")
	}

	farmName := strings.TrimSpace(in.FarmName)
	if farmName == "" {
		errs = append(errs, "Le nom de l'exploitation est requis")
	} else if len([]rune(farmName)) < 2 {
		errs = append(errs, "Le nom de l'exploitation doit contenir au moins 2 caractères")
	}

	if in.Password == "" {
		errs = append(errs, "Le mot de passe est requis")
	} else if len(in.Password) < 8 {
		errs = append(errs, "Le mot de passe doit contenir au moins 8 caractères")
	} else if !utils.IsStrongPassword(in.Password) {
		errs = append(errs, "Le mot de passe doit contenir des lettres et des chiffres")
	}

	return errs
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// emailExists checks whether the cooperative already has a producer with
// this email. Lookup failures are logged and treated as "does not exist" so
// a flaky read never blocks creation; the unique constraint is the real
// backstop.
func (h *ProducerHandler) emailExists(cooperativeID uuid.UUID, email string) bool {
	var count int64
	if err := h.DB.Model(&models.Producer{}).
		Where("created_by_user_id = ? AND email = ?", cooperativeID, email).
		Count(&count).Error; err != nil {
		logrus.WithError(err).Warn("producer email check failed, continuing")
		return false
	}
	return count > 0
}

// createProducerRecord performs the two writes backing a producer account:
// a login user and the producer profile row. When the second write fails
// with an error that may hide a committed insert, it re-queries by email
// with backoff before giving up.
func (h *ProducerHandler) createProducerRecord(cooperativeID uuid.UUID, in *ProducerInput) (*models.Producer, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = fmt.Sprintf("%s.%s@digicoop.sn",
			strings.ToLower(strings.TrimSpace(in.FirstName)),
			strings.ToLower(strings.TrimSpace(in.LastName)))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	status := in.AccountStatus
	if status == "" {
		status = models.ProducerStatusActive
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     utils.NormalizePhone(in.Phone),
		Profile:   models.ProfileProducer,
		CreatedBy: &cooperativeID,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	producer := models.Producer{
		CreatedByUserID: cooperativeID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           email,
		Phone:           user.Phone,
		FarmName:        strings.TrimSpace(in.FarmName),
		Location:        strings.TrimSpace(in.Location),
		ProductionType:  strings.TrimSpace(in.ProductionType),
		Description:     strings.TrimSpace(in.Description),
		AccountStatus:   status,
		Role:            models.ProfileProducer,
	}
	if err := h.DB.Create(&producer).Error; err != nil {
		if utils.IsRecoverableWriteError(err) {
			if recovered, found := h.recoverProducerByEmail(cooperativeID, email); found {
				logrus.WithField("email", email).Info("producer row found after reported write failure")
				return recovered, nil
			}
		}
		return nil, err
	}

	return &producer, nil
}

// recoverProducerByEmail re-queries the producer by natural key after a
// write that failed in a way that may still have committed the row.
func (h *ProducerHandler) recoverProducerByEmail(cooperativeID uuid.UUID, email string) (*models.Producer, bool) {
	producer, found, err := utils.RetryFind(3, 500*time.Millisecond, func() (*models.Producer, bool, error) {
		var p models.Producer
		res := h.DB.Where("created_by_user_id = ? AND email = ?", cooperativeID, email).First(&p)
		if res.Error != nil {
			if res.Error == gorm.ErrRecordNotFound {
				return nil, false, nil
			}
			return nil, false, res.Error
		}
		return &p, true, nil
	})
	if err != nil || !found {
		return nil, false
	}
	return producer, true
}

func (h *ProducerHandler) Create(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in ProducerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	generatedPassword := ""
	if in.Password == "" {
		generatedPassword = utils.GeneratePassword()
		in.Password = generatedPassword
	}

	if errs := ValidateProducerInput(&in); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	if h.emailExists(cooperativeID, strings.TrimSpace(in.Email)) {
		c.JSON(http.StatusConflict, gin.H{"error": "Un producteur avec cet email existe déjà"})
		return
	}

	producer, err := h.createProducerRecord(cooperativeID, &in)
	if err != nil {
		logrus.WithError(err).Error("producer creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
		return
	}

	if generatedPassword != "" {
		var cooperative models.User
		cooperativeName := ""
		if err := h.DB.Where("id = ?", cooperativeID).First(&cooperative).Error; err == nil {
			cooperativeName = strings.TrimSpace(cooperative.FirstName + " " + cooperative.LastName)
		}
		utils.SendProducerCredentialsEmail(producer.Email, producer.FirstName+" "+producer.LastName, cooperativeName, generatedPassword)
	}

	c.JSON(http.StatusCreated, gin.H{"producer": producer})
}

// List returns only the producers created by the calling cooperative.
func (h *ProducerHandler) List(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := h.DB.Where("created_by_user_id = ?", cooperativeID)

	if status := c.Query("status"); status != "" {
		query = query.Where("account_status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(farm_name) LIKE ?",
			like, like, like, like)
	}

	var producers []models.Producer
	if err := query.Order("created_at DESC").Find(&producers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du chargement des producteurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"producers": producers, "total": len(producers)})
}

func (h *ProducerHandler) Get(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var producer models.Producer
	if err := h.DB.Where("id = ? AND created_by_user_id = ?", c.Param("id"), cooperativeID).First(&producer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producteur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"producer": producer})
}

func (h *ProducerHandler) Update(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var producer models.Producer
	if err := h.DB.Where("id = ? AND created_by_user_id = ?", c.Param("id"), cooperativeID).First(&producer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producteur introuvable"})
		return
	}

	var req struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Phone          *string `json:"phone"`
		FarmName       *string `json:"farm_name"`
		Location       *string `json:"location"`
		ProductionType *string `json:"production_type"`
		Description    *string `json:"description"`
		AccountStatus  *string `json:"account_status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Changed name fields obey the same length rules as creation.
	var errs []string
	if req.FirstName != nil && len([]rune(strings.TrimSpace(*req.FirstName))) < 2 {
		errs = append(errs, "Le prénom doit contenir au moins 2 caractères")
	}
	if req.LastName != nil && len([]rune(strings.TrimSpace(*req.LastName))) < 2 {
		errs = append(errs, "Le nom doit contenir au moins 2 caractères")
	}
	if req.FarmName != nil && len([]rune(strings.TrimSpace(*req.FarmName))) < 2 {
		errs = append(errs, "Le nom de l'exploitation doit contenir au moins 2 caractères")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		updates["phone"] = utils.NormalizePhone(*req.Phone)
	}
	if req.FarmName != nil {
		updates["farm_name"] = strings.TrimSpace(*req.FarmName)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.ProductionType != nil {
		updates["production_type"] = strings.TrimSpace(*req.ProductionType)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.AccountStatus != nil {
		if !models.IsValidProducerStatus(*req.AccountStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
			return
		}
		updates["account_status"] = *req.AccountStatus
	}

	if len(updates) > 0 {
		if err := h.DB.Model(&producer).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
			return
		}
	}

	h.DB.Where("id = ?", producer.ID).First(&producer)
	c.JSON(http.StatusOK, gin.H{"producer": producer})
}

func (h *ProducerHandler) UpdateStatus(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.IsValidProducerStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	res := h.DB.Model(&models.Producer{}).
		Where("id = ? AND created_by_user_id = ?", c.Param("id"), cooperativeID).
		Update("account_status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(res.Error)})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producteur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour"})
}

// Deactivate marks the producer inactive instead of deleting the row, so
// its products and history stay intact.
func (h *ProducerHandler) Deactivate(c *gin.Context) {
	cooperativeID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	res := h.DB.Model(&models.Producer{}).
		Where("id = ? AND created_by_user_id = ?", c.Param("id"), cooperativeID).
		Update("account_status", models.ProducerStatusInactive)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(res.Error)})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producteur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producteur désactivé"})
}
