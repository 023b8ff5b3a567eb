package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"digicoop-backend/catalog"
	"digicoop-backend/imagestore"
	"digicoop-backend/models"
	"digicoop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB     *gorm.DB
	Images imagestore.Client
}

// GetProductTypes exposes the static kind registry so clients render forms
// from the same schema the server validates against.
func (h *ProductHandler) GetProductTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"product_types": catalog.ProductTypes()})
}

// validateProduct collects every rule violation for the product's kind.
// Draft saves and publishes run the exact same checks; only the resulting
// status differs.
func (h *ProductHandler) validateProduct(p *models.Product) []string {
	var errs []string

	if strings.TrimSpace(p.ProductName) == "" {
		errs = append(errs, "Le nom du produit est requis")
	}
	if p.RegularPrice <= 0 {
		errs = append(errs, "Le prix doit être supérieur à 0")
	}
	if strings.TrimSpace(p.PriceUnit) == "" {
		errs = append(errs, "L'unité de prix est requise")
	}

	switch p.ProductType {
	case models.KindAgricultural:
		if strings.TrimSpace(p.Category) == "" {
			errs = append(errs, "La catégorie est requise")
		}
		if strings.TrimSpace(p.Quality) == "" {
			errs = append(errs, "La qualité est requise")
		}
		if strings.TrimSpace(p.Unit) == "" {
			errs = append(errs, "L'unité est requise")
		}
		if p.TotalWeight <= 0 {
			errs = append(errs, "Le poids total doit être supérieur à 0")
		}
		if p.UnitWeight <= 0 {
			errs = append(errs, "Le poids unitaire doit être supérieur à 0")
		}
	case models.KindService, models.KindEquipment:
		if strings.TrimSpace(p.Description) == "" {
			errs = append(errs, "La description est requise")
		}
		for _, name := range catalog.RequiredFields(p.ProductType) {
			value, ok := p.SpecificFields[name]
			if !ok || value == nil || fmt.Sprintf("%v", value) == "" {
				errs = append(errs, fmt.Sprintf("Le champ %s est requis", name))
			}
		}
	default:
		errs = append(errs, "Type de produit invalide")
	}

	if p.CreatedByProfile == models.ProfileCooperative && p.AssignedProducerID == nil {
		errs = append(errs, "Un producteur doit être assigné au produit")
	}

	if p.IsPromotionEnabled {
		if p.PromoPrice == nil || *p.PromoPrice <= 0 {
			errs = append(errs, "Le prix promotionnel doit être supérieur à 0")
		} else if *p.PromoPrice >= p.RegularPrice {
			errs = append(errs, "Le prix promotionnel doit être inférieur au prix régulier")
		}
		if p.PromoStartDate == nil || p.PromoEndDate == nil {
			errs = append(errs, "Les dates de début et de fin de promotion sont requises")
		} else if p.PromoEndDate.Before(*p.PromoStartDate) {
			errs = append(errs, "La date de fin de promotion doit être après la date de début")
		}
	}

	return errs
}

// checkAssignedProducer verifies the assigned producer exists and belongs
// to the calling cooperative.
func (h *ProductHandler) checkAssignedProducer(callerUID uuid.UUID, producerID uuid.UUID) error {
	var count int64
	if err := h.DB.Model(&models.Producer{}).
		Where("id = ? AND created_by_user_id = ?", producerID, callerUID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("producteur assigné introuvable")
	}
	return nil
}

func parseProductForm(c *gin.Context, p *models.Product) error {
	if productType := c.PostForm("product_type"); productType != "" {
		p.ProductType = productType
	}
	if p.ProductType == "" {
		p.ProductType = models.KindAgricultural
	}
	p.ProductName = c.PostForm("product_name")
	p.Description = c.PostForm("description")
	p.RegularPrice, _ = strconv.ParseFloat(c.PostForm("regular_price"), 64)
	p.PriceUnit = c.PostForm("price_unit")
	p.AvailabilityStatus = c.PostForm("availability_status")
	if p.AvailabilityStatus == "" {
		p.AvailabilityStatus = models.AvailabilityAvailable
	}

	p.IsPromotionEnabled = c.PostForm("is_promotion_enabled") == "true"
	if promoPrice := c.PostForm("promo_price"); promoPrice != "" {
		price, _ := strconv.ParseFloat(promoPrice, 64)
		p.PromoPrice = &price
	}
	if promoStart := c.PostForm("promo_start_date"); promoStart != "" {
		if parsed, err := time.Parse("2006-01-02", promoStart); err == nil {
			p.PromoStartDate = &parsed
		} else {
			logrus.WithField("value", promoStart).Warn("unparseable promo_start_date")
		}
	}
	if promoEnd := c.PostForm("promo_end_date"); promoEnd != "" {
		if parsed, err := time.Parse("2006-01-02", promoEnd); err == nil {
			p.PromoEndDate = &parsed
		} else {
			logrus.WithField("value", promoEnd).Warn("unparseable promo_end_date")
		}
	}

	if producerID := c.PostForm("assigned_producer_id"); producerID != "" {
		parsed, err := uuid.Parse(producerID)
		if err != nil {
			return fmt.Errorf("identifiant de producteur invalide")
		}
		p.AssignedProducerID = &parsed
	}

	// Agricultural columns.
	p.Category = c.PostForm("category")
	p.Quality = c.PostForm("quality")
	p.Unit = c.PostForm("unit")
	p.TotalWeight, _ = strconv.ParseFloat(c.PostForm("total_weight"), 64)
	p.UnitWeight, _ = strconv.ParseFloat(c.PostForm("unit_weight"), 64)
	p.StockQuantity, _ = strconv.Atoi(c.PostForm("stock_quantity"))
	if harvest := c.PostForm("harvest_date"); harvest != "" {
		if parsed, err := time.Parse("2006-01-02", harvest); err == nil {
			p.HarvestDate = &parsed
		}
	}

	// Service/equipment extras arrive as a JSON object.
	if specific := c.PostForm("specific_fields"); specific != "" {
		fields := models.JSONB{}
		if err := json.Unmarshal([]byte(specific), &fields); err != nil {
			return fmt.Errorf("specific_fields invalide")
		}
		p.SpecificFields = fields
	}

	return nil
}

// uploadFormImages pushes the form's image files to the image service and
// writes the returned records onto the product. The store rejects uploads
// with no main image, so when only variants are supplied the first variant
// file is promoted and submitted as the main image.
func (h *ProductHandler) uploadFormImages(c *gin.Context, p *models.Product) error {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	var main *imagestore.File
	var variants []imagestore.File

	if headers := form.File["main_image"]; len(headers) > 0 {
		if err := utils.ValidateFileUpload(headers[0]); err != nil {
			return err
		}
		f, err := headers[0].Open()
		if err != nil {
			return err
		}
		defer f.Close()
		main = &imagestore.File{
			Name:        headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Reader:      f,
		}
	}

	for _, fh := range form.File["variant_images"] {
		if err := utils.ValidateFileUpload(fh); err != nil {
			return err
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		variants = append(variants, imagestore.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}

	if main == nil && len(variants) == 0 {
		return nil
	}

	if main == nil && !p.MainImage.Valid {
		// The upload endpoint requires a main image; promote the first
		// variant file rather than failing the whole upload.
		main = &variants[0]
		variants = variants[1:]
	}

	result, err := h.Images.Upload(p.CreatedBy.String(), p.ID.String(), main, variants)
	if err != nil {
		return err
	}

	applyUploadResult(p, result)
	return nil
}

func applyUploadResult(p *models.Product, result *imagestore.UploadResult) {
	if result.MainImage != nil {
		p.MainImage = models.MainImage{
			ImageRef: models.ImageRef{
				ID:        result.MainImage.ID,
				URL:       result.MainImage.URL,
				IsMain:    result.MainImage.IsMain,
				CreatedAt: result.MainImage.CreatedAt,
			},
			Valid: true,
		}
	}
	for _, img := range result.VariantImages {
		p.VariantImages = append(p.VariantImages, models.ImageRef{
			ID:        img.ID,
			URL:       img.URL,
			IsMain:    img.IsMain,
			CreatedAt: img.CreatedAt,
		})
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	profile, _ := c.Get("user_profile")
	profileStr, _ := profile.(string)

	var product models.Product
	product.ID = uuid.New()
	product.CreatedBy = callerUID
	if profileStr == models.ProfileCooperative {
		product.CreatedByProfile = models.ProfileCooperative
	} else {
		product.CreatedByProfile = models.ProfilePersonal
	}

	if err := parseProductForm(c, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A create lands in draft unless the caller publishes immediately.
	product.Status = models.StatusDraft
	if c.PostForm("status") == models.StatusPublished {
		product.Status = models.StatusPublished
	}

	if errs := h.validateProduct(&product); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	if product.AssignedProducerID != nil {
		if err := h.checkAssignedProducer(callerUID, *product.AssignedProducerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// Images go up first so the record is written once, with its refs.
	if err := h.uploadFormImages(c, &product); err != nil {
		logrus.WithError(err).Error("product image upload failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Create(&product).Error; err != nil {
		logrus.WithError(err).Error("product creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
		return
	}

	h.DB.First(&product, "id = ?", product.ID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

// List returns the caller's products with optional kind, status, category
// and text filters.
func (h *ProductHandler) List(c *gin.Context) {
	callerUID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := h.DB.Model(&models.Product{}).Where("created_by = ?", callerUID)

	if productType := c.Query("product_type"); productType != "" {
		query = query.Where("product_type = ?", productType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(product_name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du chargement des produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// ownedProduct loads a product only when it belongs to the caller.
func (h *ProductHandler) ownedProduct(c *gin.Context) (*models.Product, bool) {
	callerUID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var product models.Product
	if err := h.DB.Where("id = ? AND created_by = ?", c.Param("id"), callerUID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return nil, false
	}
	return &product, true
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	// Merge producer details when one is assigned; lookup failures leave
	// the field empty rather than failing the read.
	if product.AssignedProducerID != nil {
		var producer models.Producer
		if err := h.DB.Where("id = ?", *product.AssignedProducerID).First(&producer).Error; err == nil {
			product.ProducerInfo = &producer
		}
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}
	callerUID, _ := callerID(c)

	if err := parseProductForm(c, product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if status := c.PostForm("status"); status == models.StatusDraft || status == models.StatusPublished {
		product.Status = status
	}

	if errs := h.validateProduct(product); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
		return
	}

	if product.AssignedProducerID != nil {
		if err := h.checkAssignedProducer(callerUID, *product.AssignedProducerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.uploadFormImages(c, product); err != nil {
		logrus.WithError(err).Error("product image upload failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// setStatus applies an explicit lifecycle transition.
func (h *ProductHandler) setStatus(c *gin.Context, status string, revalidate bool) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	if revalidate {
		if errs := h.validateProduct(product); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(errs, ", ")})
			return
		}
	}

	product.Status = status
	if err := h.DB.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *ProductHandler) Publish(c *gin.Context) {
	h.setStatus(c, models.StatusPublished, true)
}

func (h *ProductHandler) Unpublish(c *gin.Context) {
	h.setStatus(c, models.StatusDraft, false)
}

func (h *ProductHandler) Archive(c *gin.Context) {
	h.setStatus(c, models.StatusArchived, false)
}

// Delete removes the product's images from the external store first, one
// by one and best-effort, then deletes the record. A failed image delete is
// logged and skipped so an unreachable image service never blocks removal.
func (h *ProductHandler) Delete(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	if product.MainImage.Valid {
		if err := h.Images.Delete(product.MainImage.ID); err != nil {
			logrus.WithError(err).WithField("image_id", product.MainImage.ID).Warn("failed to delete main image")
		}
	}
	for _, img := range product.VariantImages {
		if err := h.Images.Delete(img.ID); err != nil {
			logrus.WithError(err).WithField("image_id", img.ID).Warn("failed to delete variant image")
		}
	}

	if err := h.DB.Delete(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.UserErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Produit supprimé"})
}
