package handlers

import (
	"net/http"
	"strconv"

	"digicoop-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UploadImages adds images to an existing product and persists the
// denormalized refs the image service returns.
func (h *ProductHandler) UploadImages(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	if err := h.uploadFormImages(c, product); err != nil {
		logrus.WithError(err).Error("product image upload failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'enregistrement des images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// syncImages re-fetches the product's full image list from the image
// service and rewrites the denormalized fields. The is_main flag comes
// straight from the service; it is never computed here.
func (h *ProductHandler) syncImages(product *models.Product) error {
	images, err := h.Images.List(product.CreatedBy.String(), product.ID.String())
	if err != nil {
		return err
	}

	product.MainImage = models.MainImage{}
	product.VariantImages = nil
	for _, img := range images {
		ref := models.ImageRef{
			ID:        img.ID,
			URL:       img.URL,
			IsMain:    img.IsMain,
			CreatedAt: img.CreatedAt,
		}
		if img.IsMain {
			product.MainImage = models.MainImage{ImageRef: ref, Valid: true}
		} else {
			product.VariantImages = append(product.VariantImages, ref)
		}
	}

	return h.DB.Save(product).Error
}

// SetMainImage promotes an image on the image service, then re-syncs every
// image field from the service's view of the product.
func (h *ProductHandler) SetMainImage(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'image invalide"})
		return
	}

	if _, err := h.Images.SetAsMain(imageID); err != nil {
		logrus.WithError(err).WithField("image_id", imageID).Error("set main image failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la mise à jour de l'image principale"})
		return
	}

	if err := h.syncImages(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la synchronisation des images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// DeleteImage removes one image from the external store and from the
// product's denormalized refs.
func (h *ProductHandler) DeleteImage(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	imageID, err := strconv.Atoi(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant d'image invalide"})
		return
	}

	found := false
	if product.MainImage.Valid && product.MainImage.ID == imageID {
		found = true
		product.MainImage = models.MainImage{}
	} else {
		remaining := product.VariantImages[:0]
		for _, img := range product.VariantImages {
			if img.ID == imageID {
				found = true
				continue
			}
			remaining = append(remaining, img)
		}
		product.VariantImages = remaining
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable"})
		return
	}

	if err := h.Images.Delete(imageID); err != nil {
		logrus.WithError(err).WithField("image_id", imageID).Warn("failed to delete image from store")
	}

	if err := h.DB.Save(product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// SyncImages reconciles the product's image fields with the image service.
func (h *ProductHandler) SyncImages(c *gin.Context) {
	product, ok := h.ownedProduct(c)
	if !ok {
		return
	}

	if err := h.syncImages(product); err != nil {
		logrus.WithError(err).Error("image sync failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la synchronisation des images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
