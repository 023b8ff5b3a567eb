// Package imagestore talks to the external image microservice. The service
// owns every image record (including the is_main flag); product rows only
// hold denormalized copies of what this API returns.
package imagestore

import "io"

// Image is an image record as returned by the service.
type Image struct {
	ID        int    `json:"id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	URL       string `json:"url"`
	IsMain    bool   `json:"is_main"`
	CreatedAt string `json:"created_at"`
}

// UploadResult is the response shape of the multipart upload endpoint.
type UploadResult struct {
	MainImage     *Image  `json:"main_image"`
	VariantImages []Image `json:"variant_images"`
}

// File is one file to upload.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// Client abstracts the image service for dependency injection and testing.
type Client interface {
	Upload(userID, productID string, main *File, variants []File) (*UploadResult, error)
	List(userID, productID string) ([]Image, error)
	Delete(imageID int) error
	SetAsMain(imageID int) (*Image, error)
}
