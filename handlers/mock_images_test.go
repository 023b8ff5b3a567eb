package handlers

import (
	"errors"
	"sync"

	"digicoop-backend/imagestore"
)

var errTest = errors.New("simulated failure")

// mockImages is a test double for the image service client. Behavior is
// overridable per test through the Fn fields; defaults mimic a healthy
// service that numbers images sequentially.
type mockImages struct {
	UploadFn    func(userID, productID string, main *imagestore.File, variants []imagestore.File) (*imagestore.UploadResult, error)
	ListFn      func(userID, productID string) ([]imagestore.Image, error)
	DeleteFn    func(imageID int) error
	SetAsMainFn func(imageID int) (*imagestore.Image, error)

	mu          sync.Mutex
	nextID      int
	DeleteCalls []int
	UploadCalls int
}

func newMockImages() *mockImages {
	return &mockImages{nextID: 1, DeleteCalls: []int{}}
}

func (m *mockImages) Upload(userID, productID string, main *imagestore.File, variants []imagestore.File) (*imagestore.UploadResult, error) {
	m.mu.Lock()
	m.UploadCalls++
	m.mu.Unlock()
	if m.UploadFn != nil {
		return m.UploadFn(userID, productID, main, variants)
	}

	result := &imagestore.UploadResult{}
	if main != nil {
		img := m.newImage(userID, productID, true)
		result.MainImage = &img
	}
	for range variants {
		result.VariantImages = append(result.VariantImages, m.newImage(userID, productID, false))
	}
	return result, nil
}

func (m *mockImages) List(userID, productID string) ([]imagestore.Image, error) {
	if m.ListFn != nil {
		return m.ListFn(userID, productID)
	}
	return nil, nil
}

func (m *mockImages) Delete(imageID int) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, imageID)
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(imageID)
	}
	return nil
}

func (m *mockImages) SetAsMain(imageID int) (*imagestore.Image, error) {
	if m.SetAsMainFn != nil {
		return m.SetAsMainFn(imageID)
	}
	img := imagestore.Image{ID: imageID, URL: "https://images.test/promoted.jpg", IsMain: true}
	return &img, nil
}

func (m *mockImages) newImage(userID, productID string, isMain bool) imagestore.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return imagestore.Image{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		URL:       "https://images.test/" + productID + "/img.jpg",
		IsMain:    isMain,
		CreatedAt: "2025-01-01T00:00:00Z",
	}
}
