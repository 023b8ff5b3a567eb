package imagestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPClient is the real implementation backed by the Django image API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient builds a client from IMAGE_API_URL (e.g.
// "https://digicoop-file-manager.onrender.com/api/v1"). The trailing slash is
// normalized away.
func NewHTTPClient() *HTTPClient {
	base := os.Getenv("IMAGE_API_URL")
	if base == "" {
		base = "http://localhost:8000/api/v1"
		logrus.Warn("IMAGE_API_URL not set, defaulting to http://localhost:8000/api/v1")
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(base, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(fieldName, fileName, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fieldName), quoteEscaper.Replace(fileName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return h
}

// Upload posts the files as multipart/form-data. The API rejects requests
// that carry variants without a main image, so callers are expected to
// promote a variant first.
func (c *HTTPClient) Upload(userID, productID string, main *File, variants []File) (*UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("user_id", userID); err != nil {
		return nil, err
	}
	if err := writer.WriteField("product_id", productID); err != nil {
		return nil, err
	}

	if main != nil {
		part, err := writer.CreatePart(fileHeader("main_image", main.Name, main.ContentType))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, main.Reader); err != nil {
			return nil, err
		}
	}

	for _, v := range variants {
		part, err := writer.CreatePart(fileHeader("variant_images", v.Name, v.ContentType))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, v.Reader); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/images/", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image upload failed: status %d: %s", resp.StatusCode, string(payload))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("image upload failed: invalid response: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) List(userID, productID string) ([]Image, error) {
	q := url.Values{}
	if userID != "" {
		q.Set("user_id", userID)
	}
	if productID != "" {
		q.Set("product_id", productID)
	}

	resp, err := c.client.Get(c.baseURL + "/images/?" + q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image list failed: status %d", resp.StatusCode)
	}

	var images []Image
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return nil, err
	}
	return images, nil
}

func (c *HTTPClient) Delete(imageID int) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/images/%d/", c.baseURL, imageID), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image delete failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) SetAsMain(imageID int) (*Image, error) {
	resp, err := c.client.Post(fmt.Sprintf("%s/images/%d/set_as_main/", c.baseURL, imageID), "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("set main image failed: status %d", resp.StatusCode)
	}

	var image Image
	if err := json.NewDecoder(resp.Body).Decode(&image); err != nil {
		return nil, err
	}
	return &image, nil
}
