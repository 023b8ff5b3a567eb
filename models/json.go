package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB is a free-form map persisted as a jsonb column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, err := toBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, j)
}

// ImageRef is a denormalized copy of an image record owned by the external
// image service. The is_main flag mirrors the service's state and is never
// computed locally.
type ImageRef struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	IsMain    bool   `json:"is_main"`
	CreatedAt string `json:"created_at,omitempty"`
}

// MainImage persists a single ImageRef as jsonb; a nil ID means no image.
type MainImage struct {
	ImageRef
	Valid bool `json:"-"`
}

func (m MainImage) Value() (driver.Value, error) {
	if !m.Valid {
		return nil, nil
	}
	return json.Marshal(m.ImageRef)
}

func (m *MainImage) Scan(value interface{}) error {
	if value == nil {
		*m = MainImage{}
		return nil
	}
	bytes, err := toBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*m = MainImage{}
		return nil
	}
	if err := json.Unmarshal(bytes, &m.ImageRef); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

func (m MainImage) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.ImageRef)
}

func (m *MainImage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MainImage{}
		return nil
	}
	if err := json.Unmarshal(data, &m.ImageRef); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// ImageRefList persists a slice of ImageRef as jsonb.
type ImageRefList []ImageRef

func (l ImageRefList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ImageRefList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, err := toBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		*l = nil
		return nil
	}
	return json.Unmarshal(bytes, l)
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported jsonb source type")
	}
}
