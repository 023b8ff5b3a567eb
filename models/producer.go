package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Producer account statuses.
const (
	ProducerStatusActive   = "active"
	ProducerStatusInactive = "inactive"
	ProducerStatusPending  = "pending"
)

// IsValidProducerStatus reports whether s is a known account status.
func IsValidProducerStatus(s string) bool {
	switch s {
	case ProducerStatusActive, ProducerStatusInactive, ProducerStatusPending:
		return true
	}
	return false
}

// Producer is an agricultural account created and owned by exactly one
// cooperative. Producers are never hard-deleted; deactivation sets
// account_status to "inactive". CreatedByUserID never changes after creation.
type Producer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `gorm:"not null" json:"last_name"`
	Email           string    `gorm:"not null;index" json:"email"`
	Phone           string    `json:"phone,omitempty"`
	FarmName        string    `gorm:"not null" json:"farm_name"`
	Location        string    `json:"location,omitempty"`
	ProductionType  string    `json:"production_type,omitempty"`
	Description     string    `json:"description,omitempty"`
	AccountStatus   string    `gorm:"default:active" json:"account_status"`
	Role            string    `gorm:"default:producer" json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Producer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
