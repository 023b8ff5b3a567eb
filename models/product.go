package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product kinds.
const (
	KindAgricultural = "agricultural_product"
	KindService      = "service"
	KindEquipment    = "equipment"
)

// Product lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Availability statuses.
const (
	AvailabilityAvailable  = "disponible"
	AvailabilityOutOfStock = "rupture"
	AvailabilityLimited    = "limite"
	AvailabilityPreorder   = "precommande"
)

// Product is the polymorphic marketplace listing. The agricultural fields
// (category, quality, weights, stock) are first-class columns; service and
// equipment extras live in SpecificFields. MainImage and VariantImages are
// denormalized copies of records owned by the external image service.
type Product struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductType        string       `gorm:"not null;index;default:agricultural_product" json:"product_type"`
	ProductName        string       `gorm:"not null" json:"product_name"`
	Description        string       `json:"description"`
	CreatedBy          uuid.UUID    `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedByProfile   string       `gorm:"not null" json:"created_by_profile"` // personal, cooperative
	AssignedProducerID *uuid.UUID   `gorm:"type:uuid;index" json:"assigned_producer_id,omitempty"`

	RegularPrice       float64      `gorm:"not null" json:"regular_price"`
	PriceUnit          string       `json:"price_unit"`
	IsPromotionEnabled bool         `gorm:"default:false" json:"is_promotion_enabled"`
	PromoPrice         *float64     `json:"promo_price,omitempty"`
	PromoStartDate     *time.Time   `json:"promo_start_date,omitempty"`
	PromoEndDate       *time.Time   `json:"promo_end_date,omitempty"`
	DiscountPercentage *int         `json:"discount_percentage,omitempty"`

	AvailabilityStatus string       `gorm:"default:disponible" json:"availability_status"`
	Status             string       `gorm:"default:draft;index" json:"status"`

	// Agricultural product columns.
	Category      string     `json:"category,omitempty"`
	Quality       string     `json:"quality,omitempty"`
	TotalWeight   float64    `json:"total_weight,omitempty"`
	UnitWeight    float64    `json:"unit_weight,omitempty"`
	Unit          string     `json:"unit,omitempty"`
	StockQuantity int        `gorm:"default:0" json:"stock_quantity"`
	TotalQuantity int        `gorm:"default:0" json:"total_quantity"`
	HarvestDate   *time.Time `json:"harvest_date,omitempty"`

	// Service/equipment extras keyed by the catalog field names.
	SpecificFields JSONB `gorm:"type:jsonb" json:"specific_fields,omitempty"`

	MainImage     MainImage    `gorm:"type:jsonb" json:"main_image,omitempty"`
	VariantImages ImageRefList `gorm:"type:jsonb" json:"variant_images,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Merged on demand by the producer-info lookup; never persisted.
	ProducerInfo *Producer `gorm:"-" json:"producer_info,omitempty"`
}

// BeforeCreate runs after BeforeSave has derived the quantities, so a new
// agricultural product with no stock value starts at full stock. Zero stock
// on an existing product means sold out and is persisted as-is.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ProductType == KindAgricultural && p.StockQuantity == 0 {
		p.StockQuantity = p.TotalQuantity
	}
	return nil
}

// BeforeSave recomputes every derived field so callers are never trusted to
// supply a correct discount or a stock level above the total quantity.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.RecalculateDerived()
	return nil
}

// RecalculateDerived applies the quantity and discount derivations:
// total_quantity = floor(total_weight/unit_weight) clamped to at least 1,
// stock clamped into [0, total_quantity], and the discount percentage
// recomputed whenever the promotion block is active.
func (p *Product) RecalculateDerived() {
	if p.ProductType == KindAgricultural && p.TotalWeight > 0 && p.UnitWeight > 0 {
		p.TotalQuantity = int(math.Floor(p.TotalWeight / p.UnitWeight))
		if p.TotalQuantity == 0 {
			p.TotalQuantity = 1
		}
	}
	if p.ProductType == KindAgricultural {
		if p.StockQuantity < 0 {
			p.StockQuantity = 0
		}
		if p.StockQuantity > p.TotalQuantity {
			p.StockQuantity = p.TotalQuantity
		}
	}

	if p.IsPromotionEnabled && p.PromoPrice != nil && *p.PromoPrice > 0 && p.RegularPrice > 0 {
		pct := int(math.Round((p.RegularPrice - *p.PromoPrice) / p.RegularPrice * 100))
		p.DiscountPercentage = &pct
	} else {
		p.DiscountPercentage = nil
	}
}
