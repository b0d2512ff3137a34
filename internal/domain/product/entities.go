package product

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("insurance product not found")
	ErrInactive = errors.New("insurance product is not active")
)

type Type string

const (
	TypeLife   Type = "life"
	TypeHealth Type = "health"
	TypeOther  Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLife, TypeHealth, TypeOther:
		return true
	}
	return false
}

// Product is an insurance offering template. Policies reference it by ProductID.
type Product struct {
	ID                    uint64         `gorm:"primaryKey;column:id" json:"-"`
	ProductID             string         `gorm:"size:32;uniqueIndex:ux_products_product_id" json:"product_id"`
	Name                  string         `gorm:"size:120;not null" json:"name"`
	Type                  Type           `gorm:"size:16;not null" json:"type"`
	RuleCode              string         `gorm:"size:32;index" json:"rule_code"` // rules.Code backing the policy form
	BasePremium           float64        `gorm:"type:decimal(12,2)" json:"base_premium"`
	Currency              string         `gorm:"size:3;default:'USD'" json:"currency"`
	DurationMonths        int            `json:"duration_months"`
	FixedPaymentFrequency *string        `gorm:"size:16" json:"fixed_payment_frequency,omitempty"`
	CoverageDetails       datatypes.JSON `json:"coverage_details"`
	AdminNotes            string         `gorm:"type:text" json:"admin_notes"`
	IsActive              bool           `gorm:"index" json:"is_active"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "insurance_products" }
