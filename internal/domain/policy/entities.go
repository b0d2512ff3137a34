package policy

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("policy not found")
	ErrInvalidTransition = errors.New("policy not in a state that allows this change")
	ErrForbidden         = errors.New("actor not allowed to perform this action")
	ErrMissingIdentity   = errors.New("authenticated actor required")
	ErrAlreadyRejected   = errors.New("policy already rejected")
)

type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

// Multiplier converts a monthly premium into the amount charged per period.
// Unknown frequencies return 0.
func (f Frequency) Multiplier() int64 {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencyAnnually:
		return 12
	}
	return 0
}

func (f Frequency) Valid() bool { return f.Multiplier() > 0 }

type Relationship string

const (
	RelationshipSpouse  Relationship = "spouse"
	RelationshipChild   Relationship = "child"
	RelationshipParent  Relationship = "parent"
	RelationshipSibling Relationship = "sibling"
	RelationshipOther   Relationship = "other"
)

func (r Relationship) Valid() bool {
	switch r {
	case RelationshipSpouse, RelationshipChild, RelationshipParent, RelationshipSibling, RelationshipOther:
		return true
	}
	return false
}

type Beneficiary struct {
	Name              string       `json:"name"`
	Relationship      Relationship `json:"relationship"`
	OtherRelationship string       `json:"other_relationship,omitempty"`
	Percentage        float64      `json:"percentage"`
}

type Dependent struct {
	Name              string       `json:"name"`
	BirthDate         string       `json:"birth_date"` // YYYY-MM-DD
	Relationship      Relationship `json:"relationship"`
	OtherRelationship string       `json:"other_relationship,omitempty"`
}

// Policy is an application for one product by one client. Life products fill the
// coverage/beneficiary columns, health products the deductible/dependent columns.
type Policy struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	PolicyID         string    `gorm:"size:32;uniqueIndex:ux_policies_policy_id" json:"policy_id"`
	PolicyNumber     string    `gorm:"size:32;uniqueIndex:ux_policies_policy_number" json:"policy_number"`
	ClientID         string    `gorm:"size:32;index:idx_policies_client" json:"client_id"`
	ProductID        string    `gorm:"size:32;index:idx_policies_product" json:"product_id"`
	AgentID          *string   `gorm:"size:32;index:idx_policies_agent" json:"agent_id,omitempty"`
	StartDate        string    `gorm:"size:10" json:"start_date"`
	EndDate          string    `gorm:"size:10" json:"end_date"`
	PremiumAmount    float64   `gorm:"type:decimal(12,2)" json:"premium_amount"`
	PaymentFrequency Frequency `gorm:"size:16" json:"payment_frequency"`
	Status           Status    `gorm:"size:24;index:idx_policies_status;default:'pending'" json:"status"`
	ContractDetails  string    `gorm:"type:text" json:"contract_details"`

	CoverageAmount   float64                          `gorm:"type:decimal(14,2)" json:"coverage_amount,omitempty"`
	ADDIncluded      bool                             `gorm:"column:ad_d_included" json:"ad_d_included,omitempty"`
	ADDCoverage      float64                          `gorm:"column:ad_d_coverage;type:decimal(14,2)" json:"ad_d_coverage,omitempty"`
	Beneficiaries    datatypes.JSONSlice[Beneficiary] `json:"beneficiaries,omitempty"`
	NumBeneficiaries int                              `json:"num_beneficiaries,omitempty"`
	AgeAtInscription int                              `json:"age_at_inscription,omitempty"`

	Deductible        float64                        `gorm:"type:decimal(12,2)" json:"deductible,omitempty"`
	Coinsurance       float64                        `gorm:"type:decimal(5,2)" json:"coinsurance,omitempty"`
	MaxAnnual         float64                        `gorm:"type:decimal(14,2)" json:"max_annual,omitempty"`
	DentalPremium     bool                           `json:"dental_premium,omitempty"`
	VisionPremium     bool                           `json:"vision_premium,omitempty"`
	DependentsDetails datatypes.JSONSlice[Dependent] `json:"dependents_details,omitempty"`
	NumDependents     int                            `json:"num_dependents,omitempty"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Policy) TableName() string { return "policies" }
