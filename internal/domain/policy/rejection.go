package policy

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var ErrRejectionNotFound = errors.New("rejection detail not found")

type RejectionReason string

const (
	ReasonIncompleteDocuments      RejectionReason = "incomplete_documents"
	ReasonIneligibleAge            RejectionReason = "ineligible_age"
	ReasonCoverageOutOfRange       RejectionReason = "coverage_out_of_range"
	ReasonBeneficiaryInconsistency RejectionReason = "beneficiary_inconsistency"
	ReasonOther                    RejectionReason = "other"
)

func (r RejectionReason) Valid() bool {
	switch r {
	case ReasonIncompleteDocuments, ReasonIneligibleAge, ReasonCoverageOutOfRange,
		ReasonBeneficiaryInconsistency, ReasonOther:
		return true
	}
	return false
}

// RejectionDetail is written once when a pending policy is rejected; read-only afterwards.
type RejectionDetail struct {
	ID         uint64                               `gorm:"primaryKey;column:id" json:"-"`
	PolicyID   uint64                               `gorm:"column:policy_id;not null;uniqueIndex:ux_rejections_policy" json:"-"`
	Reasons    datatypes.JSONSlice[RejectionReason] `json:"reasons"`
	Comments   datatypes.JSONMap                    `json:"comments"`
	RejectedBy string                               `gorm:"size:32" json:"rejected_by"`
	RejectedAt time.Time                            `json:"rejected_at"`
	CreatedAt  time.Time                            `gorm:"autoCreateTime" json:"-"`
}

func (RejectionDetail) TableName() string { return "policy_rejections" }
