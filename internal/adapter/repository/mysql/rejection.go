package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	policyDomain "insurance-brokerage/internal/domain/policy"
)

type RejectionRepository struct{ db *gorm.DB }

func NewRejectionRepository(db *gorm.DB) *RejectionRepository {
	return &RejectionRepository{db: db}
}

func (r *RejectionRepository) Create(ctx context.Context, rd *policyDomain.RejectionDetail) error {
	return r.db.WithContext(ctx).Create(rd).Error
}

func (r *RejectionRepository) GetByPolicyID(ctx context.Context, policyNumericID uint64) (*policyDomain.RejectionDetail, error) {
	var out policyDomain.RejectionDetail
	res := r.db.WithContext(ctx).Where("policy_id = ?", policyNumericID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, policyDomain.ErrRejectionNotFound
	}
	return &out, res.Error
}
