package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	policyDomain "insurance-brokerage/internal/domain/policy"
)

type PolicyRepository struct{ db *gorm.DB }

func NewPolicyRepository(db *gorm.DB) *PolicyRepository { return &PolicyRepository{db: db} }

func (r *PolicyRepository) Create(ctx context.Context, p *policyDomain.Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PolicyRepository) Save(ctx context.Context, p *policyDomain.Policy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PolicyRepository) GetByPolicyID(ctx context.Context, policyID string) (*policyDomain.Policy, error) {
	var out policyDomain.Policy
	res := r.db.WithContext(ctx).Where("policy_id = ?", policyID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, policyDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *PolicyRepository) GetByPolicyIDForUpdate(ctx context.Context, policyID string) (*policyDomain.Policy, error) {
	var out policyDomain.Policy
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("policy_id = ?", policyID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, policyDomain.ErrNotFound
	}
	return &out, res.Error
}

// Delete soft-deletes the policy and removes its rejection detail. Call it inside a
// transaction so both go together.
func (r *PolicyRepository) Delete(ctx context.Context, p *policyDomain.Policy) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("policy_id = ?", p.ID).Delete(&policyDomain.RejectionDetail{}).Error; err != nil {
		return err
	}
	return db.Delete(p).Error
}
