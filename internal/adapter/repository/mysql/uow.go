package mysql

import (
	"context"

	"gorm.io/gorm"

	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Policies:   &PolicyRepository{db: tx},
		Rejections: &RejectionRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinPolicyTx(ctx context.Context, policyID string, fn func(r uow.Repos, p *policy.Policy) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the policy row up-front to serialise lifecycle changes
		p, err := r.Policies.GetByPolicyIDForUpdate(ctx, policyID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
