package policymock

import (
	"context"

	domain "insurance-brokerage/internal/domain/policy"
)

var (
	_ domain.Repository          = (*Repo)(nil)
	_ domain.RejectionRepository = (*RejectionRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to success; reads default to domain.ErrNotFound.
type Repo struct {
	CreateFn                 func(ctx context.Context, p *domain.Policy) error
	SaveFn                   func(ctx context.Context, p *domain.Policy) error
	GetByPolicyIDFn          func(ctx context.Context, policyID string) (*domain.Policy, error)
	GetByPolicyIDForUpdateFn func(ctx context.Context, policyID string) (*domain.Policy, error)
	DeleteFn                 func(ctx context.Context, p *domain.Policy) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Policy) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Policy) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPolicyID(ctx context.Context, policyID string) (*domain.Policy, error) {
	if m.GetByPolicyIDFn != nil {
		return m.GetByPolicyIDFn(ctx, policyID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByPolicyIDForUpdate(ctx context.Context, policyID string) (*domain.Policy, error) {
	if m.GetByPolicyIDForUpdateFn != nil {
		return m.GetByPolicyIDForUpdateFn(ctx, policyID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Delete(ctx context.Context, p *domain.Policy) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}

// RejectionRepo is a function-backed mock that satisfies domain.RejectionRepository.
type RejectionRepo struct {
	CreateFn        func(ctx context.Context, r *domain.RejectionDetail) error
	GetByPolicyIDFn func(ctx context.Context, policyNumericID uint64) (*domain.RejectionDetail, error)
}

func (m *RejectionRepo) Create(ctx context.Context, r *domain.RejectionDetail) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RejectionRepo) GetByPolicyID(ctx context.Context, policyNumericID uint64) (*domain.RejectionDetail, error) {
	if m.GetByPolicyIDFn != nil {
		return m.GetByPolicyIDFn(ctx, policyNumericID)
	}
	return nil, domain.ErrRejectionNotFound
}
