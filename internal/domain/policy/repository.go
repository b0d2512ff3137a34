package policy

import "context"

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	Save(ctx context.Context, p *Policy) error
	GetByPolicyID(ctx context.Context, policyID string) (*Policy, error)
	// Row lock; only meaningful inside a transaction
	GetByPolicyIDForUpdate(ctx context.Context, policyID string) (*Policy, error)
	// Soft-deletes the policy row; its rejection detail is removed outright.
	Delete(ctx context.Context, p *Policy) error
}

type RejectionRepository interface {
	Create(ctx context.Context, r *RejectionDetail) error
	GetByPolicyID(ctx context.Context, policyNumericID uint64) (*RejectionDetail, error)
}
