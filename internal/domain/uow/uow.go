package uow

import (
	"context"

	"insurance-brokerage/internal/domain/policy"
)

type Repos struct {
	Policies   policy.Repository
	Rejections policy.RejectionRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock policy first, then pass it in
	WithinPolicyTx(ctx context.Context, policyID string, fn func(r Repos, p *policy.Policy) error) error
}
