package uowmock

import (
	"context"
	"errors"

	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinPolicyTxFn func(ctx context.Context, policyID string, fn func(r uow.Repos, p *policy.Policy) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs both methods directly against repos with no real transaction.
// WithinPolicyTx loads the policy through repos.Policies.GetByPolicyIDForUpdate.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinPolicyTxFn: func(ctx context.Context, policyID string, fn func(uow.Repos, *policy.Policy) error) error {
			p, err := repos.Policies.GetByPolicyIDForUpdate(ctx, policyID)
			if err != nil {
				return err
			}
			return fn(repos, p)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinPolicyTx(fn func(context.Context, string, func(uow.Repos, *policy.Policy) error) error) *UoW {
	m.WithinPolicyTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinPolicyTx(ctx context.Context, policyID string, fn func(r uow.Repos, p *policy.Policy) error) error {
	if m.WithinPolicyTxFn != nil {
		return m.WithinPolicyTxFn(ctx, policyID, fn)
	}
	return errUnimplemented
}
