package clientmock

import (
	"context"

	domain "insurance-brokerage/internal/domain/client"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Profile) error
	GetByClientIDFn func(ctx context.Context, clientID string) (*domain.Profile, error)
	ListFn          func(ctx context.Context) ([]domain.Profile, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByClientID(ctx context.Context, clientID string) (*domain.Profile, error) {
	if m.GetByClientIDFn != nil {
		return m.GetByClientIDFn(ctx, clientID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
