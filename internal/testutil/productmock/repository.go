package productmock

import (
	"context"

	domain "insurance-brokerage/internal/domain/product"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Product) error
	SaveFn           func(ctx context.Context, p *domain.Product) error
	GetByProductIDFn func(ctx context.Context, productID string) (*domain.Product, error)
	ListActiveFn     func(ctx context.Context) ([]domain.Product, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Product) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	if m.GetByProductIDFn != nil {
		return m.GetByProductIDFn(ctx, productID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Product, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}
