package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Save(ctx context.Context, p *Product) error
	GetByProductID(ctx context.Context, productID string) (*Product, error)
	// Active products only, ordered by name
	ListActive(ctx context.Context) ([]Product, error)
}
