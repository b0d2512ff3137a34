package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	productDomain "insurance-brokerage/internal/domain/product"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Save writes every column so is_active=false is persisted.
func (r *ProductRepository) Save(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepository) GetByProductID(ctx context.Context, productID string) (*productDomain.Product, error) {
	var out productDomain.Product
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, productDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ProductRepository) ListActive(ctx context.Context) ([]productDomain.Product, error) {
	var out []productDomain.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC, id ASC").
		Find(&out).Error
	return out, err
}
