package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	clientDomain "insurance-brokerage/internal/domain/client"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, p *clientDomain.Profile) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return clientDomain.ErrDuplicateEmail
	}
	return err
}

func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*clientDomain.Profile, error) {
	var out clientDomain.Profile
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, clientDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *ClientRepository) List(ctx context.Context) ([]clientDomain.Profile, error) {
	var out []clientDomain.Profile
	err := r.db.WithContext(ctx).Order("full_name ASC, id ASC").Find(&out).Error
	return out, err
}
