package client

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByClientID(ctx context.Context, clientID string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
}
