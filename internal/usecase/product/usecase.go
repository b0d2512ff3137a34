package product

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"insurance-brokerage/internal/domain/policy"
	domain "insurance-brokerage/internal/domain/product"
	"insurance-brokerage/internal/rules"
	"insurance-brokerage/pkg/id"
)

var ErrUnknownRuleCode = errors.New("rule code has no policy form")

const activeKey = "active"

// Cache is the read-through store for the active catalogue.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

type Usecase struct {
	repo  domain.Repository
	cache Cache
	log   *zap.Logger
}

// NewUsecase accepts a nil cache; every listing then hits the repository.
func NewUsecase(r domain.Repository, c Cache, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, cache: c, log: log}
}

type UpsertInput struct {
	Name                  string          `json:"name" validate:"required,max=120"`
	Type                  domain.Type     `json:"type" validate:"required,oneof=life health other"`
	RuleCode              string          `json:"rule_code" validate:"omitempty,max=32"`
	BasePremium           float64         `json:"base_premium" validate:"gte=0,dec2"`
	Currency              string          `json:"currency" validate:"omitempty,len=3"`
	DurationMonths        int             `json:"duration_months" validate:"gte=0"`
	FixedPaymentFrequency *string         `json:"fixed_payment_frequency" validate:"omitempty,oneof=monthly quarterly annually"`
	CoverageDetails       json.RawMessage `json:"coverage_details"`
	AdminNotes            string          `json:"admin_notes"`
	IsActive              *bool           `json:"is_active"`
}

// ListActive serves from cache when possible. Cache failures degrade to a DB read.
func (u *Usecase) ListActive(ctx context.Context) ([]domain.Product, error) {
	if u.cache != nil {
		var cached []domain.Product
		hit, err := u.cache.Get(ctx, activeKey, &cached)
		if err != nil {
			u.log.Warn("product cache read", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	out, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, activeKey, out); err != nil {
			u.log.Warn("product cache write", zap.Error(err))
		}
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return u.repo.GetByProductID(ctx, productID)
}

// Create and Update are admin-only.
func (u *Usecase) Create(ctx context.Context, in UpsertInput, actor policy.Actor) (*domain.Product, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := checkRuleCode(in); err != nil {
		return nil, err
	}
	p := &domain.Product{ProductID: id.NewID32(), IsActive: true}
	apply(p, in)
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.log.Info("product created", zap.String("product_id", p.ProductID), zap.String("rule_code", p.RuleCode), zap.String("actor_id", actor.ID))
	return p, nil
}

func (u *Usecase) Update(ctx context.Context, productID string, in UpsertInput, actor policy.Actor) (*domain.Product, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := checkRuleCode(in); err != nil {
		return nil, err
	}
	p, err := u.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	apply(p, in)
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.log.Info("product updated", zap.String("product_id", p.ProductID), zap.Bool("active", p.IsActive), zap.String("actor_id", actor.ID))
	return p, nil
}

// checkRuleCode requires life and health products to name a registered rule.
func checkRuleCode(in UpsertInput) error {
	if in.RuleCode == "" {
		if in.Type == domain.TypeOther {
			return nil
		}
		return ErrUnknownRuleCode
	}
	r, ok := rules.Get(rules.Code(in.RuleCode))
	if !ok || r.Kind() != in.Type {
		return ErrUnknownRuleCode
	}
	return nil
}

func apply(p *domain.Product, in UpsertInput) {
	p.Name = in.Name
	p.Type = in.Type
	p.RuleCode = in.RuleCode
	p.BasePremium = in.BasePremium
	p.Currency = in.Currency
	if p.Currency == "" {
		p.Currency = "USD"
	}
	p.DurationMonths = in.DurationMonths
	p.FixedPaymentFrequency = in.FixedPaymentFrequency
	if len(in.CoverageDetails) > 0 {
		p.CoverageDetails = datatypes.JSON(in.CoverageDetails)
	}
	p.AdminNotes = in.AdminNotes
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func (u *Usecase) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, activeKey); err != nil {
		u.log.Warn("product cache invalidate", zap.Error(err))
	}
}
