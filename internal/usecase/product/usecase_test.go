package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"insurance-brokerage/internal/domain/policy"
	domain "insurance-brokerage/internal/domain/product"
	"insurance-brokerage/internal/infrastructure/cache"
	"insurance-brokerage/internal/testutil/productmock"
)

var admin = policy.Actor{ID: "dddddddddddddddddddddddddddddddd", Role: policy.RoleAdmin}

func newCache(t *testing.T) (*miniredis.Miniredis, *cache.JSONCache) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, cache.NewJSONCache(rdb, "products:", time.Minute)
}

func TestListActive_ReadThrough(t *testing.T) {
	s, c := newCache(t)
	calls := 0
	repo := &productmock.Repo{
		ListActiveFn: func(context.Context) ([]domain.Product, error) {
			calls++
			return []domain.Product{{ProductID: "p1", Name: "AD&D", RuleCode: "add", IsActive: true}}, nil
		},
	}
	uc := NewUsecase(repo, c, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := uc.ListActive(ctx)
		if err != nil {
			t.Fatalf("ListActive: %v", err)
		}
		if len(got) != 1 || got[0].ProductID != "p1" {
			t.Fatalf("got=%+v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("repo calls=%d want 1", calls)
	}
	if !s.Exists("products:active") {
		t.Fatalf("listing not cached")
	}
}

func TestListActive_CacheDownFallsBackToRepo(t *testing.T) {
	s, c := newCache(t)
	s.Close()

	repo := &productmock.Repo{
		ListActiveFn: func(context.Context) ([]domain.Product, error) {
			return []domain.Product{{ProductID: "p1"}}, nil
		},
	}
	got, err := NewUsecase(repo, c, nil).ListActive(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestListActive_NoCache(t *testing.T) {
	boom := errors.New("db down")
	repo := &productmock.Repo{
		ListActiveFn: func(context.Context) ([]domain.Product, error) { return nil, boom },
	}
	if _, err := NewUsecase(repo, nil, nil).ListActive(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}

func TestCreate_InvalidatesCache(t *testing.T) {
	s, c := newCache(t)
	_ = s.Set("products:active", "[]")

	var created *domain.Product
	repo := &productmock.Repo{
		CreateFn: func(_ context.Context, p *domain.Product) error { created = p; return nil },
	}
	p, err := NewUsecase(repo, c, nil).Create(context.Background(), UpsertInput{
		Name:            "Plan Premier",
		Type:            domain.TypeHealth,
		RuleCode:        "plan_premier",
		BasePremium:     500,
		CoverageDetails: []byte(`{"hospital":"privado"}`),
	}, admin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created != p || len(p.ProductID) != 32 || !p.IsActive || p.Currency != "USD" {
		t.Fatalf("product=%+v", p)
	}
	if string(p.CoverageDetails) != `{"hospital":"privado"}` {
		t.Fatalf("coverage details=%s", p.CoverageDetails)
	}
	if s.Exists("products:active") {
		t.Fatalf("cache not invalidated")
	}
}

func TestCreate_RuleCodeMustMatchType(t *testing.T) {
	tests := []struct {
		name string
		in   UpsertInput
		ok   bool
	}{
		{"life rule on life", UpsertInput{Name: "x", Type: domain.TypeLife, RuleCode: "vida_basica"}, true},
		{"other without rule", UpsertInput{Name: "x", Type: domain.TypeOther}, true},
		{"health rule on life", UpsertInput{Name: "x", Type: domain.TypeLife, RuleCode: "plan_basico"}, false},
		{"unknown rule", UpsertInput{Name: "x", Type: domain.TypeHealth, RuleCode: "plan_oro"}, false},
		{"life without rule", UpsertInput{Name: "x", Type: domain.TypeLife}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUsecase(&productmock.Repo{}, nil, nil).Create(context.Background(), tt.in, admin)
			if tt.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrUnknownRuleCode) {
				t.Fatalf("want ErrUnknownRuleCode, got %v", err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	existing := &domain.Product{ProductID: "p1", Name: "Old", Type: domain.TypeLife, RuleCode: "add", IsActive: true}
	var saved *domain.Product
	repo := &productmock.Repo{
		GetByProductIDFn: func(_ context.Context, id string) (*domain.Product, error) {
			if id != "p1" {
				return nil, domain.ErrNotFound
			}
			return existing, nil
		},
		SaveFn: func(_ context.Context, p *domain.Product) error { saved = p; return nil },
	}
	uc := NewUsecase(repo, nil, nil)
	inactive := false

	p, err := uc.Update(context.Background(), "p1", UpsertInput{Name: "AD&D Plus", Type: domain.TypeLife, RuleCode: "add", IsActive: &inactive}, admin)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved != p || p.Name != "AD&D Plus" || p.IsActive {
		t.Fatalf("product=%+v", p)
	}

	if _, err := uc.Update(context.Background(), "nope", UpsertInput{Name: "x", Type: domain.TypeOther}, admin); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreateUpdate_AdminOnly(t *testing.T) {
	repo := &productmock.Repo{
		CreateFn: func(context.Context, *domain.Product) error {
			t.Fatalf("Create must not reach the repository")
			return nil
		},
		GetByProductIDFn: func(context.Context, string) (*domain.Product, error) {
			t.Fatalf("Update must not reach the repository")
			return nil, nil
		},
	}
	uc := NewUsecase(repo, nil, nil)
	in := UpsertInput{Name: "x", Type: domain.TypeOther}

	tests := []struct {
		name  string
		actor policy.Actor
		want  error
	}{
		{"anonymous", policy.Actor{}, policy.ErrMissingIdentity},
		{"client", policy.Actor{ID: "cccccccccccccccccccccccccccccccc", Role: policy.RoleClient}, policy.ErrForbidden},
		{"agent", policy.Actor{ID: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: policy.RoleAgent}, policy.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), in, tt.actor); !errors.Is(err, tt.want) {
				t.Fatalf("Create: want %v, got %v", tt.want, err)
			}
			if _, err := uc.Update(context.Background(), "p1", in, tt.actor); !errors.Is(err, tt.want) {
				t.Fatalf("Update: want %v, got %v", tt.want, err)
			}
		})
	}
}
