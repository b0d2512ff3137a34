package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"insurance-brokerage/internal/adapter/middleware"
	clientdomain "insurance-brokerage/internal/domain/client"
	policydomain "insurance-brokerage/internal/domain/policy"
	productdomain "insurance-brokerage/internal/domain/product"
	"insurance-brokerage/internal/domain/uow"
	"insurance-brokerage/internal/infrastructure/cache"
	"insurance-brokerage/internal/rules"
	"insurance-brokerage/internal/testutil/clientmock"
	"insurance-brokerage/internal/testutil/policymock"
	"insurance-brokerage/internal/testutil/productmock"
	"insurance-brokerage/internal/testutil/uowmock"
	clientuc "insurance-brokerage/internal/usecase/client"
	policyuc "insurance-brokerage/internal/usecase/policy"
	productuc "insurance-brokerage/internal/usecase/product"
)

const (
	agentID  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	clientID = "cccccccccccccccccccccccccccccccc"
	adminID  = "dddddddddddddddddddddddddddddddd"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// server is the full route table over in-memory repositories.
type server struct {
	e          *echo.Echo
	mr         *miniredis.Miniredis
	policies   map[string]*policydomain.Policy
	rejections map[uint64]*policydomain.RejectionDetail
	products   map[string]*productdomain.Product
	clients    map[string]*clientdomain.Profile
	// policyRepo is the mock behind the routes; tests may swap its funcs.
	policyRepo *policymock.Repo
}

func productIDFor(code rules.Code) string { return "prod-" + string(code) }

func newServer(t *testing.T) *server {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := &server{
		mr:         mr,
		policies:   map[string]*policydomain.Policy{},
		rejections: map[uint64]*policydomain.RejectionDetail{},
		products:   map[string]*productdomain.Product{},
		clients: map[string]*clientdomain.Profile{
			clientID: {ClientID: clientID, FullName: "Lucía Fernández", Email: "lucia@example.com"},
		},
	}
	for _, code := range rules.Codes() {
		r, _ := rules.Get(code)
		s.products[productIDFor(code)] = &productdomain.Product{
			ProductID: productIDFor(code), Name: r.Name(), Type: r.Kind(), RuleCode: string(code), IsActive: true,
		}
	}

	policies := &policymock.Repo{
		CreateFn: func(_ context.Context, p *policydomain.Policy) error {
			p.ID = uint64(len(s.policies) + 1)
			s.policies[p.PolicyID] = p
			return nil
		},
		SaveFn: func(_ context.Context, p *policydomain.Policy) error {
			s.policies[p.PolicyID] = p
			return nil
		},
		GetByPolicyIDFn:          s.findPolicy,
		GetByPolicyIDForUpdateFn: s.findPolicy,
		DeleteFn: func(_ context.Context, p *policydomain.Policy) error {
			delete(s.policies, p.PolicyID)
			delete(s.rejections, p.ID)
			return nil
		},
	}
	rejections := &policymock.RejectionRepo{
		CreateFn: func(_ context.Context, r *policydomain.RejectionDetail) error {
			s.rejections[r.PolicyID] = r
			return nil
		},
		GetByPolicyIDFn: func(_ context.Context, id uint64) (*policydomain.RejectionDetail, error) {
			if r, ok := s.rejections[id]; ok {
				return r, nil
			}
			return nil, policydomain.ErrRejectionNotFound
		},
	}
	products := &productmock.Repo{
		CreateFn: func(_ context.Context, p *productdomain.Product) error {
			s.products[p.ProductID] = p
			return nil
		},
		SaveFn: func(_ context.Context, p *productdomain.Product) error {
			s.products[p.ProductID] = p
			return nil
		},
		GetByProductIDFn: func(_ context.Context, id string) (*productdomain.Product, error) {
			if p, ok := s.products[id]; ok {
				cp := *p
				return &cp, nil
			}
			return nil, productdomain.ErrNotFound
		},
		ListActiveFn: func(context.Context) ([]productdomain.Product, error) {
			var out []productdomain.Product
			for _, p := range s.products {
				if p.IsActive {
					out = append(out, *p)
				}
			}
			sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
			return out, nil
		},
	}
	clients := &clientmock.Repo{
		CreateFn: func(_ context.Context, p *clientdomain.Profile) error {
			for _, c := range s.clients {
				if c.Email == p.Email {
					return clientdomain.ErrDuplicateEmail
				}
			}
			s.clients[p.ClientID] = p
			return nil
		},
		GetByClientIDFn: func(_ context.Context, id string) (*clientdomain.Profile, error) {
			if p, ok := s.clients[id]; ok {
				return p, nil
			}
			return nil, clientdomain.ErrNotFound
		},
		ListFn: func(context.Context) ([]clientdomain.Profile, error) {
			out := make([]clientdomain.Profile, 0, len(s.clients))
			for _, p := range s.clients {
				out = append(out, *p)
			}
			return out, nil
		},
	}

	s.policyRepo = policies
	tx := uowmock.Passthrough(uow.Repos{Policies: policies, Rejections: rejections})
	h := Handlers{
		Health:   NewHandler(map[string]Check{"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() }}),
		Products: NewProductHandler(productuc.NewUsecase(products, cache.NewJSONCache(rdb, "products:", time.Minute), nil)),
		Clients:  NewClientHandler(clientuc.NewUsecase(clients, nil)),
		Policies: NewPolicyHandler(policyuc.NewUsecase(policies, rejections, products, clients, tx, nil)),
	}

	s.e = newEchoWithValidator()
	s.e.Use(middleware.Actor)
	Register(s.e, h, rdb, time.Minute, nil)
	return s
}

func (s *server) findPolicy(_ context.Context, id string) (*policydomain.Policy, error) {
	if p, ok := s.policies[id]; ok {
		return p, nil
	}
	return nil, policydomain.ErrNotFound
}

func (s *server) do(method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func as(id string, role policydomain.Role) map[string]string {
	return map[string]string{middleware.HeaderActorID: id, middleware.HeaderActorRole: string(role)}
}

// submitHeaders adds the idempotency pair to an actor's headers.
func submitHeaders(id string, role policydomain.Role, reqID string) map[string]string {
	h := as(id, role)
	h["Ax-Request-Id"] = reqID
	h["Ax-Request-At"] = time.Now().UTC().Format(time.RFC3339)
	return h
}

// defaultForm fetches the defaults over HTTP and binds them to the seeded client/product.
func (s *server) defaultForm(t *testing.T, code rules.Code) rules.FormState {
	t.Helper()
	rec := s.do(stdhttp.MethodGet, "/rules/"+string(code)+"/defaults", nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("defaults %s: status %d", code, rec.Code)
	}
	var f rules.FormState
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("defaults json: %v", err)
	}
	f.ClientID = clientID
	f.ProductID = productIDFor(code)
	return f
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad error json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
