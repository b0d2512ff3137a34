package http

import (
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"

	clientdomain "insurance-brokerage/internal/domain/client"
)

func TestCreateClient(t *testing.T) {
	s := newServer(t)
	body := map[string]string{
		"full_name":       "  José Núñez ",
		"email":           "Jose@Example.com",
		"phone":           "50499887766",
		"document_number": "0801199012345",
		"birth_date":      "1990-02-28",
	}
	rec := s.do(stdhttp.MethodPost, "/clients", mustJSON(body), nil)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var p clientdomain.Profile
	_ = json.Unmarshal(rec.Body.Bytes(), &p)
	if p.FullName != "José Núñez" || p.Email != "jose@example.com" || len(p.ClientID) != 32 {
		t.Fatalf("unexpected profile: %+v", p)
	}

	rec = s.do(stdhttp.MethodGet, "/clients/"+p.ClientID, nil, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("get => want 200, got %d", rec.Code)
	}

	rec = s.do(stdhttp.MethodPost, "/clients", mustJSON(body), nil)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("duplicate email => want 409, got %d", rec.Code)
	}

	rec = s.do(stdhttp.MethodGet, "/clients", nil, nil)
	var all []clientdomain.Profile
	_ = json.Unmarshal(rec.Body.Bytes(), &all)
	if len(all) != 2 {
		t.Fatalf("want 2 clients, got %d", len(all))
	}
}

func TestCreateClient_Invalid(t *testing.T) {
	s := newServer(t)

	rec := s.do(stdhttp.MethodPost, "/clients", strings.NewReader(`{"full_name":"Ana","email":"ana@example.com","birth_date":"28/02/1990"}`), nil)
	if rec.Code != stdhttp.StatusBadRequest || !containsFieldMsg(decodeError(t, rec).Details, "BirthDate", "YYYY-MM-DD") {
		t.Fatalf("bad date shape => want 400, got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(stdhttp.MethodPost, "/clients", strings.NewReader(`{"full_name":"Ana 2","email":"ana@","phone":"99-88"}`), nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad fields => want 422, got %d %s", rec.Code, rec.Body.String())
	}
	er := decodeError(t, rec)
	for _, f := range []string{"email", "full_name", "phone"} {
		if !containsFieldMsg(er.Details, f, "") {
			t.Fatalf("missing detail for %s: %+v", f, er.Details)
		}
	}

	rec = s.do(stdhttp.MethodGet, "/clients/nope", nil, nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown client => want 404, got %d", rec.Code)
	}
}
