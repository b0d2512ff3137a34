package mysql

import (
	"context"
	"errors"
	"testing"

	policyDomain "insurance-brokerage/internal/domain/policy"
)

func TestPolicy_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewPolicyRepository(db)
	ctx := context.Background()

	in := makePolicy("p-1", "POL-1-aaaaaa")
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.ID == 0 {
		t.Fatalf("auto ID not set")
	}

	got, err := repo.GetByPolicyID(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByPolicyID: %v", err)
	}
	if got.PolicyNumber != "POL-1-aaaaaa" || got.Status != policyDomain.StatusPending {
		t.Fatalf("unexpected row: %+v", got)
	}
	if len(got.Beneficiaries) != 1 || got.Beneficiaries[0].Percentage != 100 {
		t.Fatalf("beneficiaries JSON not round-tripped: %+v", got.Beneficiaries)
	}
	if got.AgentID != nil {
		t.Fatalf("agent should be NULL")
	}
}

func TestPolicy_NotFound(t *testing.T) {
	repo := NewPolicyRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetByPolicyID(ctx, "nope"); !errors.Is(err, policyDomain.ErrNotFound) {
		t.Fatalf("GetByPolicyID: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByPolicyIDForUpdate(ctx, "nope"); !errors.Is(err, policyDomain.ErrNotFound) {
		t.Fatalf("GetByPolicyIDForUpdate: want ErrNotFound, got %v", err)
	}
}

func TestPolicy_PolicyNumberUnique(t *testing.T) {
	repo := NewPolicyRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, makePolicy("p-1", "POL-1-dup")); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := repo.Create(ctx, makePolicy("p-2", "POL-1-dup")); err == nil {
		t.Fatalf("duplicate policy number must be rejected by the store")
	}
}

func TestPolicy_SaveDependents(t *testing.T) {
	repo := NewPolicyRepository(openTestDB(t))
	ctx := context.Background()

	p := makePolicy("p-1", "POL-1-bbbbbb")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	agent := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	p.AgentID = &agent
	p.Status = policyDomain.StatusAwaitingSignature
	p.DependentsDetails = []policyDomain.Dependent{{Name: "Ana", BirthDate: "2010-01-01", Relationship: policyDomain.RelationshipChild}}
	p.NumDependents = 1
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByPolicyIDForUpdate(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetByPolicyIDForUpdate: %v", err)
	}
	if got.Status != policyDomain.StatusAwaitingSignature || got.AgentID == nil || *got.AgentID != agent {
		t.Fatalf("update not persisted: %+v", got)
	}
	if len(got.DependentsDetails) != 1 || got.DependentsDetails[0].Relationship != policyDomain.RelationshipChild {
		t.Fatalf("dependents JSON: %+v", got.DependentsDetails)
	}
}

func TestPolicy_DeleteRemovesRejection(t *testing.T) {
	db := openTestDB(t)
	repo := NewPolicyRepository(db)
	rejections := NewRejectionRepository(db)
	ctx := context.Background()

	p := makePolicy("p-1", "POL-1-cccccc")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := rejections.Create(ctx, &policyDomain.RejectionDetail{
		PolicyID: p.ID,
		Reasons:  []policyDomain.RejectionReason{policyDomain.ReasonOther},
	}); err != nil {
		t.Fatalf("Create rejection: %v", err)
	}

	if err := repo.Delete(ctx, p); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByPolicyID(ctx, "p-1"); !errors.Is(err, policyDomain.ErrNotFound) {
		t.Fatalf("policy still visible: %v", err)
	}
	if _, err := rejections.GetByPolicyID(ctx, p.ID); !errors.Is(err, policyDomain.ErrRejectionNotFound) {
		t.Fatalf("rejection still present: %v", err)
	}

	// the policy row survives with deleted_at set
	var kept policyDomain.Policy
	if err := db.Unscoped().Where("policy_id = ?", "p-1").First(&kept).Error; err != nil {
		t.Fatalf("soft-deleted row missing: %v", err)
	}
	if !kept.DeletedAt.Valid {
		t.Fatalf("deleted_at not set")
	}
	var n int64
	db.Unscoped().Model(&policyDomain.RejectionDetail{}).Where("policy_id = ?", p.ID).Count(&n)
	if n != 0 {
		t.Fatalf("rejection must be hard-deleted, found %d", n)
	}
}
