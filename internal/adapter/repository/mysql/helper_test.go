package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	clientDomain "insurance-brokerage/internal/domain/client"
	policyDomain "insurance-brokerage/internal/domain/policy"
	productDomain "insurance-brokerage/internal/domain/product"
)

// openTestDB returns an in-memory sqlite DB with every table migrated. One connection
// only, so every query sees the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&productDomain.Product{},
		&clientDomain.Profile{},
		&policyDomain.Policy{},
		&policyDomain.RejectionDetail{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makePolicy(policyID, number string) *policyDomain.Policy {
	return &policyDomain.Policy{
		PolicyID:         policyID,
		PolicyNumber:     number,
		ClientID:         "cccccccccccccccccccccccccccccccc",
		ProductID:        "prod-add",
		StartDate:        "2025-03-15",
		EndDate:          "2026-03-15",
		PremiumAmount:    12.5,
		PaymentFrequency: policyDomain.FrequencyMonthly,
		Status:           policyDomain.StatusPending,
		CoverageAmount:   5_000,
		AgeAtInscription: 18,
		Beneficiaries: []policyDomain.Beneficiary{
			{Name: "Herederos Legales", Relationship: policyDomain.RelationshipOther, OtherRelationship: "Herederos legales", Percentage: 100},
		},
		NumBeneficiaries: 1,
		StatusUpdatedAt:  time.Now().UTC(),
	}
}
