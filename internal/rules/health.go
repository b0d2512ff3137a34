package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
)

func healthTerm(asOf time.Time, deductible, coinsurance, maxAnnual float64) FormState {
	return FormState{
		StartDate:        asOf.Format(dateLayout),
		EndDate:          asOf.AddDate(1, 0, 0).Format(dateLayout),
		PaymentFrequency: policy.FrequencyMonthly,
		Deductible:       deductible,
		Coinsurance:      coinsurance,
		MaxAnnual:        maxAnnual,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func init() {
	register(&table{
		code:  CodePlanBasico,
		name:  "Plan Básico",
		kind:  product.TypeHealth,
		floor: dec(100),
		monthly: func(s FormState) decimal.Decimal {
			return dec(100).Add(dec(20).Mul(dec(int64(len(s.Dependents.Items)))))
		},
		dependents: &dependentRules{
			count:           intBounds{0, 3},
			maxSpouses:      1,
			maxChildren:     3,
			childAgeCeiling: 25,
		},
		health: &healthRules{
			deductible:  bounds{1_000, 5_000},
			coinsurance: bounds{20, 30},
			maxAnnual:   bounds{50_000, 100_000},
		},
		defaults: func(asOf time.Time) FormState {
			return healthTerm(asOf, 2_000, 20, 50_000)
		},
	})

	// Intermedio rejects forms whose monthly figure leaves the 150–400 band instead of flooring.
	register(&table{
		code:  CodePlanIntermedio,
		name:  "Plan Intermedio",
		kind:  product.TypeHealth,
		floor: dec(150),
		band:  &bounds{150, 400},
		monthly: func(s FormState) decimal.Decimal {
			m := dec(250).Add(dec(40).Mul(dec(int64(len(s.Dependents.Items)))))
			if s.Dependents.Totals.SpouseCount > 0 {
				m = m.Add(dec(20))
			}
			return m.Add(rider(s.DentalPremium, dec(25))).Add(rider(s.VisionPremium, dec(10)))
		},
		dependents: &dependentRules{
			// the catalogue allows 4, but 4 dependents price at 410+ and the band
			// rejects them; in practice the band caps the count at 3
			count:           intBounds{0, 4},
			maxSpouses:      1,
			maxChildren:     3,
			childAgeCeiling: 25,
		},
		health: &healthRules{
			deductible:  bounds{500, 3_000},
			coinsurance: bounds{10, 20},
			maxAnnual:   bounds{100_000, 250_000},
		},
		defaults: func(asOf time.Time) FormState {
			return healthTerm(asOf, 1_500, 20, 150_000)
		},
	})

	register(&table{
		code:  CodePlanFamiliar,
		name:  "Plan Familiar",
		kind:  product.TypeHealth,
		floor: dec(350),
		monthly: func(s FormState) decimal.Decimal {
			return dec(350).
				Add(perDependent(s.Dependents.Items, dec(60), dec(45), dec(30))).
				Add(rider(s.DentalPremium, dec(30))).
				Add(rider(s.VisionPremium, dec(15)))
		},
		dependents: &dependentRules{
			count:           intBounds{0, 6},
			maxSpouses:      1,
			maxChildren:     4,
			childAgeCeiling: 25,
		},
		health: &healthRules{
			deductible:  bounds{500, 3_000},
			coinsurance: bounds{10, 20},
			maxAnnual:   bounds{150_000, 500_000},
		},
		defaults: func(asOf time.Time) FormState {
			return healthTerm(asOf, 1_000, 15, 250_000)
		},
	})

	register(&table{
		code:     CodePlanPremier,
		name:     "Plan Premier",
		kind:     product.TypeHealth,
		editable: true,
		floor:    dec(500),
		monthly: func(s FormState) decimal.Decimal {
			return dec(500).
				Add(perDependent(s.Dependents.Items, dec(80), dec(60), dec(40))).
				Add(rider(s.DentalPremium, dec(35))).
				Add(rider(s.VisionPremium, dec(20)))
		},
		dependents: &dependentRules{
			count:           intBounds{0, 6},
			maxSpouses:      1,
			maxChildren:     4,
			childAgeCeiling: 25,
		},
		health: &healthRules{
			deductible:  bounds{0, 1_500},
			coinsurance: bounds{0, 10},
			maxAnnual:   bounds{500_000, 2_000_000},
		},
		defaults: func(asOf time.Time) FormState {
			return healthTerm(asOf, 500, 10, 1_000_000)
		},
	})
}
