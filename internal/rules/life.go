package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"insurance-brokerage/internal/collection"
	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
)

const dateLayout = "2006-01-02"

// legalHeirs is the designation new life forms start with, so a fresh form is
// already submittable with a single 100% beneficiary.
func legalHeirs() collection.BeneficiaryList {
	return collection.NewBeneficiaryList([]policy.Beneficiary{{
		Name:              "Herederos Legales",
		Relationship:      policy.RelationshipOther,
		OtherRelationship: "Herederos legales",
		Percentage:        100,
	}})
}

func lifeTerm(asOf time.Time) FormState {
	return FormState{
		StartDate:        asOf.Format(dateLayout),
		EndDate:          asOf.AddDate(1, 0, 0).Format(dateLayout),
		PaymentFrequency: policy.FrequencyMonthly,
		AgeAtInscription: 18,
	}
}

var (
	rateADD         = decimal.RequireFromString("0.03")
	rateVidaBasica  = decimal.RequireFromString("0.012")
	rateSuplemento  = decimal.RequireFromString("0.0008")
	rateDependiente = decimal.RequireFromString("0.0002")
	twelve          = decimal.NewFromInt(12)
)

func init() {
	// AD&D stand-alone: coverage × 3% × ageFactor per year, billed monthly, $5 minimum.
	register(&table{
		code:  CodeADD,
		name:  "AD&D",
		kind:  product.TypeLife,
		floor: decimal.NewFromInt(5),
		monthly: func(s FormState) decimal.Decimal {
			return decimal.NewFromFloat(s.CoverageAmount).
				Mul(rateADD).
				Mul(ageFactor(s.AgeAtInscription)).
				Div(twelve)
		},
		coverage:      &bounds{5_000, 250_000},
		age:           &intBounds{18, 70},
		beneficiaries: &intBounds{1, 5},
		defaults: func(asOf time.Time) FormState {
			s := lifeTerm(asOf)
			s.CoverageAmount = 5_000
			s.Beneficiaries = legalHeirs()
			return s
		},
	})

	register(&table{
		code:  CodeVidaBasica,
		name:  "Vida Básica",
		kind:  product.TypeLife,
		floor: decimal.NewFromInt(10),
		monthly: func(s FormState) decimal.Decimal {
			base := decimal.NewFromFloat(s.CoverageAmount).
				Mul(rateVidaBasica).
				Mul(ageFactor(s.AgeAtInscription)).
				Div(twelve)
			addRider := decimal.Zero
			if s.ADDIncluded {
				addRider = decimal.NewFromFloat(s.ADDCoverage).Mul(rateADD).Div(twelve)
			}
			return base.Add(addRider)
		},
		coverage:      &bounds{10_000, 300_000},
		age:           &intBounds{18, 65},
		beneficiaries: &intBounds{1, 5},
		extra:         checkADDRider,
		defaults: func(asOf time.Time) FormState {
			s := lifeTerm(asOf)
			s.CoverageAmount = 10_000
			s.Beneficiaries = legalHeirs()
			return s
		},
	})

	register(&table{
		code:     CodeVidaSuplementaria,
		name:     "Vida Suplementaria",
		kind:     product.TypeLife,
		editable: true,
		floor:    decimal.NewFromInt(15),
		monthly: func(s FormState) decimal.Decimal {
			return decimal.NewFromInt(15).
				Add(decimal.NewFromFloat(s.CoverageAmount).Mul(rateSuplemento)).
				Add(rider(s.ADDIncluded, decimal.NewFromInt(10)))
		},
		coverage:      &bounds{5_000, 200_000},
		age:           &intBounds{18, 65},
		beneficiaries: &intBounds{1, 3},
		defaults: func(asOf time.Time) FormState {
			s := lifeTerm(asOf)
			s.CoverageAmount = 5_000
			s.Beneficiaries = legalHeirs()
			return s
		},
	})

	register(&table{
		code:  CodeVidaDependientes,
		name:  "Vida Dependientes",
		kind:  product.TypeLife,
		floor: decimal.NewFromInt(10),
		monthly: func(s FormState) decimal.Decimal {
			return decimal.NewFromInt(10).
				Add(decimal.NewFromFloat(s.CoverageAmount).Mul(rateDependiente)).
				Add(perDependent(s.Dependents.Items, decimal.NewFromInt(8), decimal.NewFromInt(5), decimal.NewFromInt(4))).
				Add(rider(s.ADDIncluded, decimal.NewFromInt(4)))
		},
		coverage: &bounds{5_000, 50_000},
		age:      &intBounds{18, 65},
		dependents: &dependentRules{
			count:           intBounds{0, 4},
			maxSpouses:      1,
			maxChildren:     3,
			childAgeCeiling: 25,
		},
		defaults: func(asOf time.Time) FormState {
			s := lifeTerm(asOf)
			s.CoverageAmount = 5_000
			return s
		},
	})
}

func checkADDRider(s FormState, fe FieldErrors) {
	if !s.ADDIncluded {
		return
	}
	if s.ADDCoverage <= 0 || s.ADDCoverage > s.CoverageAmount {
		fe.Add("ad_d_coverage", "La cobertura AD&D debe ser mayor a 0 y no superar la suma asegurada.")
	}
}
