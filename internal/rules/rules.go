// Package rules is the premium and eligibility engine behind every policy form.
// Each product is one entry of a registry keyed by Code; entries are plain data plus
// pure functions, so every call is safe on every keystroke and needs no I/O.
package rules

import (
	"sort"
	"time"

	"insurance-brokerage/internal/collection"
	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
)

type Code string

const (
	CodeADD               Code = "add"
	CodeVidaBasica        Code = "vida_basica"
	CodeVidaDependientes  Code = "vida_dependientes"
	CodeVidaSuplementaria Code = "vida_suplementaria"
	CodePlanBasico        Code = "plan_basico"
	CodePlanIntermedio    Code = "plan_intermedio"
	CodePlanFamiliar      Code = "plan_familiar"
	CodePlanPremier       Code = "plan_premier"
)

// FormState is the whole editable state of one policy form. Life products read the
// coverage/beneficiary block, health products the deductible/dependent block.
type FormState struct {
	ProductCode      Code             `json:"product_code"`
	ClientID         string           `json:"client_id"`
	ProductID        string           `json:"product_id"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"`
	PaymentFrequency policy.Frequency `json:"payment_frequency"`
	PremiumAmount    float64          `json:"premium_amount"`
	ContractDetails  string           `json:"contract_details"`

	CoverageAmount   float64                    `json:"coverage_amount"`
	AgeAtInscription int                        `json:"age_at_inscription"`
	ADDIncluded      bool                       `json:"ad_d_included"`
	ADDCoverage      float64                    `json:"ad_d_coverage"`
	Beneficiaries    collection.BeneficiaryList `json:"beneficiaries"`

	Deductible    float64                  `json:"deductible"`
	Coinsurance   float64                  `json:"coinsurance"`
	MaxAnnual     float64                  `json:"max_annual"`
	DentalPremium bool                     `json:"dental_premium"`
	VisionPremium bool                     `json:"vision_premium"`
	Dependents    collection.DependentList `json:"dependents"`
}

// Normalized re-derives collection totals from the items. Counts are left alone so a
// count/items mismatch coming from the wire is still visible to Validate.
func (s FormState) Normalized() FormState {
	b := collection.NewBeneficiaryList(s.Beneficiaries.Items)
	b.Count = s.Beneficiaries.Count
	s.Beneficiaries = b

	d := collection.NewDependentList(s.Dependents.Items)
	d.Count = s.Dependents.Count
	s.Dependents = d
	return s
}

// FieldErrors maps a field name (or "beneficiaries"/"dependents") to a user-facing message.
type FieldErrors map[string]string

// Add keeps the first message recorded for a field.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		fe.Add(k, v)
	}
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

type Rule interface {
	Code() Code
	Name() string
	Kind() product.Type
	// PremiumEditable products accept a user-entered premium no lower than Premium.
	PremiumEditable() bool
	// Defaults seeds a one-year term starting at asOf.
	Defaults(asOf time.Time) FormState
	Premium(s FormState) float64
	Validate(s FormState) FieldErrors
}

var registry = map[Code]Rule{}

func register(r Rule) { registry[r.Code()] = r }

func Get(code Code) (Rule, bool) {
	r, ok := registry[code]
	return r, ok
}

func Codes() []Code {
	out := make([]Code, 0, len(registry))
	for c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
