package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
	"insurance-brokerage/internal/validation"
)

type bounds struct{ min, max float64 }

func (b bounds) contains(v float64) bool { return v >= b.min && v <= b.max }

type intBounds struct{ min, max int }

func (b intBounds) contains(v int) bool { return v >= b.min && v <= b.max }

type dependentRules struct {
	count           intBounds
	maxSpouses      int
	maxChildren     int
	childAgeCeiling int // 0 disables the check
}

type healthRules struct {
	deductible  bounds
	coinsurance bounds
	maxAnnual   bounds
}

// table is one row of the product registry. Optional blocks left nil are skipped by
// Validate, so a life row without beneficiaries never checks them.
type table struct {
	code     Code
	name     string
	kind     product.Type
	editable bool

	// monthly returns the unfloored monthly figure before frequency scaling.
	monthly func(s FormState) decimal.Decimal
	floor   decimal.Decimal
	// band, when set, is a hard range on the monthly figure: out of range is an error.
	band *bounds

	coverage      *bounds
	age           *intBounds
	beneficiaries *intBounds
	dependents    *dependentRules
	health        *healthRules

	defaults func(asOf time.Time) FormState
	// extra runs after the shared checks for product-only constraints.
	extra func(s FormState, fe FieldErrors)
}

func (t *table) Code() Code            { return t.code }
func (t *table) Name() string          { return t.name }
func (t *table) Kind() product.Type    { return t.kind }
func (t *table) PremiumEditable() bool { return t.editable }
func (t *table) Defaults(asOf time.Time) FormState {
	s := t.defaults(asOf)
	s.ProductCode = t.code
	if t.editable {
		s.PremiumAmount = t.Premium(s)
	}
	return s.Normalized()
}

func (t *table) Premium(s FormState) float64 {
	return t.premium(s.Normalized()).InexactFloat64()
}

func (t *table) monthlyPremium(s FormState) decimal.Decimal {
	return decimal.Max(t.monthly(s), t.floor).Round(2)
}

func (t *table) premium(s FormState) decimal.Decimal {
	mult := s.PaymentFrequency.Multiplier()
	return t.monthlyPremium(s).Mul(decimal.NewFromInt(mult))
}

func (t *table) Validate(state FormState) FieldErrors {
	s := state.Normalized()
	fe := FieldErrors{}

	checkTerm(s, fe)
	if t.coverage != nil && !t.coverage.contains(s.CoverageAmount) {
		fe.Add("coverage_amount", fmt.Sprintf("La suma asegurada debe estar entre %s y %s.",
			money(t.coverage.min), money(t.coverage.max)))
	}
	if t.age != nil && !t.age.contains(s.AgeAtInscription) {
		fe.Add("age_at_inscription", fmt.Sprintf("La edad debe estar entre %d y %d años.", t.age.min, t.age.max))
	}
	if t.beneficiaries != nil {
		checkBeneficiaries(s, *t.beneficiaries, fe)
	}
	if t.dependents != nil {
		checkDependents(s, *t.dependents, fe)
	}
	if t.health != nil {
		checkHealth(s, *t.health, fe)
	}
	if t.extra != nil {
		t.extra(s, fe)
	}
	t.checkPremium(s, fe)
	return fe
}

func (t *table) checkPremium(s FormState, fe FieldErrors) {
	if t.band != nil {
		m := t.monthly(s).Round(2)
		if m.LessThan(decimal.NewFromFloat(t.band.min)) || m.GreaterThan(decimal.NewFromFloat(t.band.max)) {
			fe.Add("premium_amount", fmt.Sprintf("La prima mensual debe estar entre %s y %s (calculada: %s).",
				money(t.band.min), money(t.band.max), moneyDec(m)))
			return
		}
	}
	if !t.editable || !s.PaymentFrequency.Valid() {
		return
	}
	computed := t.premium(s)
	if decimal.NewFromFloat(s.PremiumAmount).Round(2).LessThan(computed) {
		fe.Add("premium_amount", fmt.Sprintf("La prima debe ser al menos %s.", moneyDec(computed)))
	}
}

func checkTerm(s FormState, fe FieldErrors) {
	if !s.PaymentFrequency.Valid() {
		fe.Add("payment_frequency", "Frecuencia de pago inválida.")
	}
	startOK := validation.IsIsoDate(s.StartDate)
	endOK := validation.IsIsoDate(s.EndDate)
	if !startOK {
		fe.Add("start_date", "Fecha de inicio inválida (AAAA-MM-DD).")
	}
	if !endOK {
		fe.Add("end_date", "Fecha de fin inválida (AAAA-MM-DD).")
	}
	// ISO-shaped dates order lexicographically
	if startOK && endOK && s.EndDate <= s.StartDate {
		fe.Add("end_date", "La fecha de fin debe ser posterior a la fecha de inicio.")
	}
}

func checkBeneficiaries(s FormState, count intBounds, fe FieldErrors) {
	list := s.Beneficiaries
	if !count.contains(list.Count) {
		fe.Add("num_beneficiaries", fmt.Sprintf("Se requieren entre %d y %d beneficiarios.", count.min, count.max))
	}
	if len(list.Items) != list.Count {
		fe.Add("beneficiaries", "La cantidad de beneficiarios no coincide con el número declarado.")
		return
	}
	for _, b := range list.Items {
		if b.Name == "" || b.Relationship == "" || b.Percentage == 0 {
			fe.Add("beneficiaries", "Todos los beneficiarios deben tener nombre, parentesco y porcentaje.")
			return
		}
	}
	for _, b := range list.Items {
		switch {
		case !validation.IsAlpha(b.Name):
			fe.Add("beneficiaries", "El nombre del beneficiario solo puede contener letras y espacios.")
		case !b.Relationship.Valid():
			fe.Add("beneficiaries", "Parentesco de beneficiario inválido.")
		case b.Relationship == policy.RelationshipOther && b.OtherRelationship == "":
			fe.Add("beneficiaries", "Especifique el parentesco del beneficiario.")
		case b.Percentage <= 0 || b.Percentage > 100:
			fe.Add("beneficiaries", "Cada porcentaje debe ser mayor a 0 y como máximo 100.")
		}
	}
	if list.Count == 0 {
		return
	}
	if sum := percentageSum(list.Items); !percentagesComplete(sum) {
		fe.Add("beneficiaries", fmt.Sprintf("La suma de los porcentajes debe ser 100%% (actual: %s%%).", sum.StringFixed(2)))
	}
}

var (
	hundred             = decimal.NewFromInt(100)
	percentageTolerance = decimal.RequireFromString("0.01")
)

// percentageSum recomputes from the items; the totals sent with the form are not trusted.
func percentageSum(items []policy.Beneficiary) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range items {
		sum = sum.Add(decimal.NewFromFloat(b.Percentage))
	}
	return sum
}

// percentagesComplete is inclusive: 99.99 and 100.01 both pass.
func percentagesComplete(sum decimal.Decimal) bool {
	return sum.Sub(hundred).Abs().LessThanOrEqual(percentageTolerance)
}

func checkDependents(s FormState, r dependentRules, fe FieldErrors) {
	list := s.Dependents
	if !r.count.contains(list.Count) {
		fe.Add("num_dependents", fmt.Sprintf("Se permiten entre %d y %d dependientes.", r.count.min, r.count.max))
	}
	if len(list.Items) != list.Count {
		fe.Add("dependents", "La cantidad de dependientes no coincide con el número declarado.")
		return
	}
	for _, d := range list.Items {
		if d.Name == "" || d.BirthDate == "" || d.Relationship == "" {
			fe.Add("dependents", "Todos los dependientes deben tener nombre, fecha de nacimiento y parentesco.")
			return
		}
	}
	for _, d := range list.Items {
		switch {
		case !validation.IsAlpha(d.Name):
			fe.Add("dependents", "El nombre del dependiente solo puede contener letras y espacios.")
		case !validation.IsIsoDate(d.BirthDate):
			fe.Add("dependents", "Fecha de nacimiento inválida (AAAA-MM-DD).")
		case !d.Relationship.Valid():
			fe.Add("dependents", "Parentesco de dependiente inválido.")
		case d.Relationship == policy.RelationshipOther && d.OtherRelationship == "":
			fe.Add("dependents", "Especifique el parentesco del dependiente.")
		}
	}
	if list.Totals.SpouseCount > r.maxSpouses {
		fe.Add("dependents", fmt.Sprintf("Solo se permite %d cónyuge.", r.maxSpouses))
	}
	if list.Totals.ChildCount > r.maxChildren {
		fe.Add("dependents", fmt.Sprintf("Se permiten como máximo %d hijos.", r.maxChildren))
	}
	if r.childAgeCeiling == 0 || !validation.IsIsoDate(s.StartDate) {
		return
	}
	for _, d := range list.Items {
		if !validation.IsIsoDate(d.BirthDate) {
			continue
		}
		if d.BirthDate > s.StartDate {
			fe.Add("dependents", "La fecha de nacimiento no puede ser posterior a la fecha de inicio.")
			continue
		}
		if d.Relationship == policy.RelationshipChild && yearsBetween(d.BirthDate, s.StartDate) > r.childAgeCeiling {
			fe.Add("dependents", fmt.Sprintf("Los hijos deben tener %d años o menos.", r.childAgeCeiling))
		}
	}
}

func checkHealth(s FormState, h healthRules, fe FieldErrors) {
	if !h.deductible.contains(s.Deductible) {
		fe.Add("deductible", fmt.Sprintf("El deducible debe estar entre %s y %s.", money(h.deductible.min), money(h.deductible.max)))
	}
	if !h.coinsurance.contains(s.Coinsurance) {
		fe.Add("coinsurance", fmt.Sprintf("El coaseguro debe estar entre %s%% y %s%%.",
			decimal.NewFromFloat(h.coinsurance.min).String(), decimal.NewFromFloat(h.coinsurance.max).String()))
	}
	if !h.maxAnnual.contains(s.MaxAnnual) {
		fe.Add("max_annual", fmt.Sprintf("El máximo anual debe estar entre %s y %s.", money(h.maxAnnual.min), money(h.maxAnnual.max)))
	}
}

// ageFactor steps the life rate by age band.
func ageFactor(age int) decimal.Decimal {
	switch {
	case age <= 40:
		return decimal.NewFromInt(1)
	case age <= 50:
		return decimal.RequireFromString("1.2")
	case age <= 60:
		return decimal.RequireFromString("1.5")
	default:
		return decimal.NewFromInt(2)
	}
}

// perDependent sums the increment for each dependent keyed by relationship.
func perDependent(items []policy.Dependent, spouse, child, other decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range items {
		switch d.Relationship {
		case policy.RelationshipSpouse:
			total = total.Add(spouse)
		case policy.RelationshipChild:
			total = total.Add(child)
		default:
			total = total.Add(other)
		}
	}
	return total
}

// rider returns amount when on, zero otherwise.
func rider(on bool, amount decimal.Decimal) decimal.Decimal {
	if on {
		return amount
	}
	return decimal.Zero
}
