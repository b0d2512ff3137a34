// Package collection keeps a beneficiary or dependent list in step with its
// declared count. Every operation returns a new value; inputs are never mutated.
package collection

import (
	"errors"

	"github.com/shopspring/decimal"

	"insurance-brokerage/internal/domain/policy"
)

var ErrIndexOutOfRange = errors.New("collection index out of range")

// Resize truncates or pads items to n entries. Existing entries keep their index;
// padding uses the zero value. Negative n is treated as 0.
func Resize[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	out := make([]T, n)
	copy(out, items)
	return out
}

// BeneficiaryTotals are recomputed on every edit.
type BeneficiaryTotals struct {
	PercentageSum float64 `json:"percentage_sum"`
}

type BeneficiaryList struct {
	Count  int                  `json:"count"`
	Items  []policy.Beneficiary `json:"items"`
	Totals BeneficiaryTotals    `json:"totals"`
}

func NewBeneficiaryList(items []policy.Beneficiary) BeneficiaryList {
	l := BeneficiaryList{Count: len(items), Items: Resize(items, len(items))}
	l.Totals = sumBeneficiaries(l.Items)
	return l
}

func (l BeneficiaryList) SetCount(n int) BeneficiaryList {
	out := BeneficiaryList{Items: Resize(l.Items, n)}
	out.Count = len(out.Items)
	out.Totals = sumBeneficiaries(out.Items)
	return out
}

func (l BeneficiaryList) SetName(i int, name string) (BeneficiaryList, error) {
	return l.edit(i, func(b *policy.Beneficiary) { b.Name = name })
}

// SetRelationship clears the free-text label unless the new value is "other".
func (l BeneficiaryList) SetRelationship(i int, r policy.Relationship) (BeneficiaryList, error) {
	return l.edit(i, func(b *policy.Beneficiary) {
		b.Relationship = r
		if r != policy.RelationshipOther {
			b.OtherRelationship = ""
		}
	})
}

func (l BeneficiaryList) SetOtherRelationship(i int, label string) (BeneficiaryList, error) {
	return l.edit(i, func(b *policy.Beneficiary) { b.OtherRelationship = label })
}

func (l BeneficiaryList) SetPercentage(i int, pct float64) (BeneficiaryList, error) {
	return l.edit(i, func(b *policy.Beneficiary) { b.Percentage = pct })
}

func (l BeneficiaryList) edit(i int, fn func(*policy.Beneficiary)) (BeneficiaryList, error) {
	if i < 0 || i >= len(l.Items) {
		return l, ErrIndexOutOfRange
	}
	out := BeneficiaryList{Count: l.Count, Items: Resize(l.Items, len(l.Items))}
	fn(&out.Items[i])
	out.Totals = sumBeneficiaries(out.Items)
	return out, nil
}

// sumBeneficiaries adds in decimal so 33.33 three times reads back as 99.99.
func sumBeneficiaries(items []policy.Beneficiary) BeneficiaryTotals {
	sum := decimal.Zero
	for _, b := range items {
		sum = sum.Add(decimal.NewFromFloat(b.Percentage))
	}
	return BeneficiaryTotals{PercentageSum: sum.InexactFloat64()}
}

type DependentTotals struct {
	SpouseCount int `json:"spouse_count"`
	ChildCount  int `json:"child_count"`
	OtherCount  int `json:"other_count"`
}

type DependentList struct {
	Count  int                `json:"count"`
	Items  []policy.Dependent `json:"items"`
	Totals DependentTotals    `json:"totals"`
}

func NewDependentList(items []policy.Dependent) DependentList {
	l := DependentList{Count: len(items), Items: Resize(items, len(items))}
	l.Totals = CountDependents(l.Items)
	return l
}

func (l DependentList) SetCount(n int) DependentList {
	out := DependentList{Items: Resize(l.Items, n)}
	out.Count = len(out.Items)
	out.Totals = CountDependents(out.Items)
	return out
}

func (l DependentList) SetName(i int, name string) (DependentList, error) {
	return l.edit(i, func(d *policy.Dependent) { d.Name = name })
}

func (l DependentList) SetBirthDate(i int, date string) (DependentList, error) {
	return l.edit(i, func(d *policy.Dependent) { d.BirthDate = date })
}

// SetRelationship clears the free-text label unless the new value is "other".
func (l DependentList) SetRelationship(i int, r policy.Relationship) (DependentList, error) {
	return l.edit(i, func(d *policy.Dependent) {
		d.Relationship = r
		if r != policy.RelationshipOther {
			d.OtherRelationship = ""
		}
	})
}

func (l DependentList) SetOtherRelationship(i int, label string) (DependentList, error) {
	return l.edit(i, func(d *policy.Dependent) { d.OtherRelationship = label })
}

func (l DependentList) edit(i int, fn func(*policy.Dependent)) (DependentList, error) {
	if i < 0 || i >= len(l.Items) {
		return l, ErrIndexOutOfRange
	}
	out := DependentList{Count: l.Count, Items: Resize(l.Items, len(l.Items))}
	fn(&out.Items[i])
	out.Totals = CountDependents(out.Items)
	return out, nil
}

// CountDependents buckets by relationship; anything not spouse/child lands in OtherCount.
// Entries with no relationship yet are not counted.
func CountDependents(items []policy.Dependent) DependentTotals {
	var t DependentTotals
	for _, d := range items {
		switch d.Relationship {
		case policy.RelationshipSpouse:
			t.SpouseCount++
		case policy.RelationshipChild:
			t.ChildCount++
		case "":
		default:
			t.OtherCount++
		}
	}
	return t
}
