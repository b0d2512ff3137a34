package rules

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func money(f float64) string { return moneyDec(decimal.NewFromFloat(f)) }

// moneyDec renders "$12,500.00".
func moneyDec(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// yearsBetween counts whole years from birth to ref, both YYYY-MM-DD. Components are
// compared numerically without calendar checks, matching IsIsoDate.
func yearsBetween(birth, ref string) int {
	by, bm, bd := splitDate(birth)
	ry, rm, rd := splitDate(ref)
	years := ry - by
	if rm < bm || (rm == bm && rd < bd) {
		years--
	}
	return years
}

func splitDate(s string) (y, m, d int) {
	y, _ = strconv.Atoi(s[0:4])
	m, _ = strconv.Atoi(s[5:7])
	d, _ = strconv.Atoi(s[8:10])
	return y, m, d
}
