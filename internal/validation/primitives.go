// Package validation holds field-level checks shared by every product rule set
// and by the HTTP request validators. All checks are shape-only and never panic.
package validation

import "regexp"

var (
	reAlpha   = regexp.MustCompile(`^[\p{Latin}\s]+$`)
	reEmail   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reDigits  = regexp.MustCompile(`^[0-9]+$`)
	reDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	reIsoDate = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// IsAlpha reports whether s holds only letters (accented Latin included) and spaces.
func IsAlpha(s string) bool { return reAlpha.MatchString(s) }

// IsEmail reports whether s has a single @ with non-empty local and dotted domain parts.
func IsEmail(s string) bool { return reEmail.MatchString(s) }

func IsDigitsOnly(s string) bool { return reDigits.MatchString(s) }

// IsDecimal accepts digits with at most one '.' separating two digit runs.
func IsDecimal(s string) bool { return reDecimal.MatchString(s) }

// IsIsoDate checks the YYYY-MM-DD shape only; 2024-02-30 passes.
func IsIsoDate(s string) bool { return reIsoDate.MatchString(s) }
