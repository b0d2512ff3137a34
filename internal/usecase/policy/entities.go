package policy

import (
	"errors"

	domain "insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/rules"
)

var (
	ErrMissingIdentity = domain.ErrMissingIdentity
	ErrUnknownProduct  = errors.New("product is not available for policy forms")
)

// ValidationError blocks a submission; Fields holds one message per offending field.
type ValidationError struct {
	Fields rules.FieldErrors
}

func (e *ValidationError) Error() string { return "policy form has invalid fields" }

// StoreError is a failed write to the policy store. Its text is shown to the caller as is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

type SubmitResult struct {
	Policy *domain.Policy `json:"policy"`
	// Next is the fresh form state for the same product.
	Next rules.FormState `json:"next"`
}

type QuoteResult struct {
	ProductCode     rules.Code        `json:"product_code"`
	Premium         float64           `json:"premium"`
	PremiumEditable bool              `json:"premium_editable"`
	Errors          rules.FieldErrors `json:"errors"`
}

type RejectInput struct {
	PolicyID string
	Reasons  []domain.RejectionReason
	// Comments are keyed by reason code.
	Comments map[string]string
}
