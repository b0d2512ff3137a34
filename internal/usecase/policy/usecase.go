package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"insurance-brokerage/internal/domain/client"
	domain "insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/domain/product"
	"insurance-brokerage/internal/domain/uow"
	"insurance-brokerage/internal/infrastructure/metrics"
	"insurance-brokerage/internal/rules"
	"insurance-brokerage/pkg/id"
)

type Usecase struct {
	policies   domain.Repository
	rejections domain.RejectionRepository
	products   product.Repository
	clients    client.Repository
	uow        uow.UnitOfWork
	log        *zap.Logger
	now        func() time.Time
}

func NewUsecase(
	policies domain.Repository,
	rejections domain.RejectionRepository,
	products product.Repository,
	clients client.Repository,
	tx uow.UnitOfWork,
	log *zap.Logger,
) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		policies:   policies,
		rejections: rejections,
		products:   products,
		clients:    clients,
		uow:        tx,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Quote prices a form and reports what would block its submission. Nothing is stored.
func (u *Usecase) Quote(state rules.FormState) (*QuoteResult, error) {
	rule, ok := rules.Get(state.ProductCode)
	if !ok {
		return nil, ErrUnknownProduct
	}
	metrics.PolicyQuotes.WithLabelValues(string(rule.Code())).Inc()
	return &QuoteResult{
		ProductCode:     rule.Code(),
		Premium:         rule.Premium(state),
		PremiumEditable: rule.PremiumEditable(),
		Errors:          rule.Validate(state),
	}, nil
}

// Defaults returns the initial form state for a product code.
func (u *Usecase) Defaults(code rules.Code) (rules.FormState, error) {
	rule, ok := rules.Get(code)
	if !ok {
		return rules.FormState{}, ErrUnknownProduct
	}
	return rule.Defaults(u.now()), nil
}

func (u *Usecase) Submit(ctx context.Context, state rules.FormState, actor domain.Actor) (*SubmitResult, error) {
	if !actor.Known() {
		return nil, ErrMissingIdentity
	}
	rule, ok := rules.Get(state.ProductCode)
	if !ok {
		metrics.PolicySubmissions.WithLabelValues(string(state.ProductCode), metrics.OutcomePrecondition).Inc()
		return nil, ErrUnknownProduct
	}
	code := string(rule.Code())

	prod, err := u.resolveProduct(ctx, state.ProductID, rule.Code())
	if err != nil {
		if errors.Is(err, ErrUnknownProduct) {
			metrics.PolicySubmissions.WithLabelValues(code, metrics.OutcomePrecondition).Inc()
		}
		return nil, err
	}

	fe := rule.Validate(state)
	if err := u.checkCommon(ctx, state, prod, fe); err != nil {
		return nil, err
	}
	if !fe.Empty() {
		metrics.PolicySubmissions.WithLabelValues(code, metrics.OutcomeInvalid).Inc()
		return nil, &ValidationError{Fields: fe}
	}

	now := u.now()
	premium := rule.Premium(state)
	if rule.PremiumEditable() {
		// already checked against the computed floor by Validate
		premium = state.PremiumAmount
	}

	p := assemble(state, rule.Kind(), rule.Code())
	p.PolicyID = id.NewID32()
	p.PolicyNumber = id.NewPolicyNumber(now)
	p.PremiumAmount = premium
	p.Status = domain.StatusPending
	p.StatusUpdatedAt = now
	if actor.Role == domain.RoleAgent {
		agent := actor.ID
		p.AgentID = &agent
	}

	if err := u.policies.Create(ctx, p); err != nil {
		metrics.PolicySubmissions.WithLabelValues(code, metrics.OutcomeFailed).Inc()
		u.log.Error("create policy", zap.String("rule_code", code), zap.Error(err))
		return nil, storeErr("create", err)
	}

	metrics.PolicySubmissions.WithLabelValues(code, metrics.OutcomeCreated).Inc()
	metrics.SubmittedPremium.WithLabelValues(code).Observe(premium)
	u.log.Info("policy submitted",
		zap.String("policy_id", p.PolicyID),
		zap.String("policy_number", p.PolicyNumber),
		zap.String("rule_code", code),
		zap.String("actor_role", string(actor.Role)),
		zap.Float64("premium", premium),
	)
	return &SubmitResult{Policy: p, Next: rule.Defaults(now)}, nil
}

// resolveProduct loads the catalogue entry a form is bound to. A missing, inactive or
// mismatched product is a precondition failure, not a field error.
func (u *Usecase) resolveProduct(ctx context.Context, productID string, code rules.Code) (*product.Product, error) {
	if productID == "" {
		return nil, ErrUnknownProduct
	}
	p, err := u.products.GetByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
		}
		return nil, err
	}
	if !p.IsActive || p.RuleCode != string(code) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	return p, nil
}

func (u *Usecase) checkCommon(ctx context.Context, s rules.FormState, prod *product.Product, fe rules.FieldErrors) error {
	if prod.FixedPaymentFrequency != nil && string(s.PaymentFrequency) != *prod.FixedPaymentFrequency {
		fe.Add("payment_frequency", fmt.Sprintf("Este producto solo admite pago %s.", *prod.FixedPaymentFrequency))
	}
	if s.ClientID == "" {
		fe.Add("client_id", "Seleccione un cliente.")
		return nil
	}
	if _, err := u.clients.GetByClientID(ctx, s.ClientID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fe.Add("client_id", "El cliente seleccionado no existe.")
			return nil
		}
		return err
	}
	return nil
}

// assemble copies the common fields plus the payload block of the product kind.
func assemble(s rules.FormState, kind product.Type, code rules.Code) *domain.Policy {
	p := &domain.Policy{
		ClientID:         s.ClientID,
		ProductID:        s.ProductID,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PaymentFrequency: s.PaymentFrequency,
		ContractDetails:  s.ContractDetails,
	}
	switch kind {
	case product.TypeLife:
		p.CoverageAmount = s.CoverageAmount
		p.AgeAtInscription = s.AgeAtInscription
		p.ADDIncluded = s.ADDIncluded
		if s.ADDIncluded {
			p.ADDCoverage = s.ADDCoverage
		}
		if code == rules.CodeVidaDependientes {
			p.DependentsDetails = append(p.DependentsDetails, s.Dependents.Items...)
			p.NumDependents = s.Dependents.Count
			break
		}
		p.Beneficiaries = append(p.Beneficiaries, s.Beneficiaries.Items...)
		p.NumBeneficiaries = s.Beneficiaries.Count
	case product.TypeHealth:
		p.Deductible = s.Deductible
		p.Coinsurance = s.Coinsurance
		p.MaxAnnual = s.MaxAnnual
		p.DentalPremium = s.DentalPremium
		p.VisionPremium = s.VisionPremium
		p.DependentsDetails = append(p.DependentsDetails, s.Dependents.Items...)
		p.NumDependents = s.Dependents.Count
	}
	return p
}

// Get hides other clients' policies from a client actor.
func (u *Usecase) Get(ctx context.Context, policyID string, actor domain.Actor) (*domain.Policy, error) {
	if !actor.Known() {
		return nil, ErrMissingIdentity
	}
	p, err := u.policies.GetByPolicyID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && p.ClientID != actor.ID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Transition moves a policy along the lifecycle. Rejection goes through Reject
// instead.
func (u *Usecase) Transition(ctx context.Context, policyID string, to domain.Status, actor domain.Actor) (*domain.Policy, error) {
	if !actor.Known() {
		return nil, ErrMissingIdentity
	}
	if !to.Valid() || to == domain.StatusRejected || to == domain.StatusPending {
		return nil, domain.ErrInvalidTransition
	}

	var out *domain.Policy
	err := u.uow.WithinPolicyTx(ctx, policyID, func(r uow.Repos, p *domain.Policy) error {
		if err := authorize(p, to, actor); err != nil {
			return err
		}
		from := p.Status
		p.Status = to
		p.StatusUpdatedAt = u.now()
		if err := r.Policies.Save(ctx, p); err != nil {
			return storeErr("update", err)
		}
		u.log.Info("policy status changed",
			zap.String("policy_id", p.PolicyID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("actor_role", string(actor.Role)),
		)
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.PolicyTransitions.WithLabelValues(string(to)).Inc()
	return out, nil
}

func authorize(p *domain.Policy, to domain.Status, actor domain.Actor) error {
	if !domain.EdgeExists(p.Status, to) {
		return domain.ErrInvalidTransition
	}
	if !domain.CanTransition(p.Status, to, actor.Role) {
		return domain.ErrForbidden
	}
	// a client may only sign their own policy
	if actor.Role == domain.RoleClient && p.ClientID != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}

// Reject closes a pending policy and records why, in one transaction.
func (u *Usecase) Reject(ctx context.Context, in RejectInput, actor domain.Actor) (*domain.RejectionDetail, error) {
	if !actor.Known() {
		return nil, ErrMissingIdentity
	}
	if fe := checkReasons(in); !fe.Empty() {
		return nil, &ValidationError{Fields: fe}
	}

	var out *domain.RejectionDetail
	err := u.uow.WithinPolicyTx(ctx, in.PolicyID, func(r uow.Repos, p *domain.Policy) error {
		if p.Status == domain.StatusRejected {
			return domain.ErrAlreadyRejected
		}
		if err := authorize(p, domain.StatusRejected, actor); err != nil {
			return err
		}

		switch _, err := r.Rejections.GetByPolicyID(ctx, p.ID); {
		case err == nil:
			return domain.ErrAlreadyRejected
		case !errors.Is(err, domain.ErrRejectionNotFound):
			return err
		}

		now := u.now()
		comments := make(map[string]any, len(in.Comments))
		for k, v := range in.Comments {
			comments[k] = v
		}
		rd := &domain.RejectionDetail{
			PolicyID:   p.ID,
			Reasons:    append([]domain.RejectionReason(nil), in.Reasons...),
			Comments:   comments,
			RejectedBy: actor.ID,
			RejectedAt: now,
		}
		if err := r.Rejections.Create(ctx, rd); err != nil {
			return storeErr("reject", err)
		}

		p.Status = domain.StatusRejected
		p.StatusUpdatedAt = now
		if err := r.Policies.Save(ctx, p); err != nil {
			return storeErr("update", err)
		}
		out = rd
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.PolicyTransitions.WithLabelValues(string(domain.StatusRejected)).Inc()
	u.log.Info("policy rejected", zap.String("policy_id", in.PolicyID), zap.Int("reasons", len(in.Reasons)))
	return out, nil
}

func checkReasons(in RejectInput) rules.FieldErrors {
	fe := rules.FieldErrors{}
	if len(in.Reasons) == 0 {
		fe.Add("reasons", "Seleccione al menos un motivo de rechazo.")
		return fe
	}
	seen := map[domain.RejectionReason]bool{}
	for _, r := range in.Reasons {
		if !r.Valid() {
			fe.Add("reasons", fmt.Sprintf("Motivo de rechazo desconocido: %s.", r))
			continue
		}
		if seen[r] {
			fe.Add("reasons", "Motivos de rechazo repetidos.")
		}
		seen[r] = true
	}
	if seen[domain.ReasonOther] && in.Comments[string(domain.ReasonOther)] == "" {
		fe.Add("comments", "Describa el motivo \"otro\".")
	}
	for k := range in.Comments {
		if !seen[domain.RejectionReason(k)] {
			fe.Add("comments", fmt.Sprintf("Comentario para un motivo no seleccionado: %s.", k))
		}
	}
	return fe
}

func (u *Usecase) GetRejection(ctx context.Context, policyID string, actor domain.Actor) (*domain.RejectionDetail, error) {
	p, err := u.Get(ctx, policyID, actor)
	if err != nil {
		return nil, err
	}
	return u.rejections.GetByPolicyID(ctx, p.ID)
}

// AssignAgent is admin-only and limited to policies still in underwriting.
func (u *Usecase) AssignAgent(ctx context.Context, policyID, agentID string, actor domain.Actor) (*domain.Policy, error) {
	if !actor.Known() {
		return nil, ErrMissingIdentity
	}
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	var out *domain.Policy
	err := u.uow.WithinPolicyTx(ctx, policyID, func(r uow.Repos, p *domain.Policy) error {
		if p.Status != domain.StatusPending && p.Status != domain.StatusAwaitingSignature {
			return domain.ErrInvalidTransition
		}
		agent := agentID
		p.AgentID = &agent
		if err := r.Policies.Save(ctx, p); err != nil {
			return storeErr("update", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Delete(ctx context.Context, policyID string, actor domain.Actor) error {
	if !actor.Known() {
		return ErrMissingIdentity
	}
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	err := u.uow.WithinPolicyTx(ctx, policyID, func(r uow.Repos, p *domain.Policy) error {
		return storeErr("delete", r.Policies.Delete(ctx, p))
	})
	if err != nil {
		return err
	}
	u.log.Info("policy deleted", zap.String("policy_id", policyID))
	return nil
}
