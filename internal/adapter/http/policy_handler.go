package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"insurance-brokerage/internal/adapter/middleware"
	domain "insurance-brokerage/internal/domain/policy"
	"insurance-brokerage/internal/rules"
	"insurance-brokerage/internal/usecase/policy"
)

type PolicyHandler struct{ uc *policy.Usecase }

func NewPolicyHandler(uc *policy.Usecase) *PolicyHandler { return &PolicyHandler{uc: uc} }

type transitionReq struct {
	Status domain.Status `json:"status" validate:"required"`
}

type rejectReq struct {
	Reasons  []domain.RejectionReason `json:"reasons"`
	Comments map[string]string        `json:"comments"`
}

type assignAgentReq struct {
	AgentID string `json:"agent_id" validate:"required,hex32"`
}

type ruleInfo struct {
	Code            rules.Code `json:"code"`
	Name            string     `json:"name"`
	Kind            string     `json:"kind"`
	PremiumEditable bool       `json:"premium_editable"`
}

func (h *PolicyHandler) ListRules(c echo.Context) error {
	codes := rules.Codes()
	out := make([]ruleInfo, 0, len(codes))
	for _, code := range codes {
		r, _ := rules.Get(code)
		out = append(out, ruleInfo{Code: code, Name: r.Name(), Kind: string(r.Kind()), PremiumEditable: r.PremiumEditable()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PolicyHandler) Defaults(c echo.Context) error {
	s, err := h.uc.Defaults(rules.Code(c.Param("code")))
	if errors.Is(err, policy.ErrUnknownProduct) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown product code"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Quote always answers 200 for a known product; blocking problems are in the body.
func (h *PolicyHandler) Quote(c echo.Context) error {
	var s rules.FormState
	if err := c.Bind(&s); err != nil {
		return badBody(c)
	}
	q, err := h.uc.Quote(s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *PolicyHandler) Submit(c echo.Context) error {
	var s rules.FormState
	if err := c.Bind(&s); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Submit(c.Request().Context(), s, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PolicyHandler) GetPolicy(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("policy_id"), middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PolicyHandler) Transition(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.Transition(c.Request().Context(), c.Param("policy_id"), req.Status, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PolicyHandler) Reject(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	rd, err := h.uc.Reject(c.Request().Context(), policy.RejectInput{
		PolicyID: c.Param("policy_id"),
		Reasons:  req.Reasons,
		Comments: req.Comments,
	}, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rd)
}

func (h *PolicyHandler) GetRejection(c echo.Context) error {
	rd, err := h.uc.GetRejection(c.Request().Context(), c.Param("policy_id"), middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rd)
}

func (h *PolicyHandler) AssignAgent(c echo.Context) error {
	var req assignAgentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.AssignAgent(c.Request().Context(), c.Param("policy_id"), req.AgentID, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PolicyHandler) DeletePolicy(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("policy_id"), middleware.ActorFrom(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
