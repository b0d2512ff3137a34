package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"insurance-brokerage/internal/adapter/middleware"
	"insurance-brokerage/internal/usecase/product"
)

type ProductHandler struct{ uc *product.Usecase }

func NewProductHandler(uc *product.Usecase) *ProductHandler { return &ProductHandler{uc: uc} }

func (h *ProductHandler) ListProducts(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req product.UpsertInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.Create(c.Request().Context(), req, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req product.UpsertInput
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.Update(c.Request().Context(), c.Param("product_id"), req, middleware.ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
