package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"insurance-brokerage/internal/usecase/client"
)

type ClientHandler struct{ uc *client.Usecase }

func NewClientHandler(uc *client.Usecase) *ClientHandler { return &ClientHandler{uc: uc} }

type createClientReq struct {
	FullName       string `json:"full_name" validate:"required,max=160"`
	Email          string `json:"email" validate:"required,max=160"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	DocumentNumber string `json:"document_number" validate:"omitempty,max=32"`
	BirthDate      string `json:"birth_date" validate:"omitempty,isodate"`
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	p, err := h.uc.Get(c.Request().Context(), c.Param("client_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreateClient checks shape here; the Spanish field messages come from the usecase.
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	p, err := h.uc.Create(c.Request().Context(), client.CreateInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}
