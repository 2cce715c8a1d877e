package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/factura-pro/internal/application/billing"
	"github.com/jcamargo/factura-pro/internal/application/dto"
	"github.com/jcamargo/factura-pro/internal/domain"
)

// QuoteHandler expone la cotización de líneas sin persistencia (protegido).
type QuoteHandler struct {
	uc *billing.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *billing.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Quote godoc
// @Summary      Cotizar líneas (previsualización, sin persistir)
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "moneda y líneas a cotizar"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pricing/quote [post]
func (h *QuoteHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Quote(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "currency y al menos una línea con cantidad y precio no negativos son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
