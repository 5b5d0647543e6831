package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmarulo/salesledger-api/internal/application/dto"
	"github.com/jmarulo/salesledger-api/internal/application/usecase"
	"github.com/jmarulo/salesledger-api/internal/domain"
)

// SalesmanHandler maneja las peticiones HTTP para vendedores (protegido).
type SalesmanHandler struct {
	uc *usecase.SalesmanUseCase
}

// NewSalesmanHandler construye el handler.
func NewSalesmanHandler(uc *usecase.SalesmanUseCase) *SalesmanHandler {
	return &SalesmanHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendedores
// @Tags         salesmen
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesmanListResponse
// @Router       /api/salesmen [get]
func (h *SalesmanHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear vendedor (solo admin)
// @Tags         salesmen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesmanRequest  true  "Datos del vendedor"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/salesmen [post]
func (h *SalesmanHandler) Create(c *fiber.Ctx) error {
	var in dto.SalesmanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateCode) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "vendedor creado", ID: s.ID})
}

// Update godoc
// @Summary      Actualizar vendedor (solo admin)
// @Tags         salesmen
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del vendedor"
// @Param        body  body  dto.SalesmanRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/salesmen/{id} [put]
func (h *SalesmanHandler) Update(c *fiber.Ctx) error {
	var in dto.SalesmanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(c.Params("id"), in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vendedor no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicateCode) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el código ya existe"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.MessageResponse{Message: "vendedor actualizado"})
}

// Delete godoc
// @Summary      Eliminar vendedor (solo admin)
// @Tags         salesmen
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/salesmen/{id} [delete]
func (h *SalesmanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vendedor no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.MessageResponse{Message: "vendedor eliminado"})
}
