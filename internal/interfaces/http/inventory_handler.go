package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/application/inventory"
	"github.com/jhoicas/Textil-api/internal/application/snapshot"
)

// InventoryHandler maneja el ledger de stock, las alertas y el snapshot (protegido).
type InventoryHandler struct {
	register *inventory.RegisterTransactionUseCase
	alerts   *inventory.AlertsUseCase
	hub      *snapshot.Hub
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterTransactionUseCase, alerts *inventory.AlertsUseCase, hub *snapshot.Hub) *InventoryHandler {
	return &InventoryHandler{register: register, alerts: alerts, hub: hub}
}

// RegisterTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  in suma el delta, out resta con piso en cero, adjustment fija el nivel absoluto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "item_id, type (in|out|adjustment), quantity, reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.register.Register(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Historial de transacciones
// @Description  Orden descendente por fecha. item_id vacío lista todas las del usuario,
//               incluidas las de artículos ya borrados.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "filtrar por artículo"
// @Param        limit    query  int     false  "máximo de resultados (default 50, tope 200)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.register.List(GetUserID(c), c.Query("item_id"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Alertas de stock bajo
// @Description  Derivadas del estado actual: un artículo en o bajo su mínimo genera
//               exactamente una alerta; en cero la severidad es critical.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertDTO
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alerts.Alerts(GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.alerts.Stats(GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Snapshot godoc
// @Summary      Snapshot completo del usuario
// @Description  Conjuntos enteros (artículos, historial, alertas, stats), no deltas.
//               Seq crece de forma monótona: el cliente descarta respuestas viejas.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/inventory/snapshot [get]
func (h *InventoryHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.hub.Latest(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.SnapshotResponse{
		Seq:          snap.Seq,
		TakenAt:      snap.TakenAt,
		Items:        inventory.ToItemResponses(snap.Items),
		Transactions: inventory.ToTransactionResponses(snap.Transactions),
		Alerts:       inventory.ToAlertDTOs(snap.Alerts),
		Stats:        inventory.ToStatsResponse(snap.Stats),
	})
}
