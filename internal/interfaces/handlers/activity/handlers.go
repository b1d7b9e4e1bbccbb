package activity

import (
	activitysvc "semdex-backend/internal/application/activity"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers appends client-reported activity rows for the session user.
type Handlers struct {
	Service *activitysvc.Service
}

var errBadBody = domain.NewValidationError("Invalid request body", nil)

// LogTransaction POST /api/v1/log/transaction
func (h *Handlers) LogTransaction(c *fiber.Ctx) error {
	var req activitysvc.TransactionInput
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, errBadBody)
	}
	row, err := h.Service.LogTransaction(c.UserContext(), actor(c), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Transaction logged successfully", row, nil)
}

// LogAudit POST /api/v1/log/audit
func (h *Handlers) LogAudit(c *fiber.Ctx) error {
	var req activitysvc.AuditInput
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, errBadBody)
	}
	row, err := h.Service.LogAudit(c.UserContext(), actor(c), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Audit entry logged successfully", row, nil)
}

func actor(c *fiber.Ctx) activitysvc.Actor {
	a := activitysvc.Actor{IP: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
	if identity := middleware.AuthUser(c); identity != nil {
		id := identity.UserID
		a.UserID = &id
	}
	return a
}
