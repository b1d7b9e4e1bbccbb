package dashboard

import (
	"strconv"

	dashsvc "semdex-backend/internal/application/dashboard"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the session-gated dashboard reads.
type Handlers struct {
	Service *dashsvc.Service
}

// GetOverview GET /api/v1/dashboard/get-overview
func (h *Handlers) GetOverview(c *fiber.Ctx) error {
	out, err := h.Service.Overview(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Overview fetched successfully", out, nil)
}

// GetShareholding GET /api/v1/dashboard/get-shareholding
func (h *Handlers) GetShareholding(c *fiber.Ctx) error {
	out, err := h.Service.Shareholding(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Shareholding fetched successfully", out, nil)
}

// GetSaleBreakdown GET /api/v1/dashboard/get-sale-breakdown
func (h *Handlers) GetSaleBreakdown(c *fiber.Ctx) error {
	out, err := h.Service.SaleBreakdown(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sale breakdown fetched successfully", out, nil)
}

// GetDividends GET /api/v1/dashboard/get-dividends
func (h *Handlers) GetDividends(c *fiber.Ctx) error {
	out, err := h.Service.Dividends(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dividends fetched successfully", out, nil)
}

// GetTransactions GET /api/v1/dashboard/get-transactions?limit=
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	limit, err := limitParam(c)
	if err != nil {
		return response.FromError(c, err)
	}
	rows, err := h.Service.Transactions(c.UserContext(), limit)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Transactions fetched successfully", rows, fiber.Map{"limit": limit, "count": len(rows)})
}

// GetAuditLogs GET /api/v1/dashboard/get-audit-logs?limit=
// Only rows of the session user are returned.
func (h *Handlers) GetAuditLogs(c *fiber.Ctx) error {
	limit, err := limitParam(c)
	if err != nil {
		return response.FromError(c, err)
	}
	identity := middleware.AuthUser(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	rows, err := h.Service.AuditLogs(c.UserContext(), identity.UserID, limit)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Audit logs fetched successfully", rows, fiber.Map{"limit": limit, "count": len(rows)})
}

// GetBrokers GET /api/v1/dashboard/get-brokers
func (h *Handlers) GetBrokers(c *fiber.Ctx) error {
	rows, err := h.Service.Brokers(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Brokers fetched successfully", rows, nil)
}

// GetSettings GET /api/v1/dashboard/get-settings
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	rows, err := h.Service.Settings(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Settings fetched successfully", rows, nil)
}

// limitParam reads ?limit=. Anything that is not an integer is rejected before range checks.
func limitParam(c *fiber.Ctx) (int, error) {
	var q dashsvc.LimitQuery
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, domain.NewValidationError("Invalid input", map[string]string{"limit": "integer"})
		}
		q.Limit = &n
	}
	return dashsvc.ResolveLimit(q)
}
