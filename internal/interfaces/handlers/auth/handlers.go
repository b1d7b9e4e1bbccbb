package auth

import (
	authsvc "semdex-backend/internal/application/auth"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

var errBadBody = domain.NewValidationError("Invalid request body", nil)

// Login POST /api/v1/auth/login: match identifier, create session, track it, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, errBadBody)
	}
	user, err := h.Service.Login(c.UserContext(), req, clientInfo(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return h.startSession(c, user, "Login successful")
}

// MagicLink POST /api/v1/auth/magic-link: issue and send a sign-in link.
func (h *Handlers) MagicLink(c *fiber.Ctx) error {
	var req authsvc.MagicLinkInput
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, errBadBody)
	}
	res, err := h.Service.MagicLink(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Magic link sent", res, nil)
}

// RedeemMagicLink GET /api/v1/auth/magic-link/verify?token=: burn the token and sign in.
func (h *Handlers) RedeemMagicLink(c *fiber.Ctx) error {
	user, err := h.Service.RedeemMagicLink(c.UserContext(), c.Query("token"), clientInfo(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return h.startSession(c, user, "Login successful")
}

// Me GET /api/v1/auth/me: return the stored row of the session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	if sessionID == "" {
		cookieVal := c.Cookies(middleware.SessionCookieName)
		log.Info().Str("path", "/auth/me").
			Bool("cookie_present", cookieVal != "").
			Msg("auth/me: no session id")
	} else if sessionUser == nil {
		log.Info().Str("path", "/auth/me").Str("session_id_prefix", truncate(sessionID, 8)).
			Msg("auth/me: session id present but no user in session data")
	}

	user, err := h.Service.CurrentUser(c.UserContext(), sessionUser)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout: untrack and delete the session, clear the cookie. Always 200.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	identity, _ := authsvc.VerifyUser(middleware.GetUser(c))
	ctx := c.UserContext()

	h.Service.EndSession(ctx, identity, sessionID, clientInfo(c))
	if sessionID != "" {
		if err := h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err(); err != nil {
			log.Warn().Err(err).Msg("logout: session key not deleted")
		}
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

func (h *Handlers) startSession(c *fiber.Ctx, user *domain.User, message string) error {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
	})
	if err := h.Service.StartSession(c.UserContext(), user.ID, sessionID); err != nil {
		middleware.DestroySession(c)
		return response.FromError(c, err)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, message, fiber.Map{"user": user}, nil)
}

func clientInfo(c *fiber.Ctx) authsvc.ClientInfo {
	return authsvc.ClientInfo{IP: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
