package auth

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"semdex-backend/internal/application/activity"
	"semdex-backend/internal/application/emails"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/pkg/metrics"
	"semdex-backend/internal/pkg/validation"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	userSessionsPrefix = "user_sessions:"
	usedMagicLinkKey   = "magic_link:used:"
	auditModule        = "auth"
	mailTimeout        = 30 * time.Second
)

// LoginInput for login request body. Secret is accepted for forward compatibility and ignored.
type LoginInput struct {
	Identifier string  `json:"identifier" validate:"required,max=255"`
	Secret     *string `json:"secret,omitempty"`
}

// MagicLinkInput for magic-link request body.
type MagicLinkInput struct {
	Email string `json:"email" validate:"required,max=255"`
}

// MagicLinkResult is returned once the link has been handed to the mailer.
type MagicLinkResult struct {
	Accepted  bool      `json:"accepted"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ClientInfo is request metadata recorded on audit rows.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Auditor appends audit rows.
type Auditor interface {
	LogAudit(ctx context.Context, actor activity.Actor, in activity.AuditInput) (*domain.AuditLog, error)
}

// Service implements the portal's sign-in flows. Sessions themselves live in the session
// middleware; this service only tracks them per user in Redis.
type Service struct {
	Directory   *Directory
	Users       UserFinder
	Rdb         *redis.Client
	Links       *MagicLinkIssuer
	Mailer      emails.Sender
	LinkBaseURL string
	Audit       Auditor
	Metrics     *metrics.Metrics
}

// Login matches identifier against the static identities and resolves the user row.
func (s *Service) Login(ctx context.Context, in LoginInput, client ClientInfo) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	kind := validation.ClassifyIdentifier(in.Identifier)
	identity, ok := s.Directory.Match(in.Identifier)
	if !ok {
		s.Metrics.ObserveLogin(kind, false)
		log.Info().Str("kind", kind).Msg("login rejected: unknown identifier")
		return nil, ErrInvalidCredentials
	}
	user, err := s.Users.FindByEmail(ctx, identity.Email)
	if err != nil {
		s.Metrics.ObserveLogin(kind, false)
		return nil, err
	}
	if err := s.audit(ctx, user.ID, "LOGIN", "Signed in with "+kind, client); err != nil {
		return nil, err
	}
	s.Metrics.ObserveLogin(kind, true)
	return user, nil
}

// StartSession records sessionID under the user's session set.
func (s *Service) StartSession(ctx context.Context, userID uint, sessionID string) error {
	return s.Rdb.SAdd(ctx, userSessionsKey(userID), sessionID).Err()
}

// EndSession forgets sessionID and records the logout. It never fails.
func (s *Service) EndSession(ctx context.Context, identity *SessionIdentity, sessionID string, client ClientInfo) {
	if identity == nil {
		return
	}
	if sessionID != "" {
		if err := s.Rdb.SRem(ctx, userSessionsKey(identity.UserID), sessionID).Err(); err != nil {
			log.Warn().Err(err).Uint("user_id", identity.UserID).Msg("logout: untrack session")
		}
	}
	if err := s.audit(ctx, identity.UserID, "LOGOUT", "Signed out", client); err != nil {
		log.Warn().Err(err).Uint("user_id", identity.UserID).Msg("logout: audit row not written")
	}
}

// MagicLink issues a single-use sign-in link and hands it to the mailer in the background.
// Delivery errors are logged only.
func (s *Service) MagicLink(ctx context.Context, in MagicLinkInput) (*MagicLinkResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, domain.NewValidationError("Invalid input", map[string]string{"email": "email"})
	}
	identity, ok := s.Directory.MatchEmail(in.Email)
	if !ok {
		s.Metrics.ObserveMagicLink("request", false)
		return nil, ErrUnknownEmail
	}
	token, expires, err := s.Links.Issue(identity.Email)
	if err != nil {
		return nil, err
	}
	link, err := s.buildLink(token)
	if err != nil {
		return nil, err
	}
	s.Metrics.ObserveMagicLink("request", true)

	mailer := s.Mailer
	if mailer == nil {
		mailer = emails.LogSender{}
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailTimeout)
		defer cancel()
		if err := mailer.SendMagicLink(sendCtx, identity.Email, identity.FullName, link, expires); err != nil {
			s.Metrics.ObserveMagicLink("delivery", false)
			log.Error().Err(err).Str("to", identity.Email).Msg("magic link delivery failed")
			return
		}
		s.Metrics.ObserveMagicLink("delivery", true)
	}()

	return &MagicLinkResult{Accepted: true, ExpiresAt: expires}, nil
}

// RedeemMagicLink verifies token, burns it, and resolves the user it was issued for.
func (s *Service) RedeemMagicLink(ctx context.Context, token string, client ClientInfo) (*domain.User, error) {
	if token == "" {
		return nil, domain.NewValidationError("Invalid input", map[string]string{"token": "required"})
	}
	claims, err := s.Links.Parse(token)
	if err != nil {
		s.Metrics.ObserveMagicLink("redeem", false)
		log.Info().Err(err).Msg("magic link rejected")
		return nil, ErrInvalidMagicLink
	}
	identity, ok := s.Directory.MatchEmail(claims.Email)
	if !ok {
		s.Metrics.ObserveMagicLink("redeem", false)
		return nil, ErrUnknownEmail
	}
	// resolve the user before burning the token so a store failure leaves it redeemable
	user, err := s.Users.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	ttl := claims.ExpiresAt.Time.Sub(s.Links.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	usedKey := usedMagicLinkKey + claims.ID
	fresh, err := s.Rdb.SetNX(ctx, usedKey, claims.Email, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !fresh {
		s.Metrics.ObserveMagicLink("redeem", false)
		return nil, ErrMagicLinkUsed
	}
	if err := s.audit(ctx, user.ID, "LOGIN", "Signed in with magic link", client); err != nil {
		if delErr := s.Rdb.Del(context.WithoutCancel(ctx), usedKey).Err(); delErr != nil {
			log.Warn().Err(delErr).Msg("magic link: used marker not released")
		}
		return nil, err
	}
	s.Metrics.ObserveMagicLink("redeem", true)
	return user, nil
}

// CurrentUser returns the stored row for the session user. A missing row is treated as
// an invalid session.
func (s *Service) CurrentUser(ctx context.Context, sessionUser interface{}) (*domain.User, error) {
	identity, err := VerifyUser(sessionUser)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.FindByID(ctx, identity.UserID)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) audit(ctx context.Context, userID uint, action, details string, client ClientInfo) error {
	if s.Audit == nil {
		return nil
	}
	_, err := s.Audit.LogAudit(ctx, activity.Actor{UserID: &userID, IP: client.IP, UserAgent: client.UserAgent},
		activity.AuditInput{Action: action, Module: auditModule, Details: details})
	return err
}

func (s *Service) buildLink(token string) (string, error) {
	u, err := url.Parse(s.LinkBaseURL)
	if err != nil {
		return "", fmt.Errorf("magic link base url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func userSessionsKey(userID uint) string {
	return userSessionsPrefix + strconv.FormatUint(uint64(userID), 10)
}
