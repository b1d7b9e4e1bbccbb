package auth

import (
	"fmt"

	"semdex-backend/internal/domain"
)

var (
	ErrInvalidCredentials = domain.NewAuthError("Invalid credentials")
	ErrUnknownEmail       = domain.NewAuthError("Email is not registered for portal access")
	ErrInvalidMagicLink   = domain.NewAuthError("Invalid or expired magic link")
	ErrMagicLinkUsed      = domain.NewAuthError("Magic link has already been used")
	ErrNotAuthenticated   = domain.NewAuthError("Not authenticated")

	ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)
)
