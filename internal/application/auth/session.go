package auth

import (
	"strconv"
)

// SessionIdentity is the user object kept in the Redis session and returned by /me.
type SessionIdentity struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// VerifyUser validates the session user and returns its identity.
// Session data round-trips through JSON, so ids arrive as float64.
func VerifyUser(sessionUser interface{}) (*SessionIdentity, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, ok := toUint(m["user_id"])
	if !ok || userID == 0 {
		return nil, ErrNotAuthenticated
	}
	return &SessionIdentity{
		UserID:   userID,
		FullName: str(m["full_name"]),
		Email:    str(m["email"]),
		Phone:    str(m["phone"]),
	}, nil
}

func toUint(v interface{}) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != float64(uint(n)) {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	case string:
		u, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return uint(u), true
	}
	return 0, false
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
