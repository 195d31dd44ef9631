package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims are the informational fields decoded from the bearer token. They
// are read without signature verification and are used only for display
// hints; the server remains the authority on whether the token is valid.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the stored token's payload. The second return is false
// when there is no token or it does not parse as a JWT.
func (s *Store) Claims() (Claims, bool) {
	if s.token == "" {
		return Claims{}, false
	}

	parser := new(jwt.Parser)
	token, _, err := parser.ParseUnverified(s.token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, false
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}

	claims := Claims{}
	if sub, ok := mapClaims["sub"]; ok {
		claims.Subject = claimString(sub)
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, true
}

// The server issues numeric subjects; other issuers use strings.
func claimString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}
