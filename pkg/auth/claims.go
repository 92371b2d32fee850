package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the coarse authorization level carried in access tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID int64
	Role   Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT presented by clients. The user id
// is carried both as a numeric claim and as the standard subject.
type AccessTokenClaims struct {
	UserID int64 `json:"user_id"`
	Role   Role  `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token grants staff privileges.
func (c *AccessTokenClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

func subjectFor(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
