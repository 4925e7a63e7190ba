package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject and supplemental claim values baked into every minted token.
const (
	Subject       = "api-development-access"
	TeamName      = "API Engineers"
	ClaimsVersion = "1.0"
)

// DefaultPermissions is the permission set granted by a minted token.
var DefaultPermissions = []string{"api:read", "api:write", "api:deploy"}

// Claims is the full claim set carried by a credential token.
type Claims struct {
	jwt.RegisteredClaims
	Team        string   `json:"team,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	GeneratedAt string   `json:"generated_at,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// Credential is the distributable artifact: an immutable signed token plus
// the issuance metadata bound into it. Rotation always produces a new
// Credential; an existing one is never mutated.
type Credential struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
	Audience  string
}
