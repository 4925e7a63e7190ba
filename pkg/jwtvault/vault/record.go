package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoSigningMaterial indicates the configuration record carries no
// signing secret in its password field.
var ErrNoSigningMaterial = errors.New("configuration record has no signing material")

// Issuance is the decoded, validated content of the configuration record:
// the signing secret plus the effective issuance parameters.
type Issuance struct {
	Secret   []byte
	Issuer   string
	Audience string
	Validity time.Duration
}

// IssuanceDefaults are the locally configured issuance parameters, applied
// where the record carries no override.
type IssuanceDefaults struct {
	Issuer   string
	Audience string
	Validity time.Duration
}

// issuanceOverrides is the optional JSON object in the configuration
// record's notes field.
type issuanceOverrides struct {
	Issuer          string `json:"issuer"`
	Audience        string `json:"audience"`
	ExpirationHours int    `json:"expiration_hours"`
}

// DecodeIssuance validates and decodes the configuration record up front.
// The signing secret lives in the password field and is required; the
// login field may override the issuer, and the notes field may carry a
// JSON object overriding issuer, audience, or expiration_hours. Every
// field is checked here so a bad record fails before any token is minted
// or any file touched.
func DecodeIssuance(rec Record, defaults IssuanceDefaults) (Issuance, error) {
	secret := strings.TrimSpace(rec[FieldPassword])
	if secret == "" {
		return Issuance{}, ErrNoSigningMaterial
	}

	iss := Issuance{
		Secret:   []byte(secret),
		Issuer:   defaults.Issuer,
		Audience: defaults.Audience,
		Validity: defaults.Validity,
	}

	if login := strings.TrimSpace(rec[FieldLogin]); login != "" {
		iss.Issuer = login
	}

	if notes := strings.TrimSpace(rec[FieldNotes]); strings.HasPrefix(notes, "{") {
		var ov issuanceOverrides
		if err := json.Unmarshal([]byte(notes), &ov); err != nil {
			return Issuance{}, fmt.Errorf("configuration record notes are not valid JSON: %w", err)
		}
		if ov.Issuer != "" {
			iss.Issuer = ov.Issuer
		}
		if ov.Audience != "" {
			iss.Audience = ov.Audience
		}
		if ov.ExpirationHours != 0 {
			if ov.ExpirationHours < 0 {
				return Issuance{}, fmt.Errorf("configuration record expiration_hours must be positive, got %d", ov.ExpirationHours)
			}
			iss.Validity = time.Duration(ov.ExpirationHours) * time.Hour
		}
	}

	if iss.Issuer == "" {
		return Issuance{}, errors.New("no issuer configured locally or in the configuration record")
	}
	if iss.Audience == "" {
		return Issuance{}, errors.New("no audience configured locally or in the configuration record")
	}
	if iss.Validity <= 0 {
		return Issuance{}, fmt.Errorf("validity must be positive, got %v", iss.Validity)
	}

	return iss, nil
}

// CredentialMetadata is the JSON written to the authoritative record's
// notes field alongside the token value.
type CredentialMetadata struct {
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
}

// EncodeMetadata renders the rotation metadata for the notes field.
func EncodeMetadata(issuedAt, expiresAt time.Time) string {
	data, _ := json.Marshal(CredentialMetadata{
		IssuedAt:  issuedAt.UTC().Format(time.RFC3339),
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
	return string(data)
}
