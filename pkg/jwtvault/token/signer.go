// Package token mints and validates the signed bearer tokens distributed
// through the vault. Signing is symmetric (HS256); the algorithm identifier
// is part of the signed header and verification rejects any other method,
// so a token re-signed under a different algorithm never validates.
//
// All functions are stateless and safe for concurrent use with different
// secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMalformedToken indicates structurally invalid input, detected
	// before the secret is ever consulted.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidSignature indicates the signature does not match the
	// header and claims, or the signing method is not an accepted one.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpiredToken indicates the token's expiry has passed. A token
	// with a valid signature is still rejected once expired.
	ErrExpiredToken = errors.New("token expired")
)

// MintParams carries the issuance parameters for a single mint operation.
type MintParams struct {
	Issuer   string
	Audience string
	Now      time.Time
	Validity time.Duration
}

// Mint produces a new signed credential. The secret is borrowed read-only
// for the duration of the call and never retained.
func Mint(secret []byte, p MintParams) (Credential, error) {
	if len(secret) == 0 {
		return Credential{}, errors.New("signing material is empty")
	}
	if p.Validity <= 0 {
		return Credential{}, fmt.Errorf("validity must be positive, got %v", p.Validity)
	}

	now := p.Now.UTC().Truncate(time.Second)
	expires := now.Add(p.Validity)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Audience:  jwt.ClaimStrings{p.Audience},
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		Team:        TeamName,
		Permissions: DefaultPermissions,
		GeneratedAt: now.Format(time.RFC3339),
		Version:     ClaimsVersion,
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Credential{
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: expires,
		Issuer:    p.Issuer,
		Audience:  p.Audience,
	}, nil
}

// Verify checks a token's structure, signature, and expiry against the
// given secret at the given instant, and returns its claims on success.
func Verify(value string, secret []byte, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	return claims, nil
}

// PeekExpiry reads a token's claims without verifying its signature and
// checks the expiry against now. It is the consumer-side validation: the
// consumer holds no signing material, so only the unsigned claim fields
// are inspected. It never returns ErrInvalidSignature.
func PeekExpiry(value string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry claim", ErrMalformedToken)
	}
	if now.After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expired at %s", ErrExpiredToken,
			claims.ExpiresAt.Time.UTC().Format(time.RFC3339))
	}

	return claims, nil
}

// classifyParseError maps golang-jwt parse failures onto the package's
// error taxonomy. Structural errors are reported as malformed; method and
// signature mismatches as invalid signature; everything claim-related that
// matters here is expiry.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpiredToken, err)
	default:
		return fmt.Errorf("token verification failed: %w", err)
	}
}
