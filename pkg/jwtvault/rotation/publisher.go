// Package rotation implements the credential lifecycle: the publisher
// mints and distributes a new token, the syncer installs the current one
// on a consumer machine. Both are bounded, single-shot operations; the
// caller owns scheduling and may wrap either call in a timeout.
package rotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/config"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/notify"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/store"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/token"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

var (
	// ErrSigningMaterialUnavailable indicates the configuration record
	// could not be fetched or decoded. The rotation attempt is abandoned;
	// it is not retried within this call.
	ErrSigningMaterialUnavailable = errors.New("signing material unavailable")

	// ErrVaultWritePartial indicates the new credential was installed
	// locally but the vault publish failed. The local file is current and
	// the vault record is stale: a detectable inconsistent state an
	// operator must reconcile, reported distinctly from both success and
	// total failure.
	ErrVaultWritePartial = errors.New("vault publish failed after local install")
)

// Clock supplies the current time; nil means time.Now.
type Clock func() time.Time

// RotationResult describes a completed (or partially completed) rotation.
type RotationResult struct {
	Credential token.Credential
	LocalPath  string
	Published  bool
	Notified   bool
}

// Publisher is the server-side role: it mints a new credential and
// publishes it as the authoritative value.
type Publisher struct {
	Vault vault.Store
	Sink  notify.Sink
	Now   Clock
}

// Rotate performs one full rotation. The local file is written before the
// vault publish, so the operator always holds a local copy of the minted
// token even when the publish fails.
func (p *Publisher) Rotate(ctx context.Context, cfg config.Config) (RotationResult, error) {
	var res RotationResult

	rec, err := p.Vault.GetRecord(ctx, cfg.ConfigRecordUID)
	if err != nil {
		return res, fmt.Errorf("%w: fetch record %s: %w", ErrSigningMaterialUnavailable, cfg.ConfigRecordUID, err)
	}

	iss, err := vault.DecodeIssuance(rec, vault.IssuanceDefaults{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Validity: cfg.Validity(),
	})
	if err != nil {
		return res, fmt.Errorf("%w: record %s: %w", ErrSigningMaterialUnavailable, cfg.ConfigRecordUID, err)
	}

	cred, err := token.Mint(iss.Secret, token.MintParams{
		Issuer:   iss.Issuer,
		Audience: iss.Audience,
		Now:      p.now(),
		Validity: iss.Validity,
	})
	// The secret is borrowed only for the mint; scrub our copy before
	// anything else can go wrong.
	for i := range iss.Secret {
		iss.Secret[i] = 0
	}
	if err != nil {
		return res, fmt.Errorf("failed to mint credential: %w", err)
	}

	res.LocalPath = cfg.CredentialPath()
	if err := store.Install(res.LocalPath, cred.Value); err != nil {
		return res, err
	}
	res.Credential = cred

	err = p.Vault.UpdateRecord(ctx, cfg.JWTRecordUID, vault.Record{
		vault.FieldPassword: cred.Value,
		vault.FieldNotes:    vault.EncodeMetadata(cred.IssuedAt, cred.ExpiresAt),
	})
	if err != nil {
		return res, fmt.Errorf("%w: record %s: %v", ErrVaultWritePartial, cfg.JWTRecordUID, err)
	}
	res.Published = true

	if p.Sink != nil {
		if err := p.Sink.RotationEvent(notify.NewRotationEvent(cred.ExpiresAt, cfg.JWTRecordUID)); err == nil {
			res.Notified = true
		}
	}

	return res, nil
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
