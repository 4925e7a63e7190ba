package rotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/config"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/store"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/token"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

var (
	// ErrStaleOrInvalidToken indicates the fetched value is expired or
	// structurally broken. The local credential is left untouched: a
	// good local token is never replaced with a bad one.
	ErrStaleOrInvalidToken = errors.New("vault token is stale or invalid")

	// ErrLocalInstallFailed indicates the fetched token validated but
	// could not be installed. The previous local credential remains
	// intact because the install mutates visible state only on its final
	// atomic step.
	ErrLocalInstallFailed = errors.New("local credential install failed")
)

// SyncResult describes a completed sync.
type SyncResult struct {
	Installed bool
	LocalPath string
	ExpiresAt time.Time
}

// Syncer is the client-side role: it retrieves the authoritative token and
// installs it locally.
type Syncer struct {
	Vault vault.Store
	Now   Clock
}

// Sync performs one fetch-validate-install pass. It is idempotent with
// respect to the vault record: an unchanged record yields the same local
// content (and one more backup; backups are not deduplicated).
func (s *Syncer) Sync(ctx context.Context, cfg config.Config) (SyncResult, error) {
	var res SyncResult

	rec, err := s.Vault.GetRecord(ctx, cfg.JWTRecordUID)
	if err != nil {
		return res, fmt.Errorf("fetch record %s: %w", cfg.JWTRecordUID, err)
	}

	value := strings.TrimSpace(rec[vault.FieldPassword])
	if value == "" {
		return res, fmt.Errorf("%w: record %s carries no token value", ErrStaleOrInvalidToken, cfg.JWTRecordUID)
	}

	// The consumer holds no signing material, so validation reads the
	// unsigned expiry claim only. An expired or broken token aborts the
	// sync before any local mutation.
	claims, err := token.PeekExpiry(value, s.now())
	if err != nil {
		return res, fmt.Errorf("%w: record %s: %w", ErrStaleOrInvalidToken, cfg.JWTRecordUID, err)
	}

	res.LocalPath = cfg.CredentialPath()
	if err := store.Install(res.LocalPath, value); err != nil {
		return res, fmt.Errorf("%w: %w", ErrLocalInstallFailed, err)
	}

	res.Installed = true
	res.ExpiresAt = claims.ExpiresAt.Time
	return res, nil
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
