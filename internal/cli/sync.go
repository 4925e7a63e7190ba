package cli

import (
	"context"
	"errors"
	"time"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/rotation"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/store"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/token"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

// Sync fetches the authoritative credential from the vault, validates its
// expiry, and installs it locally.
func (c *CLI) Sync() error {
	vs, err := c.store()
	if err != nil {
		return err
	}

	syncer := &rotation.Syncer{
		Vault: vs,
		Now:   rotation.Clock(c.now),
	}

	res, serr := syncer.Sync(context.Background(), c.cfg)
	if serr != nil {
		return classifySyncError(serr)
	}

	c.out.Successf("credential installed, expires %s", res.ExpiresAt.UTC().Format(time.RFC3339))
	c.out.WriteLine("local: " + res.LocalPath)
	return nil
}

func classifySyncError(err error) *output.Error {
	switch {
	case errors.Is(err, vault.ErrRecordNotFound):
		return output.NewErrorf(output.CodeRecordNotFound, "%v", err)
	case errors.Is(err, vault.ErrAuthFailed):
		return output.NewErrorf(output.CodeVaultAuthFailed, "%v", err)
	case errors.Is(err, rotation.ErrStaleOrInvalidToken):
		if errors.Is(err, token.ErrExpiredToken) {
			return output.NewErrorf(output.CodeTokenExpired, "%v", err)
		}
		return output.NewErrorf(output.CodeTokenMalformed, "%v", err)
	case errors.Is(err, rotation.ErrLocalInstallFailed):
		switch {
		case errors.Is(err, store.ErrBackupFailed):
			return output.NewErrorf(output.CodeBackupFailed, "%v", err)
		case errors.Is(err, store.ErrLockFailed):
			return output.NewErrorf(output.CodeLockFailed, "%v", err)
		default:
			return output.NewErrorf(output.CodeWriteFailed, "%v", err)
		}
	default:
		return output.NewErrorf(output.CodeOperationFailed, "sync failed: %v", err)
	}
}
