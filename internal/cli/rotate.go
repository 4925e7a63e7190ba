package cli

import (
	"context"
	"errors"
	"time"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/notify"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/rotation"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/store"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

// Rotate mints a new credential, installs it locally, and publishes it to
// the vault.
func (c *CLI) Rotate() error {
	vs, err := c.store()
	if err != nil {
		return err
	}

	publisher := &rotation.Publisher{
		Vault: vs,
		Sink:  notify.LogSink{Path: c.cfg.NotificationLogPath()},
		Now:   rotation.Clock(c.now),
	}

	res, rerr := publisher.Rotate(context.Background(), c.cfg)
	if rerr != nil {
		return classifyRotateError(rerr, res)
	}

	c.out.Successf("credential rotated, expires %s", res.Credential.ExpiresAt.UTC().Format(time.RFC3339))
	c.out.WriteLine("local: " + res.LocalPath)
	c.out.WriteLine("vault: record " + c.cfg.JWTRecordUID)
	if !res.Notified {
		c.out.Warnf("rotation event could not be appended to %s", c.cfg.NotificationLogPath())
	}
	return nil
}

// classifyRotateError maps a rotation failure onto a structured code. The
// partial-success state gets its own exit code so schedulers can tell
// "vault is stale, local is current" apart from a rotation that produced
// nothing.
func classifyRotateError(err error, res rotation.RotationResult) *output.Error {
	switch {
	case errors.Is(err, rotation.ErrVaultWritePartial):
		return output.NewErrorf(output.CodeVaultStale, "%v", err).
			WithDetail("local_path", res.LocalPath)
	case errors.Is(err, rotation.ErrSigningMaterialUnavailable):
		switch {
		case errors.Is(err, vault.ErrRecordNotFound):
			return output.NewErrorf(output.CodeRecordNotFound, "%v", err)
		case errors.Is(err, vault.ErrNoSigningMaterial):
			return output.NewErrorf(output.CodeConfigInvalid, "%v", err)
		default:
			return output.NewErrorf(output.CodeVaultAuthFailed, "%v", err)
		}
	case errors.Is(err, store.ErrBackupFailed):
		return output.NewErrorf(output.CodeBackupFailed, "%v", err)
	case errors.Is(err, store.ErrLockFailed):
		return output.NewErrorf(output.CodeLockFailed, "%v", err)
	case errors.Is(err, store.ErrWriteFailed):
		return output.NewErrorf(output.CodeWriteFailed, "%v", err)
	default:
		return output.NewErrorf(output.CodeOperationFailed, "rotation failed: %v", err)
	}
}
