package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/store"
	"github.com/jwtvault/jwtvault/pkg/jwtvault/token"
)

// Check inspects the locally installed credential without contacting the
// vault: does it exist, is it readable, and how long is it still valid.
func (c *CLI) Check() error {
	path := c.cfg.CredentialPath()

	value, err := store.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return output.NewErrorf(output.CodeOperationFailed,
				"no local credential at %s (run 'jwtvault sync' first)", path)
		}
		return output.NewErrorf(output.CodeOperationFailed, "failed to read local credential: %v", err)
	}
	if value == "" {
		return output.NewErrorf(output.CodeTokenMalformed, "local credential file %s is empty", path)
	}

	now := c.now()
	claims, err := token.PeekExpiry(value, now)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return output.NewErrorf(output.CodeTokenExpired, "local credential: %v", err)
		}
		return output.NewErrorf(output.CodeTokenMalformed, "local credential: %v", err)
	}

	remaining := claims.ExpiresAt.Time.Sub(now).Round(time.Minute)
	c.out.Successf("local credential valid, expires %s (%s remaining)",
		claims.ExpiresAt.Time.UTC().Format(time.RFC3339), remaining)
	c.out.WriteLine("issuer: " + claims.Issuer)
	c.out.WriteLine("token preview: " + output.Preview(value))

	if backups, berr := store.Backups(path); berr == nil {
		c.out.WriteLine(fmt.Sprintf("rollback copies retained: %d", len(backups)))
	}
	return nil
}
