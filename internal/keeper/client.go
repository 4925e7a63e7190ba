// Package keeper adapts the Keeper Secrets Manager SDK to the vault.Store
// boundary. Record-level encryption, access control, and audit are the
// vendor's; this package only maps records to field sets and SDK failures
// onto the vault error taxonomy.
package keeper

import (
	"context"
	"fmt"
	"os"

	ksm "github.com/keeper-security/secrets-manager-go/core"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/vault"
)

// Client implements vault.Store against a Keeper Secrets Manager
// application. Keeper applies record saves as single-record replacements,
// which satisfies the per-record atomicity precondition on vault.Store.
type Client struct {
	sm *ksm.SecretsManager
}

// NewClient opens a client using the key-value storage file written by a
// prior one-time-token redemption (see Redeem).
func NewClient(configPath string) (*Client, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%w: client storage %s not readable: %v", vault.ErrAuthFailed, configPath, err)
	}

	sm := ksm.NewSecretsManager(&ksm.ClientOptions{
		Config: ksm.NewFileKeyValueStorage(configPath),
	})
	return &Client{sm: sm}, nil
}

// Redeem exchanges a one-time access token for client keys, persisting
// them to the given storage file. A second redemption of the same token
// fails vault-side; callers should back up and replace existing storage
// before redeeming.
func Redeem(oneTimeToken, configPath string) error {
	sm := ksm.NewSecretsManager(&ksm.ClientOptions{
		Token:  oneTimeToken,
		Config: ksm.NewFileKeyValueStorage(configPath),
	})

	// The first fetch performs the token exchange and persists the
	// resulting client keys.
	if _, err := sm.GetSecrets([]string{}); err != nil {
		return fmt.Errorf("%w: one-time token redemption: %v", vault.ErrAuthFailed, err)
	}
	return nil
}

// GetRecord fetches one record and surfaces its standard fields. The SDK
// carries no context support; calls are bounded by its internal HTTP
// timeouts, so ctx is accepted for interface fit only.
func (c *Client) GetRecord(_ context.Context, uid string) (vault.Record, error) {
	records, err := c.sm.GetSecrets([]string{uid})
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", vault.ErrAuthFailed, uid, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", vault.ErrRecordNotFound, uid)
	}

	r := records[0]
	return vault.Record{
		vault.FieldTitle:    r.Title(),
		vault.FieldLogin:    r.GetFieldValueByType("login"),
		vault.FieldPassword: r.Password(),
		vault.FieldNotes:    r.Notes(),
	}, nil
}

// UpdateRecord writes the given fields back to the record in a single
// record save.
func (c *Client) UpdateRecord(_ context.Context, uid string, fields vault.Record) error {
	records, err := c.sm.GetSecrets([]string{uid})
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", vault.ErrAuthFailed, uid, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: %s", vault.ErrRecordNotFound, uid)
	}

	r := records[0]
	if v, ok := fields[vault.FieldTitle]; ok {
		r.SetTitle(v)
	}
	if v, ok := fields[vault.FieldPassword]; ok {
		r.SetPassword(v)
	}
	if v, ok := fields[vault.FieldNotes]; ok {
		r.SetNotes(v)
	}

	if err := c.sm.Save(r); err != nil {
		return fmt.Errorf("%w: save %s: %v", vault.ErrWriteFailed, uid, err)
	}
	return nil
}
