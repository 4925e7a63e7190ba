package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jwtvault/jwtvault/pkg/jwtvault/output"
)

// oneTimeTokenPrefix is the expected prefix of a Keeper one-time access
// token.
const oneTimeTokenPrefix = "ksm_ott_"

// Setup redeems a one-time access token and writes the resulting client
// storage file. With an empty tokenArg the token is prompted for, hidden
// when stdin is a terminal.
func (c *CLI) Setup(tokenArg string) error {
	tok := strings.TrimSpace(tokenArg)
	if tok == "" {
		read, err := c.readSecretLine("One-time token: ")
		if err != nil {
			return output.NewErrorf(output.CodeInvalidInput, "failed to read one-time token: %v", err)
		}
		tok = read
	}
	if tok == "" {
		return output.NewError(output.CodeInvalidInput, "a one-time token is required")
	}

	if !strings.HasPrefix(tok, oneTimeTokenPrefix) {
		if c.stdinIsTerminal() {
			ok, err := c.confirm(fmt.Sprintf(
				"token does not start with %q; continue anyway? [y/N] ", oneTimeTokenPrefix))
			if err != nil {
				return output.NewErrorf(output.CodeInvalidInput, "failed to read confirmation: %v", err)
			}
			if !ok {
				return output.NewError(output.CodeInvalidInput, "setup cancelled")
			}
		} else {
			c.out.Warnf("token does not start with %q, continuing", oneTimeTokenPrefix)
		}
	}

	// Redeeming over existing client storage would corrupt it; move it
	// aside first so a failed redemption is recoverable.
	storagePath := c.cfg.KSMConfig
	if _, err := os.Stat(storagePath); err == nil {
		backupPath := storagePath + ".backup"
		_ = os.Remove(backupPath)
		if err := os.Rename(storagePath, backupPath); err != nil {
			return output.NewErrorf(output.CodeConfigSaveError,
				"failed to back up existing client storage: %v", err)
		}
		c.out.Warnf("existing client storage moved to %s", backupPath)
	}

	if err := c.redeem(tok, storagePath); err != nil {
		return output.NewErrorf(output.CodeVaultAuthFailed, "%v", err)
	}

	c.out.Successf("vault client storage written to %s", storagePath)
	return nil
}

func (c *CLI) stdinIsTerminal() bool {
	f, ok := c.stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readSecretLine reads one line from stdin, with echo disabled when stdin
// is a terminal.
func (c *CLI) readSecretLine(prompt string) (string, error) {
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(c.stderr, prompt)
		data, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(c.stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question on the terminal.
func (c *CLI) confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprint(c.stderr, prompt)
	line, err := bufio.NewReader(c.stdin).ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
