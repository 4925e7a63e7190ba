package output

// Code is a structured, machine-readable error code.
// Codes are grouped by family; each family maps to one numeric exit code.
type Code string

const (
	// General errors (exit code 1)
	CodeGeneralError    Code = "general_error"
	CodeInvalidInput    Code = "invalid_input"
	CodeOperationFailed Code = "operation_failed"

	// Configuration errors (exit code 2)
	CodeConfigNotFound   Code = "config_not_found"
	CodeConfigInvalid    Code = "config_invalid"
	CodeConfigParseError Code = "config_parse_error"
	CodeConfigSaveError  Code = "config_save_error"

	// Vault boundary errors (exit code 3)
	CodeRecordNotFound  Code = "record_not_found"
	CodeVaultAuthFailed Code = "vault_auth_failed"
	CodeVaultWriteFailed Code = "vault_write_failed"

	// Token validation errors (exit code 4)
	CodeTokenMalformed        Code = "token_malformed"
	CodeTokenSignatureInvalid Code = "token_signature_invalid"
	CodeTokenExpired          Code = "token_expired"

	// Local install errors (exit code 5)
	CodeBackupFailed Code = "backup_failed"
	CodeWriteFailed  Code = "write_failed"
	CodeLockFailed   Code = "lock_failed"

	// Partial rotation (exit code 6): the local credential was installed
	// but the vault publish failed, leaving the vault record stale.
	// This state requires operator reconciliation and is reported
	// distinctly from both success and total failure.
	CodeVaultStale Code = "vault_stale"
)
