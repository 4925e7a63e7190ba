package output

// ExitCode represents numeric CLI exit codes. Consumers of the rotate and
// sync commands (cron wrappers, alerting glue) branch on these, so the
// mapping is part of the CLI contract and must stay stable.
type ExitCode int

const (
	ExitSuccess         ExitCode = 0
	ExitGeneralError    ExitCode = 1
	ExitConfigError     ExitCode = 2
	ExitVaultError      ExitCode = 3
	ExitTokenError      ExitCode = 4
	ExitInstallError    ExitCode = 5
	ExitPartialRotation ExitCode = 6
)

// codeToExitCode maps structured codes to numeric exit codes.
var codeToExitCode = map[Code]ExitCode{
	// General errors (exit code 1)
	CodeGeneralError:    ExitGeneralError,
	CodeInvalidInput:    ExitGeneralError,
	CodeOperationFailed: ExitGeneralError,

	// Config errors (exit code 2)
	CodeConfigNotFound:   ExitConfigError,
	CodeConfigInvalid:    ExitConfigError,
	CodeConfigParseError: ExitConfigError,
	CodeConfigSaveError:  ExitConfigError,

	// Vault errors (exit code 3)
	CodeRecordNotFound:   ExitVaultError,
	CodeVaultAuthFailed:  ExitVaultError,
	CodeVaultWriteFailed: ExitVaultError,

	// Token errors (exit code 4)
	CodeTokenMalformed:        ExitTokenError,
	CodeTokenSignatureInvalid: ExitTokenError,
	CodeTokenExpired:          ExitTokenError,

	// Install errors (exit code 5)
	CodeBackupFailed: ExitInstallError,
	CodeWriteFailed:  ExitInstallError,
	CodeLockFailed:   ExitInstallError,

	// Partial rotation (exit code 6)
	CodeVaultStale: ExitPartialRotation,
}

// GetExitCode returns the numeric exit code for a structured code.
func (c Code) GetExitCode() ExitCode {
	if exit, ok := codeToExitCode[c]; ok {
		return exit
	}
	return ExitGeneralError
}

// Int returns the integer value of the exit code.
func (e ExitCode) Int() int {
	return int(e)
}
