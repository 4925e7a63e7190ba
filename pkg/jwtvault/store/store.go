// Package store owns the on-disk credential file: atomic installation,
// backup retention, and the advisory lock that serializes concurrent
// installs on the same path.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBackupFailed indicates the pre-overwrite safety copy could not
	// be made. The install is aborted; the prior file is untouched.
	ErrBackupFailed = errors.New("credential backup failed")

	// ErrWriteFailed indicates the new value could not be staged or
	// atomically installed. Any failure before the final rename leaves
	// the prior file and its permissions intact.
	ErrWriteFailed = errors.New("credential write failed")

	// ErrLockFailed indicates the install lock could not be acquired.
	ErrLockFailed = errors.New("credential lock failed")
)

const (
	// backupInfix separates the credential path from its backup suffix.
	backupInfix = ".backup."

	// fileMode is owner read/write only; the credential is a bearer
	// secret and must never be visible at a wider mode, not even
	// transiently.
	fileMode = os.FileMode(0o600)
)

// Install atomically replaces the file at path with value.
//
// The sequence is: lock, back up the existing file, stage the new value in
// a temp file in the same directory with restrictive permissions, then
// rename over path. A concurrent reader of path observes either the old or
// the new content in full; there is no window with partial content or
// wrong permissions. First-time creation takes the same temp-then-rename
// route.
func Install(path, value string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", ErrWriteFailed, dir, err)
	}

	// The lock covers the full backup-stage-rename sequence so two
	// concurrent installs cannot race on backup naming or interleave
	// their renames.
	lock, err := acquire(path + ".lock")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLockFailed, err)
	}
	defer lock.release()

	if _, err := os.Stat(path); err == nil {
		if err := backup(path); err != nil {
			return fmt.Errorf("%w: %v", ErrBackupFailed, err)
		}
	} else if !os.IsNotExist(err) {
		// Cannot establish whether a prior credential exists; refusing
		// to overwrite without a safety copy.
		return fmt.Errorf("%w: stat %s: %v", ErrBackupFailed, path, err)
	}

	return stage(path, value)
}

// backup copies the current file content to a timestamped sibling. The
// suffix combines a UTC timestamp with random entropy so backups from
// near-simultaneous installs never collide. Retention is unbounded;
// pruning is left to external housekeeping.
func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read current credential: %v", err)
	}

	// Nanosecond precision keeps back-to-back backups in lexical order;
	// the entropy tail keeps truly concurrent ones from colliding.
	suffix := time.Now().UTC().Format("20060102T150405.000000000") + "-" + uuid.NewString()[:8]
	backupPath := path + backupInfix + suffix

	if err := os.WriteFile(backupPath, data, fileMode); err != nil {
		return fmt.Errorf("write backup %s: %v", backupPath, err)
	}
	return nil
}

// stage writes value to a temp file beside path and renames it into place.
func stage(path, value string) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	// Permissions are tightened before the file becomes visible at path,
	// so there is never a readable window at the final name with a wider
	// mode.
	if err := tmp.Chmod(fileMode); err != nil {
		cleanup()
		return fmt.Errorf("%w: chmod temp file: %v", ErrWriteFailed, err)
	}

	if _, err := tmp.WriteString(value); err != nil {
		cleanup()
		return fmt.Errorf("%w: write temp file: %v", ErrWriteFailed, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: sync temp file: %v", ErrWriteFailed, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", ErrWriteFailed, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename into place: %v", ErrWriteFailed, err)
	}

	return nil
}

// Read returns the trimmed content of the credential file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Backups lists the backup files for path, oldest first. Suffixes start
// with a sortable UTC timestamp, so lexical order is creation order.
func Backups(path string) ([]string, error) {
	matches, err := filepath.Glob(path + backupInfix + "*")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
