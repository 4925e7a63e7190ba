//go:build unix

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileLock is an advisory lock held for the duration of one install.
type fileLock struct {
	f *os.File
}

// acquire opens (creating if needed) the lock file and takes an exclusive
// flock on it, blocking until the lock is available.
func acquire(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileLock{f: f}, nil
}

// release drops the lock. The lock file itself is left in place; removing
// it would race a concurrent acquirer.
func (l *fileLock) release() {
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	_ = l.f.Close()
}
