//go:build windows

package store

import (
	"os"

	"golang.org/x/sys/windows"
)

const lockfileExclusiveLock = 0x00000002

// fileLock is an advisory lock held for the duration of one install.
type fileLock struct {
	f *os.File
}

// acquire opens (creating if needed) the lock file and takes an exclusive
// lock on it, blocking until the lock is available.
func acquire(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), lockfileExclusiveLock, 0, 1, 0, ol); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &fileLock{f: f}, nil
}

// release drops the lock. The lock file itself is left in place; removing
// it would race a concurrent acquirer.
func (l *fileLock) release() {
	ol := new(windows.Overlapped)
	_ = windows.UnlockFileEx(windows.Handle(l.f.Fd()), 0, 1, 0, ol)
	_ = l.f.Close()
}
