// OS-level file locking for cross-process coordination.
//
// fileLock wraps flock(2) / LockFileEx on a sidecar file next to the filter
// file (path + ".lock"). SaveFile holds it exclusively while it renames a
// new filter into place; LoadFile holds it shared while it reads. A
// fileLock belongs to one call and is never shared between goroutines.
package bloomsday

import (
	"errors"
	"os"
)

// LockMode selects shared (read) or exclusive (write) locking.
type LockMode int

const (
	LockShared LockMode = iota
	LockExclusive
)

type fileLock struct {
	f *os.File
}

func lockPath(path string) string { return path + ".lock" }

// openFileLock opens (creating if needed) the sidecar lock file for path.
// The lock file is left in place after use.
func openFileLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(lockPath(path), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return &fileLock{f: f}, nil
}

// Lock acquires a shared or exclusive lock, blocking until it is granted.
func (l *fileLock) Lock(mode LockMode) error {
	return l.lock(mode)
}

// Unlock releases the lock.
func (l *fileLock) Unlock() error {
	return l.unlock()
}

// release unlocks and closes the lock file. Closing alone would drop the
// lock, but an explicit unlock reports errors the close would hide.
func (l *fileLock) release() error {
	return errors.Join(l.unlock(), l.f.Close())
}
