// Filter files.
//
// A filter file holds exactly one binary-encoded filter. SaveFile writes
// the new filter to a temporary file in the same directory, syncs it and
// renames it over the target, so the path names either the previous
// filter or the new one and a failed save leaves the previous one intact.
// Savers and loaders coordinate through a sidecar lock file; see lock.go.
package bloomsday

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
)

// SaveFile writes f to path, creating or replacing the file. A
// path+".lock" file is created alongside it and left in place.
func (f *Filter) SaveFile(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriterSize(tmp, 64*1024)
	if _, err := f.WriteTo(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	lock, err := openFileLock(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, lock.release()) }()

	// Loaders hold the shared lock while the target is open; Windows
	// refuses to rename over an open file.
	if err := lock.Lock(LockExclusive); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadFile reads a filter written by SaveFile.
func LoadFile(path string) (_ *Filter, err error) {
	lock, err := openFileLock(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, lock.release()) }()

	if err := lock.Lock(LockShared); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var f Filter
	if _, err := f.ReadFrom(bufio.NewReaderSize(file, 64*1024)); err != nil {
		return nil, err
	}
	return &f, nil
}
