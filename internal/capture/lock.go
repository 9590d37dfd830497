package capture

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned by Lock when another capture daemon holds the lock.
var ErrAlreadyRunning = errors.New("another capture daemon is already running")

// Lock takes the single-instance lock for the capture daemon writing to
// statePath. The caller releases it with Unlock.
func Lock(statePath string) (*flock.Flock, error) {
	lock := flock.New(statePath + ".capture.lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return lock, nil
}
