// ABOUTME: Stand-in settings store for when another process holds the database.
// ABOUTME: Open picks it after the writable and read-only opens both fail.
package settings

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// ErrLocked means another sporttimer process has the settings open.
var ErrLocked = errors.New("settings store is in use by another sporttimer process")

// LockedStore answers every call with ErrLocked. LoadPreferences turns
// that into defaults; timer and settings commands report it.
type LockedStore struct{}

var _ Store = LockedStore{}

func (LockedStore) GetBool(key string, def bool) (bool, error) { return def, ErrLocked }
func (LockedStore) SetBool(key string, v bool) error           { return ErrLocked }
func (LockedStore) Image() ([]byte, error)                     { return nil, ErrLocked }
func (LockedStore) SetImage(data []byte) error                 { return ErrLocked }
func (LockedStore) ClearImage() error                          { return ErrLocked }
func (LockedStore) TimerSession() (*Session, error)            { return nil, ErrLocked }
func (LockedStore) SaveTimerSession(s *Session) error          { return ErrLocked }
func (LockedStore) ClearTimerSession() error                   { return ErrLocked }
func (LockedStore) Close() error                               { return nil }

// Open opens the badger settings in dir. When another process holds them
// it retries read-only, then settles for a LockedStore, returned together
// with a *DefaultError for the caller to log. The Store is usable whenever
// the error is nil or a *DefaultError.
func Open(dir string) (Store, error) {
	s, err := OpenBadger(dir)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrLocked) {
		return nil, err
	}

	if ro, roErr := OpenBadgerReadOnly(dir); roErr == nil {
		log.WithField("dir", dir).Warn("settings are in use by another process; opened read-only")
		return ro, nil
	}
	return LockedStore{}, &DefaultError{Keys: KnownKeys, Err: err}
}
