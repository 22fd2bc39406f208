// ABOUTME: Badger-backed settings store under the data directory.
// ABOUTME: Values are small byte blobs keyed by preference name.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v3"
	log "github.com/sirupsen/logrus"
)

const (
	imageKey   = "user_image"
	sessionKey = "timer_session"
)

// BadgerStore keeps settings in a badger database.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// OpenBadger opens or creates the settings database in dir. It returns an
// error wrapping ErrLocked when another process has the database open.
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerReadOnly opens an existing settings database without taking
// the writer lock. Writes fail.
func OpenBadgerReadOnly(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir).WithReadOnly(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	opts = opts.
		WithLogger(badgerLogger{log.WithField("component", "settings")}).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		// badger reports a held directory lock only through its message.
		if strings.Contains(err.Error(), "Cannot acquire directory lock") {
			return nil, fmt.Errorf("open settings store: %w: %v", ErrLocked, err)
		}
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// OpenBadgerInMemory opens a badger store that never touches disk.
func OpenBadgerInMemory() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory settings store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) get(key string) ([]byte, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return val, true, nil
}

func (s *BadgerStore) set(key string, val []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) del(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) GetBool(key string, def bool) (bool, error) {
	raw, ok, err := s.get(key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(string(raw))
	if err != nil {
		return def, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func (s *BadgerStore) SetBool(key string, v bool) error {
	return s.set(key, []byte(strconv.FormatBool(v)))
}

func (s *BadgerStore) Image() ([]byte, error) {
	raw, ok, err := s.get(imageKey)
	if err != nil || !ok {
		return nil, err
	}
	return raw, nil
}

func (s *BadgerStore) SetImage(data []byte) error {
	if err := ValidateImage(data); err != nil {
		return err
	}
	return s.set(imageKey, data)
}

func (s *BadgerStore) ClearImage() error {
	return s.del(imageKey)
}

func (s *BadgerStore) TimerSession() (*Session, error) {
	raw, ok, err := s.get(sessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode timer session: %w", err)
	}
	return &sess, nil
}

func (s *BadgerStore) SaveTimerSession(sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode timer session: %w", err)
	}
	return s.set(sessionKey, raw)
}

func (s *BadgerStore) ClearTimerSession() error {
	return s.del(sessionKey)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging through logrus.
type badgerLogger struct {
	entry *log.Entry
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.entry.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.entry.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.entry.Tracef(format, args...) }
