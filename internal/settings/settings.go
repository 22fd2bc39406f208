// ABOUTME: User preferences, avatar image, and the persisted timer session.
// ABOUTME: Store is backed by badger on disk or a map in memory; Preferences is the loaded view.
package settings

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/timer"
)

// Preference keys.
const (
	KeySoundEnabled         = "sound_enabled"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyHasLaunchedBefore    = "has_launched_before"
)

// MaxImageBytes caps the stored avatar size.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge   = fmt.Errorf("image exceeds %d bytes", MaxImageBytes)
	ErrUnsupportedType = errors.New("image must be JPEG or PNG")
	ErrEmptyImage      = errors.New("image is empty")
	// ErrUnknownKey is returned for preference keys outside the known set.
	ErrUnknownKey = errors.New("unknown setting")
)

// Session is the timer state kept between CLI invocations, with the
// category and notes the resulting workout will carry.
type Session struct {
	Timer    timer.Snapshot  `json:"timer"`
	Category models.Category `json:"category"`
	Notes    string          `json:"notes,omitempty"`
}

// Store persists settings.
type Store interface {
	GetBool(key string, def bool) (bool, error)
	SetBool(key string, v bool) error
	// Image returns the stored avatar, or nil when none is set.
	Image() ([]byte, error)
	SetImage(data []byte) error
	ClearImage() error
	// TimerSession returns the saved session, or nil when none is saved.
	TimerSession() (*Session, error)
	SaveTimerSession(s *Session) error
	ClearTimerSession() error
	Close() error
}

// KnownKeys lists the boolean preferences in display order.
var KnownKeys = []string{KeySoundEnabled, KeyNotificationsEnabled}

// ValidateKey accepts the user-facing aliases "sound" and "notifications".
func ValidateKey(key string) (string, error) {
	switch key {
	case "sound", KeySoundEnabled:
		return KeySoundEnabled, nil
	case "notifications", KeyNotificationsEnabled:
		return KeyNotificationsEnabled, nil
	default:
		return "", fmt.Errorf("%w: %s (use sound or notifications)", ErrUnknownKey, key)
	}
}

// ValidateImage checks size and sniffs the content type.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return ErrImageTooLarge
	}
	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
		return nil
	default:
		return ErrUnsupportedType
	}
}

// Preferences is the loaded set of user preferences, passed explicitly to
// whatever needs it.
type Preferences struct {
	SoundEnabled         bool
	NotificationsEnabled bool
	FirstLaunch          bool
}

// Defaults are used when a stored value cannot be read.
var Defaults = Preferences{SoundEnabled: true, NotificationsEnabled: true}

// DefaultError reports which preferences fell back to their defaults.
// Callers log it and carry on.
type DefaultError struct {
	Keys []string
	Err  error
}

func (e *DefaultError) Error() string {
	return fmt.Sprintf("settings %v fell back to defaults: %v", e.Keys, e.Err)
}

func (e *DefaultError) Unwrap() error { return e.Err }

// LoadPreferences reads preferences from s. On first launch it enables
// sound and notifications and records that the app has launched. Read
// failures yield defaults plus a *DefaultError; the Preferences value is
// always usable.
func LoadPreferences(s Store) (Preferences, error) {
	prefs := Defaults
	var failed []string
	var errs []error

	launched, err := s.GetBool(KeyHasLaunchedBefore, false)
	if err != nil {
		failed = append(failed, KeyHasLaunchedBefore)
		errs = append(errs, err)
	}

	if err == nil && !launched {
		prefs.FirstLaunch = true
		for _, k := range []string{KeySoundEnabled, KeyNotificationsEnabled, KeyHasLaunchedBefore} {
			if err := s.SetBool(k, true); err != nil {
				failed = append(failed, k)
				errs = append(errs, err)
			}
		}
	} else {
		if v, err := s.GetBool(KeySoundEnabled, Defaults.SoundEnabled); err != nil {
			failed = append(failed, KeySoundEnabled)
			errs = append(errs, err)
		} else {
			prefs.SoundEnabled = v
		}
		if v, err := s.GetBool(KeyNotificationsEnabled, Defaults.NotificationsEnabled); err != nil {
			failed = append(failed, KeyNotificationsEnabled)
			errs = append(errs, err)
		} else {
			prefs.NotificationsEnabled = v
		}
	}

	if len(failed) > 0 {
		return prefs, &DefaultError{Keys: failed, Err: multierr.Combine(errs...)}
	}
	return prefs, nil
}
