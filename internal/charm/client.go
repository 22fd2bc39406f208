// ABOUTME: Charm KV client wrapper for workout storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	log "github.com/sirupsen/logrus"

	"github.com/harperreed/sporttimer/internal/storage"
)

const (
	// DBName is the Charm KV database holding workouts.
	DBName    = "sporttimer"
	charmHost = "charm.2389.dev"

	WorkoutPrefix = "workout:"
)

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// kvStore is the subset of *kv.KV the client relies on.
type kvStore interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	IsReadOnly() bool
	Close() error
}

var _ kvStore = (*kv.KV)(nil)

// Client stores workouts in a Charm KV database and implements storage.Repository.
type Client struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex
}

var _ storage.Repository = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = newClient(db)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			if err := db.Sync(); err != nil {
				log.Warnf("charm: initial sync failed: %s", err)
			}
		}
	})

	return globalClient, clientErr
}

// GetClient returns the global client, initializing if needed.
func GetClient() (*Client, error) {
	return InitClient()
}

func newClient(store kvStore) *Client {
	return &Client{kv: store, autoSync: true}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled. Callers hold c.mu.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		if err := c.kv.Sync(); err != nil {
			log.Debugf("charm: background sync failed: %s", err)
		}
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

func (c *Client) checkWritable() error {
	if c.kv.IsReadOnly() {
		return fmt.Errorf("%w: database is locked by another process (MCP server?)", storage.ErrReadOnly)
	}
	return nil
}

// listByPrefix returns all keys and values matching the given prefix.
// Callers hold c.mu.
func (c *Client) listByPrefix(prefix string) ([][]byte, [][]byte, error) {
	var keys, values [][]byte
	prefixBytes := []byte(prefix)

	all, err := c.kv.Keys()
	if err != nil {
		return nil, nil, err
	}

	for _, key := range all {
		if bytes.HasPrefix(key, prefixBytes) {
			val, err := c.kv.Get(key)
			if err != nil {
				return nil, nil, err
			}
			keys = append(keys, key)
			values = append(values, val)
		}
	}

	return keys, values, nil
}

// getByIDPrefix retrieves a single value by ID prefix match.
// Returns error if no match or multiple matches found.
func (c *Client) getByIDPrefix(typePrefix, idPrefix string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	searchPrefix := []byte(typePrefix + idPrefix)

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	var match []byte
	for _, key := range keys {
		if bytes.HasPrefix(key, searchPrefix) {
			if match != nil {
				return nil, storage.Ambiguous(idPrefix)
			}
			match = key
		}
	}
	if match == nil {
		return nil, storage.NotFound(idPrefix)
	}

	return c.kv.Get(match)
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// marshalJSON is a helper to marshal data to JSON.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

// extractID extracts the ID portion from a prefixed key.
func extractID(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
