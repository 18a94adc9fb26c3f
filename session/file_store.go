package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const sessionFileName = "session.json"

// FileStore persists session state as a JSON file under the configured data
// folder, the console's stand-in for the browser's durable key/value storage.
// Writes replace the whole file via a temp-file rename so a token pair can
// never be observed half-updated.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStore loads (or initialises) the session file under folder. A file
// that cannot be parsed, or that holds only one token of the pair, is treated
// as corrupt and cleared.
func NewFileStore(folder string) (*FileStore, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("create session folder: %w", err)
	}

	fs := &FileStore{
		path: filepath.Join(folder, sessionFileName),
		data: map[string]string{},
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	raw, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warn().Str("path", fs.path).Msg("Session file unreadable, clearing")
		return fs.clearLocked()
	}
	fs.data = data

	_, hasAccess := fs.data[KeyAccessToken]
	_, hasRefresh := fs.data[KeyRefreshToken]
	if hasAccess != hasRefresh {
		log.Warn().Str("path", fs.path).Msg("Half-present token pair, clearing session")
		return fs.clearLocked()
	}
	return nil
}

func (fs *FileStore) Set(accessToken, refreshToken string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[KeyAccessToken] = accessToken
	fs.data[KeyRefreshToken] = refreshToken
	return fs.persistLocked()
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.data[key]
	return v, ok
}

func (fs *FileStore) SetUserAttributes(attrs UserAttributes) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if attrs.Username != "" {
		fs.data[KeyUsername] = attrs.Username
	}
	if attrs.Role != "" {
		fs.data[KeyRole] = attrs.Role
	}
	return fs.persistLocked()
}

func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.clearLocked()
}

func (fs *FileStore) clearLocked() error {
	fs.data = map[string]string{}
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (fs *FileStore) persistLocked() error {
	raw, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}
