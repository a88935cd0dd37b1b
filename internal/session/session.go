// Package session persists the authenticated identity between crmctl runs.
//
// The session is the (token, role, fullName) triple the server issued at
// login — the CLI's equivalent of the browser's local storage. It is the
// sole source of truth for the current role. All three fields are written
// and cleared together: a partial session on disk would be a data-integrity
// bug, so writes go through a temp file + rename and logout removes the
// whole file.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crmctl/internal/crm"
)

// Session is the client-held identity. The token is opaque: the client
// performs no expiry or signature check, so a stale token only shows up as
// a 401 on the next API call.
type Session struct {
	Token    string   `json:"token"`
	Role     crm.Role `json:"role"`
	FullName string   `json:"fullName"`
}

// IsAuthenticated reports whether a token is present. Presence is necessary
// but not sufficient — validity is the server's call.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore returns a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get loads the current session. ok is false when no session was ever set,
// it was cleared, or the file is unreadable/corrupt — all of which the
// caller treats as "not logged in".
func (st *Store) Get() (Session, bool) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}
	if !s.IsAuthenticated() {
		return Session{}, false
	}
	s.Role = s.Role.Normalize()
	return s, true
}

// Set persists the session atomically: the new file appears complete or not
// at all.
func (st *Store) Set(s Session) error {
	if s.Token == "" {
		return fmt.Errorf("session: refusing to persist a session without a token")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: close: %w", err)
	}

	if err := os.Rename(tmpName, st.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

// Clear removes the session file — token, role and name in one operation.
// Clearing an absent session is not an error.
func (st *Store) Clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
