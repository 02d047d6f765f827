package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"Finsight/internal/agent"

	"github.com/google/uuid"
)

const (
	MaxSessions    = 50
	ExpiryDays     = 30
	SessionsFolder = ".finsight/sessions"
)

// Session is a saved chat: the questions asked about one data file and
// the analyst's answers.
type Session struct {
	ID        string       `json:"id"`
	DataPath  string       `json:"data_path"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Turns     []agent.Turn `json:"turns"`
}

// Store keeps sessions as JSON files in Dir.
type Store struct {
	Dir string
}

// DefaultStore returns the store under ~/.finsight/sessions.
func DefaultStore() *Store {
	home, _ := os.UserHomeDir()
	return &Store{Dir: filepath.Join(home, SessionsFolder)}
}

// GenerateID creates a short unique session ID
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewSession creates a new session
func NewSession(dataPath string) *Session {
	now := time.Now()
	return &Session{
		ID:        GenerateID(),
		DataPath:  dataPath,
		CreatedAt: now,
		UpdatedAt: now,
		Turns:     []agent.Turn{},
	}
}

// Append records answered turns.
func (s *Session) Append(turns ...agent.Turn) {
	s.Turns = append(s.Turns, turns...)
	s.UpdatedAt = time.Now()
}

// Save persists the session to disk
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(st.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create sessions directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(st.path(s.ID), data, 0644)
}

// Load loads a session by ID
func (st *Store) Load(id string) (*Session, error) {
	data, err := os.ReadFile(st.path(id))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return &session, nil
}

// List returns all sessions, most recently updated first
func (st *Store) List() ([]Session, error) {
	files, err := os.ReadDir(st.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Session{}, nil
		}
		return nil, err
	}

	var sessions []Session
	for _, f := range files {
		id, ok := strings.CutSuffix(f.Name(), ".json")
		if !ok {
			continue
		}
		session, err := st.Load(id)
		if err != nil {
			continue
		}
		sessions = append(sessions, *session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

// Latest returns the most recently updated session, nil when there is none
func (st *Store) Latest() (*Session, error) {
	sessions, err := st.List()
	if err != nil || len(sessions) == 0 {
		return nil, err
	}
	return &sessions[0], nil
}

// Cleanup removes expired sessions and all but the newest MaxSessions
func (st *Store) Cleanup() error {
	sessions, err := st.List()
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -ExpiryDays)
	for i, s := range sessions {
		if i >= MaxSessions || s.UpdatedAt.Before(cutoff) {
			os.Remove(st.path(s.ID))
		}
	}
	return nil
}

// Delete removes a session by ID
func (st *Store) Delete(id string) error {
	return os.Remove(st.path(id))
}

func (st *Store) path(id string) string {
	return filepath.Join(st.Dir, filepath.Base(id)+".json")
}
