package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/aulanext/timetable-notification-planning/internal/domain"
)

// Store holds an in-memory snapshot of the lesson catalog and notification
// settings, reloaded wholesale from JSON files. Reads and reloads may race,
// so the snapshot is swapped under a lock.
type Store struct {
	catalogPath  string
	settingsPath string
	defaultLead  int

	mu       sync.RWMutex
	catalog  domain.Catalog
	settings *domain.NotificationSettings
	loaded   bool
}

// NewStore builds a store reading from the given paths. defaultLead, when
// positive, replaces the built-in default reminder lead time; an explicit
// value in the settings document still wins.
func NewStore(catalogPath, settingsPath string, defaultLead int) *Store {
	return &Store{
		catalogPath:  catalogPath,
		settingsPath: settingsPath,
		defaultLead:  defaultLead,
	}
}

// Reload re-reads the catalog and settings files and swaps the snapshot.
// Lessons without an ID get one assigned. The settings path is optional;
// when empty the defaults are used.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.catalogPath)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var lessons []domain.Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	for i := range lessons {
		if lessons[i].ID == "" {
			lessons[i].ID = uuid.New().String()
		}
	}

	settings := domain.DefaultSettings()
	if s.defaultLead > 0 {
		settings.DefaultReminderMinutes = s.defaultLead
	}
	if s.settingsPath != "" {
		raw, err := os.ReadFile(s.settingsPath)
		if err != nil {
			return fmt.Errorf("read settings: %w", err)
		}
		if err := json.Unmarshal(raw, &settings); err != nil {
			return fmt.Errorf("parse settings: %w", err)
		}
	}

	s.mu.Lock()
	s.catalog = lessons
	s.settings = &settings
	s.loaded = true
	s.mu.Unlock()

	return nil
}

// Snapshot returns the current catalog and settings. The catalog slice is
// shared with the store and must not be mutated by callers.
func (s *Store) Snapshot() (domain.Catalog, *domain.NotificationSettings) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.settings
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
