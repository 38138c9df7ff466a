package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/fenboard/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyRecent      = "recent_fens"
)

// MaxRecent is the number of recently opened FEN strings kept.
const MaxRecent = 16

// Theme names understood by the viewer.
const (
	ThemeBrown = "brown"
	ThemeGreen = "green"
	ThemeBlue  = "blue"
)

// ViewerPreferences stores viewer settings.
type ViewerPreferences struct {
	Flipped         bool      `json:"flipped"`
	ShowCoordinates bool      `json:"show_coordinates"`
	Theme           string    `json:"theme"`
	LastOpened      time.Time `json:"last_opened"`
}

// DefaultPreferences returns default viewer preferences
func DefaultPreferences() *ViewerPreferences {
	return &ViewerPreferences{
		Flipped:         false,
		ShowCoordinates: true,
		Theme:           ThemeBrown,
		LastOpened:      time.Now(),
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the Storage.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves viewer preferences
func (s *Storage) SavePreferences(prefs *ViewerPreferences) error {
	prefs.LastOpened = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads viewer preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*ViewerPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// RememberFEN records fen as the most recently opened position.
// The string must decode; it is stored in canonical form, and an earlier
// entry for the same position moves to the front.
func (s *Storage) RememberFEN(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("remember FEN: %w", err)
	}
	canonical := pos.ToFEN()

	return s.db.Update(func(txn *badger.Txn) error {
		recent, err := readRecent(txn)
		if err != nil {
			return err
		}

		updated := make([]string, 0, MaxRecent)
		updated = append(updated, canonical)
		for _, f := range recent {
			if f != canonical && len(updated) < MaxRecent {
				updated = append(updated, f)
			}
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyRecent), data)
	})
}

// RecentFENs returns remembered FEN strings, most recent first.
func (s *Storage) RecentFENs() ([]string, error) {
	var recent []string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		recent, err = readRecent(txn)
		return err
	})
	return recent, err
}

// LastFEN returns the most recently remembered FEN string, or "" if none.
func (s *Storage) LastFEN() (string, error) {
	recent, err := s.RecentFENs()
	if err != nil || len(recent) == 0 {
		return "", err
	}
	return recent[0], nil
}

// LastPosition decodes the most recently remembered FEN string.
// It returns the starting position when nothing has been remembered.
func (s *Storage) LastPosition() (board.Position, error) {
	fen, err := s.LastFEN()
	if err != nil {
		return board.Position{}, err
	}
	if fen == "" {
		return board.StartingPosition(), nil
	}
	return board.ParseFEN(fen)
}

func readRecent(txn *badger.Txn) ([]string, error) {
	item, err := txn.Get([]byte(keyRecent))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var recent []string
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &recent)
	})
	return recent, err
}
