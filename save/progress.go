// Package save keeps the player's run progress between sessions.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const progressItem = "progress"

// Progress is where a run stands: the level to resume on and the deaths so
// far.
type Progress struct {
	Level  int `json:"level"`
	Deaths int `json:"deaths"`
}

// Items is the key-value storage a Store writes through. *gdata.Manager
// implements it.
type Items interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

type Store struct {
	items Items
}

// Open uses the per-user data directory of appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open %s: %w", appName, err)
	}
	return New(m), nil
}

func New(items Items) *Store {
	return &Store{items: items}
}

// Load reports false when nothing has been saved or the save was cleared.
func (s *Store) Load() (Progress, bool, error) {
	var p Progress
	data, err := s.items.LoadItem(progressItem)
	if err != nil {
		return p, false, fmt.Errorf("save: load: %w", err)
	}
	if len(data) == 0 {
		return p, false, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, false, fmt.Errorf("save: decode: %w", err)
	}
	return p, true, nil
}

func (s *Store) Save(p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	if err := s.items.SaveItem(progressItem, data); err != nil {
		return fmt.Errorf("save: write: %w", err)
	}
	return nil
}

// Clear forgets the saved progress.
func (s *Store) Clear() error {
	if err := s.items.SaveItem(progressItem, nil); err != nil {
		return fmt.Errorf("save: clear: %w", err)
	}
	return nil
}
