package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harrisonrobin/morningtasks/pkg/config"
)

const indexFile = "meetings.json"

// MeetingIndex remembers which task was created for each calendar event so
// registering today's meetings twice does not duplicate tasks.
type MeetingIndex struct {
	// Mappings is keyed by "<day>/<event id>" so recurring events get one
	// task per occurrence day.
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

// DefaultPath is the index location in the config directory.
func DefaultPath() (string, error) {
	xdgHome, err := config.GetXdgHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, indexFile), nil
}

// NewMeetingIndex opens the index at path, starting empty if it does not exist.
func NewMeetingIndex(path string) (*MeetingIndex, error) {
	idx := &MeetingIndex{
		Mappings: make(map[string]string),
		Path:     path,
	}

	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *MeetingIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *MeetingIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func key(day, eventID string) string {
	return day + "/" + eventID
}

// Get returns the task created for the event on day, or "".
func (idx *MeetingIndex) Get(day, eventID string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[key(day, eventID)]
}

func (idx *MeetingIndex) Set(day, eventID, taskID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	k := key(day, eventID)
	if idx.Mappings[k] != taskID {
		idx.Mappings[k] = taskID
		idx.dirty = true
	}
}

func (idx *MeetingIndex) Remove(day, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	k := key(day, eventID)
	if _, exists := idx.Mappings[k]; exists {
		delete(idx.Mappings, k)
		idx.dirty = true
	}
}

// Prune drops entries for days other than keep.
func (idx *MeetingIndex) Prune(keep string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	prefix := keep + "/"
	for k := range idx.Mappings {
		if !strings.HasPrefix(k, prefix) {
			delete(idx.Mappings, k)
			idx.dirty = true
		}
	}
}
