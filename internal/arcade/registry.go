package arcade

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
)

// Factory creates a fresh game from normalized options.
type Factory func(opts Options) (Game, error)

// Entry describes one game on the home screen.
type Entry struct {
	Kind         Kind         `json:"kind"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Order        int          `json:"-"`
	Players      int          `json:"players"`
	Realtime     bool         `json:"realtime"`
	Difficulties []Difficulty `json:"difficulties,omitempty"`
	Modes        []Mode       `json:"modes,omitempty"`

	New Factory `json:"-"`
}

var (
	registryMu sync.RWMutex
	registry   = map[Kind]Entry{}
)

// Register - adds a game to the catalog, game packages call it from init.
func Register(entry Entry) {
	if entry.Kind == "" || entry.New == nil {
		panic("arcade: register needs a kind and a factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[entry.Kind]; exists {
		panic(fmt.Sprintf("arcade: game %q registered twice", entry.Kind))
	}
	registry[entry.Kind] = entry
}

func Lookup(kind Kind) (Entry, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entry, ok := registry[kind]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", apperror.ErrUnknownGame, kind)
	}

	return entry, nil
}

// Catalog - returns all registered games in home screen order.
func Catalog() []Entry {
	registryMu.RLock()
	entries := make([]Entry, 0, len(registry))
	for _, entry := range registry {
		entries = append(entries, entry)
	}
	registryMu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Order != entries[j].Order {
			return entries[i].Order < entries[j].Order
		}
		return entries[i].Kind < entries[j].Kind
	})

	return entries
}

func (that Entry) supportsMode(mode Mode) bool {
	if len(that.Modes) == 0 {
		return mode == ModeSolo
	}
	for _, supported := range that.Modes {
		if supported == mode {
			return true
		}
	}
	return false
}

// New - creates a game of the given kind.
func New(kind Kind, opts Options) (Game, error) {
	entry, err := Lookup(kind)
	if err != nil {
		return nil, err
	}

	opts, err = opts.Normalize()
	if err != nil {
		return nil, err
	}

	if opts.Mode == ModeSolo && len(entry.Modes) > 0 {
		opts.Mode = entry.Modes[0]
	}

	if !entry.supportsMode(opts.Mode) {
		return nil, fmt.Errorf("%w: %s does not support mode %q", apperror.ErrInvalidOptions, kind, opts.Mode)
	}

	game, err := entry.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	return game, nil
}

// Restore - recreates a game from the state produced by its MarshalJSON.
func Restore(kind Kind, opts Options, state []byte) (Game, error) {
	game, err := New(kind, opts)
	if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(state, game); err != nil {
		return nil, fmt.Errorf("failed to restore %s state: %w", kind, err)
	}

	return game, nil
}
