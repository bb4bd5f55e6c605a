package arcade

import (
	"encoding/json"
	"time"
)

// Game is one running instance of an arcade game. Implementations are not safe
// for concurrent use; callers serialize Apply, Tick and the read methods.
type Game interface {
	Kind() Kind
	Status() Status

	// Apply handles one player input.
	Apply(in Input) error
	// Tick advances the simulation by one frame and reports whether anything changed.
	Tick() bool
	// TickInterval is the current frame period, zero for turn-based games.
	TickInterval() time.Duration

	// Snapshot is the client facing view of the game. It never exposes hidden state.
	Snapshot() any
	// View renders the board for text front-ends.
	View() Frame

	json.Marshaler
	json.Unmarshaler
}
