package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

const persistTimeout = 2 * time.Second

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// Publisher - receives the updates produced by the game clock.
type Publisher interface {
	Publish(playerID string, update *Update)
}

// Update is what a client sees of a session.
type Update struct {
	SessionID string         `json:"session_id"`
	Kind      arcade.Kind    `json:"kind"`
	Status    arcade.Status  `json:"status"`
	Options   arcade.Options `json:"options"`
	Game      any            `json:"game"`
}

// live is a session with its engine loaded in memory.
type live struct {
	mu          sync.Mutex
	session     *entity.Session
	game        arcade.Game
	cancel      context.CancelFunc
	done        chan struct{}
	persistedAt time.Time
}

func (that *live) update() *Update {
	return &Update{
		SessionID: that.session.ID,
		Kind:      that.session.Kind,
		Status:    that.game.Status(),
		Options:   that.session.Options,
		Game:      that.game.Snapshot(),
	}
}

type SessionManager struct {
	logger          *slog.Logger
	tracer          trace.Tracer
	playerRepo      playerRepo
	sessionRepo     sessionRepo
	persistInterval time.Duration

	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	sessions  map[string]*live
	publisher Publisher
}

func NewSessionManager(
	logger *slog.Logger,
	tracer trace.Tracer,
	playerRepo playerRepo,
	sessionRepo sessionRepo,
	persistInterval time.Duration,
) *SessionManager {
	return &SessionManager{
		logger:          logger,
		tracer:          tracer,
		playerRepo:      playerRepo,
		sessionRepo:     sessionRepo,
		persistInterval: persistInterval,

		now:   time.Now,
		newID: uuid.NewString,

		sessions: make(map[string]*live),
	}
}

// SetPublisher - sets where clock driven updates go, nil drops them.
func (that *SessionManager) SetPublisher(publisher Publisher) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.publisher = publisher
}

func (that *SessionManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx, that.newID())
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		// the cookie outlived the record
		player, err = that.createPlayer(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to recreate player: %w", err)
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// StartSession - creates a new game for the player, ending the one they had.
func (that *SessionManager) StartSession(ctx context.Context, playerID string, kind arcade.Kind, opts arcade.Options) (*Update, error) {
	log := that.logger.With("method", "StartSession")

	ctx, span := that.tracer.Start(ctx, "session.start")
	span.SetAttributes(attribute.String("game.kind", string(kind)))
	defer span.End()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	opts, err = opts.Normalize()
	if err != nil {
		return nil, err
	}

	if opts.Seed == 0 {
		opts.Seed = that.now().UnixNano()
	}

	game, err := arcade.New(kind, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if player.SessionID != "" {
		if err = that.endSession(ctx, player.SessionID); err != nil {
			log.Error("failed to end previous session", "session_id", player.SessionID, "error", err)
		}
	}

	entry := &live{
		session: entity.NewSession(that.newID(), player.ID, kind, opts, that.now()),
		game:    game,
	}
	span.SetAttributes(attribute.String("session.id", entry.session.ID))

	if err = that.persist(ctx, entry); err != nil {
		return nil, err
	}

	player.SessionID = entry.session.ID
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	that.mu.Lock()
	that.sessions[entry.session.ID] = entry
	that.mu.Unlock()

	that.startRunner(entry)

	log.Info("session started", "session_id", entry.session.ID, "kind", kind)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.update(), nil
}

// HandleInput - applies one input to the player's session. Restart works for every game.
func (that *SessionManager) HandleInput(ctx context.Context, playerID string, in arcade.Input) (*Update, error) {
	ctx, span := that.tracer.Start(ctx, "session.input")
	span.SetAttributes(attribute.String("input.action", in.Action))
	defer span.End()

	entry, err := that.activeSession(ctx, playerID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("session.id", entry.session.ID),
		attribute.String("game.kind", string(entry.session.Kind)),
	)

	if in.Action == arcade.ActionRestart {
		that.stop(entry)
	}

	entry.mu.Lock()

	if err = that.apply(entry, in); err != nil {
		entry.mu.Unlock()
		span.SetAttributes(attribute.Bool("rejected", true))

		return nil, err
	}

	if err = that.persist(ctx, entry); err != nil {
		entry.mu.Unlock()

		return nil, err
	}

	update := entry.update()
	entry.mu.Unlock()

	that.startRunner(entry)

	return update, nil
}

func (that *SessionManager) apply(entry *live, in arcade.Input) error {
	switch in.Action {
	case arcade.ActionRestart:
		opts := entry.session.Options
		opts.Seed = that.now().UnixNano()

		game, err := arcade.New(entry.session.Kind, opts)
		if err != nil {
			return fmt.Errorf("failed to restart game: %w", err)
		}
		entry.game = game
		entry.session.Options = opts

		return nil
	case arcade.ActionPause:
		current := *entry.session
		current.Status = entry.game.Status()
		if err := current.ConfirmOngoingState(); err != nil && !errors.Is(err, apperror.ErrGamePaused) {
			return err
		}
	}

	if err := entry.game.Apply(in); err != nil {
		return fmt.Errorf("failed to apply %q: %w", in.Action, err)
	}

	return nil
}

// GetSession - current state of the player's session, loading it from storage
// and restarting its clock when needed.
func (that *SessionManager) GetSession(ctx context.Context, playerID string) (*Update, error) {
	ctx, span := that.tracer.Start(ctx, "session.get")
	defer span.End()

	entry, err := that.activeSession(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.startRunner(entry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return entry.update(), nil
}

// SuspendSession - stops the clock and saves the session, the player can pick it up later.
func (that *SessionManager) SuspendSession(ctx context.Context, playerID string) error {
	log := that.logger.With("method", "SuspendSession")

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return err
	}

	if player.SessionID == "" {
		return nil
	}

	entry := that.detach(player.SessionID)
	if entry == nil {
		return nil
	}

	that.stop(entry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err = that.persist(ctx, entry); err != nil {
		return err
	}

	log.Debug("session suspended", "session_id", player.SessionID)

	return nil
}

// EndSession - stops and deletes the player's session.
func (that *SessionManager) EndSession(ctx context.Context, playerID string) error {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return err
	}

	if player.SessionID == "" {
		return apperror.ErrNoActiveSession
	}

	if err = that.endSession(ctx, player.SessionID); err != nil {
		return err
	}

	player.SessionID = ""

	return that.updatePlayer(ctx, player)
}

// Close - stops every clock and saves every loaded session.
func (that *SessionManager) Close(ctx context.Context) {
	log := that.logger.With("method", "Close")

	that.mu.Lock()
	entries := make([]*live, 0, len(that.sessions))
	for id, entry := range that.sessions {
		entries = append(entries, entry)
		delete(that.sessions, id)
	}
	that.mu.Unlock()

	for _, entry := range entries {
		that.stop(entry)

		entry.mu.Lock()
		if err := that.persist(ctx, entry); err != nil {
			log.Error("failed to save session", "session_id", entry.session.ID, "error", err)
		}
		entry.mu.Unlock()
	}
}

func (that *SessionManager) activeSession(ctx context.Context, playerID string) (*live, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.SessionID == "" {
		return nil, apperror.ErrNoActiveSession
	}

	that.mu.Lock()
	entry, ok := that.sessions[player.SessionID]
	that.mu.Unlock()

	if ok {
		return entry, nil
	}

	session, err := that.sessionRepo.GetByID(ctx, player.SessionID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("%w: session expired", apperror.ErrNoActiveSession)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game, err := arcade.Restore(session.Kind, session.Options, session.State)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	entry = &live{session: session, game: game, persistedAt: that.now()}

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.sessions[session.ID]; ok {
		return existing, nil
	}
	that.sessions[session.ID] = entry

	return entry, nil
}

func (that *SessionManager) endSession(ctx context.Context, sessionID string) error {
	if entry := that.detach(sessionID); entry != nil {
		that.stop(entry)
	}

	err := that.sessionRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

func (that *SessionManager) detach(sessionID string) *live {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry := that.sessions[sessionID]
	delete(that.sessions, sessionID)

	return entry
}

// startRunner - starts the clock of a realtime game unless it already runs.
func (that *SessionManager) startRunner(entry *live) {
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.done != nil || entry.game.TickInterval() <= 0 || entry.game.Status() == arcade.StatusFinished {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	entry.cancel, entry.done = cancel, done
	game := entry.game

	go func() {
		defer close(done)
		defer cancel()

		for {
			arcade.Loop(ctx, game, &entry.mu, func(changed bool) {
				that.onTick(entry, changed)
			})

			entry.mu.Lock()
			// an input can restart a finished game before the clock lets go of it
			revived := ctx.Err() == nil && entry.done == done && entry.game == game && game.Status() != arcade.StatusFinished
			if !revived && entry.done == done {
				entry.cancel, entry.done = nil, nil
			}
			entry.mu.Unlock()

			if !revived {
				return
			}
		}
	}()
}

// stop - cancels the clock and waits for it, entry.mu must not be held.
func (that *SessionManager) stop(entry *live) {
	entry.mu.Lock()
	cancel, done := entry.cancel, entry.done
	entry.cancel, entry.done = nil, nil
	entry.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// onTick - saves the session on a status change or once per persist interval,
// then publishes it outside entry.mu.
func (that *SessionManager) onTick(entry *live, changed bool) {
	if !changed {
		return
	}

	entry.mu.Lock()
	statusChanged := entry.game.Status() != entry.session.Status
	if statusChanged || that.now().Sub(entry.persistedAt) >= that.persistInterval {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := that.persist(ctx, entry); err != nil {
			that.logger.Error("failed to save session", "method", "onTick", "session_id", entry.session.ID, "error", err)
		}
		cancel()
	}
	playerID, update := entry.session.PlayerID, entry.update()
	entry.mu.Unlock()

	that.mu.Lock()
	publisher := that.publisher
	that.mu.Unlock()

	if publisher != nil {
		publisher.Publish(playerID, update)
	}
}

// persist runs with entry.mu held.
func (that *SessionManager) persist(ctx context.Context, entry *live) error {
	state, err := json.Marshal(entry.game)
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	now := that.now()
	entry.session.Touch(entry.game.Status(), state, now)

	if err = that.sessionRepo.CreateOrUpdate(ctx, entry.session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	entry.persistedAt = now

	return nil
}

func (that *SessionManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{
		ID: id,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *SessionManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *SessionManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
