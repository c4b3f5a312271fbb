package game

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrGameNotFound is returned for operations on an unknown game ID.
var ErrGameNotFound = errors.New("game not found")

// Engine manages game sessions and serializes access to each: every mutator
// holds the session's single-writer lock for validate, resolve, trigger
// propagation and the win check of one action.
type Engine struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	sessions map[string]*Session
}

// NewEngine creates an engine with no active games.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// StartGame creates and registers a session. Callers attach any external
// listeners to the session bus and then call Begin.
func (e *Engine) StartGame(specs []PlayerSpec, opts ...SessionOption) (*Session, error) {
	session, err := NewSession(e.logger, specs, opts...)
	if err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}

	e.mu.Lock()
	e.sessions[session.ID] = session
	e.mu.Unlock()

	e.logger.Info("game started",
		zap.String("game_id", session.ID),
		zap.Int("players", len(specs)),
	)
	return session, nil
}

// Begin starts the first turn of a registered session.
func (e *Engine) Begin(gameID string) error {
	return e.withSession(gameID, func(s *Session) error {
		s.BeginFirstTurn()
		return nil
	})
}

// Session returns the session with the given ID.
func (e *Engine) Session(gameID string) (*Session, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	session, ok := e.sessions[gameID]
	return session, ok
}

// RemoveGame drops a finished session.
func (e *Engine) RemoveGame(gameID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, gameID)
}

// GameCount returns the number of active sessions.
func (e *Engine) GameCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// withSession runs fn under the session's single-writer lock.
func (e *Engine) withSession(gameID string, fn func(*Session) error) error {
	session, ok := e.Session(gameID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	session.Lock()
	defer session.Unlock()
	return fn(session)
}

// RollMovement rolls the movement dice for the active player.
func (e *Engine) RollMovement(gameID string, playerID int) (int, error) {
	var total int
	err := e.withSession(gameID, func(s *Session) error {
		var err error
		total, err = s.RollMovement(playerID)
		return err
	})
	return total, err
}

// Move relocates the player to the destination zone.
func (e *Engine) Move(gameID string, playerID int, dest ZoneID) error {
	return e.withSession(gameID, func(s *Session) error {
		return s.Move(playerID, dest)
	})
}

// Attack resolves an attack, including triggered abilities and win checks.
func (e *Engine) Attack(gameID string, attackerID, targetID int) (RollOutcome, error) {
	var outcome RollOutcome
	err := e.withSession(gameID, func(s *Session) error {
		var err error
		outcome, err = s.Attack(attackerID, targetID)
		return err
	})
	return outcome, err
}

// DrawCard draws and resolves a card for the active player.
func (e *Engine) DrawCard(gameID string, playerID int) (Card, error) {
	var card Card
	err := e.withSession(gameID, func(s *Session) error {
		var err error
		card, err = s.DrawCard(playerID)
		return err
	})
	return card, err
}

// DiscardEquipment detaches an equipped card and discards it.
func (e *Engine) DiscardEquipment(gameID string, playerID int, cardID string) error {
	return e.withSession(gameID, func(s *Session) error {
		return s.DiscardEquipment(playerID, cardID)
	})
}

// ActivateAbility invokes the player's active ability.
func (e *Engine) ActivateAbility(gameID string, playerID int, targets []int) (ActiveOutcome, error) {
	var outcome ActiveOutcome
	err := e.withSession(gameID, func(s *Session) error {
		var err error
		outcome, err = s.ActivateAbility(playerID, targets)
		return err
	})
	return outcome, err
}

// AdvancePhase moves the session to its next phase.
func (e *Engine) AdvancePhase(gameID string) error {
	return e.withSession(gameID, func(s *Session) error {
		return s.AdvancePhase()
	})
}

// EndTurn passes the active player's turn.
func (e *Engine) EndTurn(gameID string, playerID int) error {
	return e.withSession(gameID, func(s *Session) error {
		if v := s.ValidateAction(playerID, ActionEndTurn); !v.OK {
			return denied(v)
		}
		return s.EndTurn()
	})
}

// Snapshot returns the public view of a session.
func (e *Engine) Snapshot(gameID string) (SnapshotView, error) {
	var view SnapshotView
	err := e.withSession(gameID, func(s *Session) error {
		view = s.Snapshot()
		return nil
	})
	return view, err
}
