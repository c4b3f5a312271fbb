package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

var (
	// ErrPlayerNotFound is returned when a referenced player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrGameOver is returned when a mutation is attempted after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrNoLivingPlayers is returned when phase advance finds nobody alive.
	ErrNoLivingPlayers = errors.New("no living players")
)

// factionCounts is the character deal per player count: hunters, shadows,
// neutrals.
var factionCounts = map[int][3]int{
	4: {2, 2, 0},
	5: {2, 2, 1},
	6: {2, 2, 2},
	7: {3, 3, 1},
	8: {3, 3, 2},
}

// PlayerSpec describes one seat at setup time.
type PlayerSpec struct {
	Name string
	Bot  bool
}

// Session is the complete mutable state of one game. All rule mutation flows
// through it under a single writer: callers hold mu for the full
// validate-resolve-propagate-check cycle of one action.
type Session struct {
	ID     string
	logger *zap.Logger

	mu      sync.Mutex
	players []*Player
	byID    map[int]*Player

	board *Board
	decks map[DeckKind]*Deck

	bus      *rules.EventBus
	registry *rules.Registry
	dice     DiceRoller
	rng      *rand.Rand

	phase       Phase
	currentIdx  int
	turn        int

	tracker  *KillTracker
	gameOver bool
	winners  []int

	// capriccio swaps the neighbor direction for neighbor-dependent win
	// conditions while set.
	capriccio bool

	// roster, when set, pins the character deal per seat.
	roster []CharacterID
}

// SessionOption customizes session construction.
type SessionOption func(*Session)

// WithDiceRoller overrides the dice source, used by tests and replay.
func WithDiceRoller(roller DiceRoller) SessionOption {
	return func(s *Session) { s.dice = roller }
}

// WithSeed fixes the random source for deterministic deals and shuffles.
func WithSeed(seed int64) SessionOption {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithBoard replaces the default zone ring.
func WithBoard(board *Board) SessionOption {
	return func(s *Session) { s.board = board }
}

// WithRoster pins the character deal, one ID per seat in order. Used by
// tests and scripted scenarios.
func WithRoster(ids []CharacterID) SessionOption {
	return func(s *Session) { s.roster = ids }
}

// NewSession creates a session, deals characters, builds the three decks and
// registers every player's declared ability. Player IDs are seat indexes.
func NewSession(logger *zap.Logger, specs []PlayerSpec, opts ...SessionOption) (*Session, error) {
	s := &Session{
		ID:       uuid.NewString(),
		logger:   logger,
		byID:     make(map[int]*Player),
		board:    DefaultBoard(),
		decks:    make(map[DeckKind]*Deck),
		bus:      rules.NewEventBus(),
		registry: rules.NewRegistry(),
		rng:      rand.New(rand.NewSource(rand.Int63())),
		phase:    PhaseMovement,
		turn:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dice == nil {
		s.dice = NewRandRoller(s.rng)
	}

	roster, err := s.buildRoster(len(specs))
	if err != nil {
		return nil, err
	}
	for i, spec := range specs {
		p := NewPlayer(i, spec.Name, spec.Bot)
		p.AssignCharacter(roster[i])
		p.Position = ZoneNone
		s.players = append(s.players, p)
		s.byID[p.ID] = p
	}

	for kind, cards := range defaultDeckCards() {
		deck := NewDeck(kind, cards, s.rng)
		deck.Shuffle()
		s.decks[kind] = deck
	}

	s.tracker = NewKillTracker()
	s.wireTriggers()

	for _, p := range s.players {
		if err := s.RegisterPlayerAbility(p.ID); err != nil {
			s.logger.Warn("ability registration rejected",
				zap.Int("player_id", p.ID),
				zap.String("character", string(p.Character)),
				zap.Error(err),
			)
		}
	}

	s.publish(rules.NewEvent(rules.EventGameStarted, -1, -1))
	return s, nil
}

// buildRoster returns the character per seat: the pinned roster when set,
// otherwise a random faction-balanced deal.
func (s *Session) buildRoster(seats int) ([]Character, error) {
	if s.roster != nil {
		if len(s.roster) != seats {
			return nil, fmt.Errorf("roster has %d characters for %d seats", len(s.roster), seats)
		}
		roster := make([]Character, 0, seats)
		for _, id := range s.roster {
			c, ok := LookupCharacter(id)
			if !ok {
				return nil, fmt.Errorf("unknown character %q", id)
			}
			roster = append(roster, c)
		}
		return roster, nil
	}
	counts, ok := factionCounts[seats]
	if !ok {
		return nil, fmt.Errorf("unsupported player count %d", seats)
	}
	return s.dealCharacters(counts), nil
}

// dealCharacters picks and shuffles a faction-balanced roster.
func (s *Session) dealCharacters(counts [3]int) []Character {
	var hunters, shadows, neutrals []Character
	for _, id := range CharacterIDs() {
		c := characterTable[id]
		switch c.Faction {
		case FactionHunter:
			hunters = append(hunters, c)
		case FactionShadow:
			shadows = append(shadows, c)
		case FactionNeutral:
			neutrals = append(neutrals, c)
		}
	}
	pick := func(pool []Character, n int) []Character {
		s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		return pool[:n]
	}
	roster := append([]Character{}, pick(hunters, counts[0])...)
	roster = append(roster, pick(shadows, counts[1])...)
	roster = append(roster, pick(neutrals, counts[2])...)
	s.rng.Shuffle(len(roster), func(i, j int) { roster[i], roster[j] = roster[j], roster[i] })
	return roster
}

// Lock acquires the session's single-writer lock. Callers must hold it for
// the full span of one action.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the single-writer lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Player returns the player with the given ID.
func (s *Session) Player(id int) (*Player, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Players returns the seat-ordered player list. Callers must not mutate it.
func (s *Session) Players() []*Player {
	return s.players
}

// Board returns the session's zone ring.
func (s *Session) Board() *Board {
	return s.board
}

// Deck returns the deck of the given kind.
func (s *Session) Deck(kind DeckKind) (*Deck, bool) {
	d, ok := s.decks[kind]
	return d, ok
}

// Bus exposes the session event bus for external listeners (broadcasters,
// metrics). Listeners observe events synchronously and must not mutate state.
func (s *Session) Bus() *rules.EventBus {
	return s.bus
}

// GameOver reports whether the session has ended and who won.
func (s *Session) GameOver() (bool, []int) {
	return s.gameOver, s.winners
}

// Turn returns the global turn counter.
func (s *Session) Turn() int {
	return s.turn
}

// Phase returns the current phase of the active player's turn.
func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentPlayer returns the active player.
func (s *Session) CurrentPlayer() *Player {
	return s.players[s.currentIdx]
}

func (s *Session) publish(evt rules.Event) {
	evt.Turn = s.turn
	s.bus.Publish(evt)
}

// livingCount returns how many players are alive, optionally per faction.
func (s *Session) livingCount(faction Faction) int {
	count := 0
	for _, p := range s.players {
		if p.Alive && (faction == "" || p.Faction == faction) {
			count++
		}
	}
	return count
}
