package game

import (
	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// WinContextEvent tags what provoked a win check.
type WinContextEvent string

const (
	ContextNone       WinContextEvent = ""
	ContextKill       WinContextEvent = "kill"
	ContextGameEnding WinContextEvent = "game_ending"
)

// WinContext is the provoking event passed to CheckWinConditions.
type WinContext struct {
	Event    WinContextEvent
	KillerID int
	VictimID int
}

// DeathRecord is one entry in the append-only death order.
type DeathRecord struct {
	VictimID    int
	KillerID    int
	VictimMaxHP int
	Turn        int
	// TotalDead is the cumulative body count including this death.
	TotalDead int
}

// KillTracker records kill order for the lifetime of one game session.
type KillTracker struct {
	firstKillerID int
	firstVictimID int
	deaths        []DeathRecord
}

// NewKillTracker returns a tracker with no recorded deaths.
func NewKillTracker() *KillTracker {
	return &KillTracker{firstKillerID: -1, firstVictimID: -1}
}

// RegisterKill records a death. Called once per death, before the
// corresponding win check.
func (kt *KillTracker) RegisterKill(killerID, victimID, victimMaxHP, turn int) {
	if kt.firstKillerID < 0 && killerID >= 0 {
		kt.firstKillerID = killerID
	}
	if kt.firstVictimID < 0 {
		kt.firstVictimID = victimID
	}
	kt.deaths = append(kt.deaths, DeathRecord{
		VictimID:    victimID,
		KillerID:    killerID,
		VictimMaxHP: victimMaxHP,
		Turn:        turn,
		TotalDead:   len(kt.deaths) + 1,
	})
}

// FirstKillerID returns the first player to land a kill, -1 if none yet.
func (kt *KillTracker) FirstKillerID() int { return kt.firstKillerID }

// FirstVictimID returns the first player to die, -1 if none yet.
func (kt *KillTracker) FirstVictimID() int { return kt.firstVictimID }

// Deaths returns the death order. Callers must not mutate it.
func (kt *KillTracker) Deaths() []DeathRecord { return kt.deaths }

// WinResult is the outcome of a win check.
type WinResult struct {
	GameOver bool
	Winners  []int
	Faction  Faction // winning faction, empty for neutral-only endings
}

// CheckWinConditions evaluates faction and neutral win conditions under the
// provoking context and, when the game ends, records the winner set and
// raises the game-ended event.
func (s *Session) CheckWinConditions(ctx WinContext) WinResult {
	if s.gameOver {
		return WinResult{GameOver: true, Winners: s.winners}
	}

	result := s.evaluateWin(ctx)
	if !result.GameOver {
		return result
	}

	s.gameOver = true
	s.winners = result.Winners
	s.logger.Info("game over",
		zap.String("faction", string(result.Faction)),
		zap.Ints("winners", result.Winners),
	)
	evt := rules.NewEvent(rules.EventGameEnded, -1, -1)
	evt.Data = string(result.Faction)
	s.publish(evt)
	return result
}

func (s *Session) evaluateWin(ctx WinContext) WinResult {
	huntersAlive := s.livingCount(FactionHunter)
	shadowsAlive := s.livingCount(FactionShadow)

	// Simultaneous mutual extinction is a win for neither side.
	var factionWinner Faction
	switch {
	case shadowsAlive == 0 && huntersAlive > 0:
		factionWinner = FactionHunter
	case huntersAlive == 0 && shadowsAlive > 0:
		factionWinner = FactionShadow
	}

	gameEnding := factionWinner != "" || ctx.Event == ContextGameEnding
	if !gameEnding {
		for _, p := range s.players {
			if p.Faction == FactionNeutral && s.neutralGameEnding(p, ctx) {
				gameEnding = true
				break
			}
		}
	}
	if !gameEnding {
		return WinResult{}
	}

	// Final pass under a game_ending context catches the passive
	// alive-at-the-end conditions.
	endCtx := WinContext{Event: ContextGameEnding, KillerID: ctx.KillerID, VictimID: ctx.VictimID}
	var winners []int
	for _, p := range s.players {
		switch {
		case factionWinner != "" && p.Faction == factionWinner:
			winners = append(winners, p.ID)
		case p.Faction == FactionNeutral && s.neutralSatisfied(p, endCtx):
			winners = append(winners, p.ID)
		}
	}
	return WinResult{GameOver: true, Winners: winners, Faction: factionWinner}
}

// neutralGameEnding reports whether a neutral player's condition both holds
// and is classified as ending the game on its own. The classification is
// per character and deliberately non-uniform: the Collector, Opportunist and
// the Slayer's kill condition end the game; the rest only resolve at the
// final check.
func (s *Session) neutralGameEnding(p *Player, ctx WinContext) bool {
	switch p.Character {
	case CharCollector:
		return p.Alive && len(p.Equipment) >= collectorEquipmentGoal
	case CharOpportunist:
		return ctx.Event == ContextKill && ctx.KillerID == p.ID && s.opportunistSatisfied(p)
	case CharSlayer:
		return ctx.Event == ContextKill && ctx.KillerID == p.ID && s.slayerHeavyKill(p)
	default:
		return false
	}
}

// neutralSatisfied evaluates a neutral player's individual win condition.
// Unrecognized neutral characters fall back to winning while alive.
func (s *Session) neutralSatisfied(p *Player, ctx WinContext) bool {
	return s.neutralSatisfiedGuarded(p, ctx, false)
}

func (s *Session) neutralSatisfiedGuarded(p *Player, ctx WinContext, viaNeighbor bool) bool {
	switch p.Character {
	case CharWanderer:
		return ctx.Event == ContextGameEnding && p.Alive
	case CharCollector:
		return p.Alive && len(p.Equipment) >= collectorEquipmentGoal
	case CharOpportunist:
		return s.opportunistSatisfied(p)
	case CharFirstblood:
		return s.tracker.FirstKillerID() == p.ID || s.tracker.FirstVictimID() == p.ID
	case CharTwinsoul:
		// Never recurse into another neighbor-dependent character.
		if viaNeighbor {
			return false
		}
		neighbor := s.neighborOf(p)
		if neighbor == nil {
			return false
		}
		return s.neutralNeighborSatisfied(neighbor, ctx)
	case CharSlayer:
		if s.slayerHeavyKill(p) {
			return true
		}
		if ctx.Event != ContextGameEnding || !p.Alive {
			return false
		}
		zone, ok := s.board.Zone(p.Position)
		return ok && zone.Chapel
	case CharMartyr:
		if s.tracker.FirstVictimID() == p.ID {
			return true
		}
		return p.Alive && s.livingCount("") <= 2
	case CharCurator:
		return p.RelicCount() >= curatorRelicGoal
	default:
		s.logger.Warn("unknown neutral win condition, defaulting to alive-wins",
			zap.String("character", string(p.Character)),
			zap.Int("player_id", p.ID),
		)
		return p.Alive
	}
}

// neutralNeighborSatisfied evaluates the neighbor's own condition for the
// Twinsoul. Faction players never "satisfy a condition" in this sense.
func (s *Session) neutralNeighborSatisfied(neighbor *Player, ctx WinContext) bool {
	if neighbor.Faction != FactionNeutral {
		return false
	}
	return s.neutralSatisfiedGuarded(neighbor, ctx, true)
}

// neighborOf returns the seat to the right, or to the left while a
// direction-swap effect is active.
func (s *Session) neighborOf(p *Player) *Player {
	n := len(s.players)
	if n < 2 {
		return nil
	}
	step := 1
	if s.capriccio {
		step = n - 1
	}
	return s.players[(p.ID+step)%n]
}

func (s *Session) opportunistSatisfied(p *Player) bool {
	for _, record := range s.tracker.Deaths() {
		if record.KillerID == p.ID && record.TotalDead >= opportunistDeathGoal {
			return true
		}
	}
	return false
}

func (s *Session) slayerHeavyKill(p *Player) bool {
	for _, record := range s.tracker.Deaths() {
		if record.KillerID == p.ID && record.VictimMaxHP >= slayerHPThreshold {
			return true
		}
	}
	return false
}
