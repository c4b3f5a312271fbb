package game

// PlayerView is the public, read-only view of one player. Secret identity
// fields are populated only after the player is revealed.
type PlayerView struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Bot       bool     `json:"bot"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"hp_max"`
	Alive     bool     `json:"alive"`
	Revealed  bool     `json:"revealed"`
	Character string   `json:"character,omitempty"`
	Faction   string   `json:"faction,omitempty"`
	Position  int      `json:"position"`
	Equipment []string `json:"equipment"`
	HandSize  int      `json:"hand_size"`
}

// SnapshotView is the read-only roster and turn state consumed by the win
// evaluator's callers, renderers, broadcasters and bot drivers.
type SnapshotView struct {
	GameID        string        `json:"game_id"`
	Turn          int           `json:"turn"`
	Phase         string        `json:"phase"`
	CurrentPlayer int           `json:"current_player"`
	GameOver      bool          `json:"game_over"`
	Winners       []int         `json:"winners,omitempty"`
	Players       []PlayerView  `json:"players"`
	DeathOrder    []DeathRecord `json:"death_order,omitempty"`
}

// Snapshot builds the public view of the session. Callers must hold the
// session lock if the game is in motion.
func (s *Session) Snapshot() SnapshotView {
	view := SnapshotView{
		GameID:        s.ID,
		Turn:          s.turn,
		Phase:         s.phase.String(),
		CurrentPlayer: s.players[s.currentIdx].ID,
		GameOver:      s.gameOver,
		Winners:       append([]int(nil), s.winners...),
		DeathOrder:    append([]DeathRecord(nil), s.tracker.Deaths()...),
	}
	for _, p := range s.players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Bot:       p.Bot,
			HP:        p.HP,
			MaxHP:     p.MaxHP,
			Alive:     p.Alive,
			Revealed:  p.Revealed,
			Position:  int(p.Position),
			Equipment: make([]string, 0, len(p.Equipment)),
			HandSize:  len(p.Hand),
		}
		if p.Revealed {
			pv.Character = string(p.Character)
			pv.Faction = string(p.Faction)
		}
		for _, card := range p.Equipment {
			pv.Equipment = append(pv.Equipment, card.Name)
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
