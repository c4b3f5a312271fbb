package game

// ZoneID indexes a board location on the ring.
type ZoneID int

// ZoneNone marks a player not yet placed on the board.
const ZoneNone ZoneID = -1

// Zone is one board location. A zone may own at most one deck kind; players
// standing in it draw from that deck.
type Zone struct {
	ID   ZoneID
	Name string
	// Deck is the deck kind drawn in this zone; empty means no deck.
	Deck DeckKind
	// Chapel marks the zone that satisfies the Slayer's standing condition.
	Chapel bool
}

// Board is the ring of zones for one session. Zone IDs are ring positions.
type Board struct {
	zones []Zone
}

// DefaultBoard returns the standard six-zone ring.
func DefaultBoard() *Board {
	return &Board{zones: []Zone{
		{ID: 0, Name: "Old Chapel", Deck: DeckLight, Chapel: true},
		{ID: 1, Name: "Black Marsh", Deck: DeckDark},
		{ID: 2, Name: "Seer's Hut", Deck: DeckVision},
		{ID: 3, Name: "Ruined Gate", Deck: DeckDark},
		{ID: 4, Name: "Moonlit Grove", Deck: DeckLight},
		{ID: 5, Name: "Standing Stones"},
	}}
}

// NewBoard builds a board from explicit zone configuration.
func NewBoard(zones []Zone) *Board {
	return &Board{zones: zones}
}

// Size returns the number of zones on the ring.
func (b *Board) Size() int {
	return len(b.zones)
}

// Zone returns the zone with the given ID.
func (b *Board) Zone(id ZoneID) (Zone, bool) {
	if id < 0 || int(id) >= len(b.zones) {
		return Zone{}, false
	}
	return b.zones[id], true
}

// DeckAt returns the deck kind for a zone; false when the zone has no deck.
func (b *Board) DeckAt(id ZoneID) (DeckKind, bool) {
	zone, ok := b.Zone(id)
	if !ok || zone.Deck == "" {
		return "", false
	}
	return zone.Deck, true
}

// Distance returns the shortest ring distance between two zones. Positions
// off the board are infinitely far from everything.
func (b *Board) Distance(from, to ZoneID) int {
	n := len(b.zones)
	if n == 0 {
		return 0
	}
	if from < 0 || to < 0 {
		return n
	}
	d := int(to) - int(from)
	if d < 0 {
		d = -d
	}
	if wrap := n - d; wrap < d {
		d = wrap
	}
	return d
}

// Reachable reports whether a move is legal for the given roll total. A
// total of seven is wild and reaches every zone other than the current one.
func (b *Board) Reachable(from, to ZoneID, rollTotal int) bool {
	if _, ok := b.Zone(to); !ok || from == to {
		return false
	}
	// The opening move from off the board reaches anywhere.
	if from == ZoneNone {
		return true
	}
	if rollTotal == wildRollTotal {
		return true
	}
	return b.Distance(from, to) <= rollTotal
}

// wildRollTotal is the movement total that permits moving anywhere.
const wildRollTotal = 7
