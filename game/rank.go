package game

// Player identifies one of the two sides. Red always moves first.
type Player int

const (
	Red Player = iota
	Blue
)

func (p Player) Opponent() Player {
	if p == Red {
		return Blue
	}
	return Red
}

func (p Player) String() string {
	if p == Red {
		return "Red"
	}
	return "Blue"
}

// Rank identifies a piece kind. The set is closed: variants use a subset of
// these ranks, never new ones.
type Rank int

const (
	Flag Rank = iota
	Spy
	Scout
	Miner
	Sergeant
	Lieutenant
	Captain
	Major
	Colonel
	General
	Marshal
	Bomb
)

var rankNames = [...]string{
	Flag:       "Flag",
	Spy:        "Spy",
	Scout:      "Scout",
	Miner:      "Miner",
	Sergeant:   "Sergeant",
	Lieutenant: "Lieutenant",
	Captain:    "Captain",
	Major:      "Major",
	Colonel:    "Colonel",
	General:    "General",
	Marshal:    "Marshal",
	Bomb:       "Bomb",
}

// Two-letter abbreviations used on the rendered board.
var rankAbbrevs = [...]string{
	Flag:       "FL",
	Spy:        "SP",
	Scout:      "SC",
	Miner:      "MI",
	Sergeant:   "SG",
	Lieutenant: "LT",
	Captain:    "CP",
	Major:      "MJ",
	Colonel:    "CL",
	General:    "GN",
	Marshal:    "MS",
	Bomb:       "BM",
}

// Combat strengths. Flag is a non-combatant, Bomb outranks everything but is
// only ever removed by a Miner.
var rankStrengths = [...]int{
	Flag:       0,
	Spy:        1,
	Scout:      2,
	Miner:      3,
	Sergeant:   4,
	Lieutenant: 5,
	Captain:    6,
	Major:      7,
	Colonel:    8,
	General:    9,
	Marshal:    10,
	Bomb:       11,
}

func (r Rank) String() string {
	if r < Flag || r > Bomb {
		return "Unknown"
	}
	return rankNames[r]
}

func (r Rank) Abbrev() string {
	if r < Flag || r > Bomb {
		return "??"
	}
	return rankAbbrevs[r]
}

func (r Rank) Strength() int {
	return rankStrengths[r]
}

// Movable reports whether pieces of this rank may move at all.
func (r Rank) Movable() bool {
	return r != Flag && r != Bomb
}

// Piece is a tagged record: rank and owner never change after placement. A
// piece is only ever removed or relocated, never re-ranked.
type Piece struct {
	Rank  Rank
	Owner Player
}
