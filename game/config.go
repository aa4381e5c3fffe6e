package game

import (
	"fmt"
	"sort"
)

const (
	MinBoardSize = 4
	MaxBoardSize = 10

	DefaultTurnLimit       = 1000
	DefaultRepetitionLimit = 3
	DefaultMaxInvalidTries = 3
)

// Config parametrizes one match: board size, piece table, lake layout and
// the optional rule toggles. One engine, any variant - instead of one engine
// copy per board size.
type Config struct {
	Name   string
	Size   int
	Pieces map[Rank]int
	Lakes  []Position

	// TurnLimit is the ply cap before the match is drawn.
	TurnLimit int
	// RepetitionLimit enables the two-squares rule: the nth consecutive
	// reversal of a player's own previous move is illegal. 0 disables it.
	RepetitionLimit int
	// MaxInvalidTries is how many rejected submissions in a row the match
	// runner tolerates before forfeiting the offender.
	MaxInvalidTries int
	// FullVisibility disables fog of war in rendered observations.
	FullVisibility bool
}

// DefaultLakes derives the lake layout from the board size: a single center
// cell for small boards, a 2×2 center block for larger ones.
func DefaultLakes(size int) []Position {
	if size < 6 {
		return []Position{{Row: size / 2, Col: size / 2}}
	}
	lo := size/2 - 1
	return []Position{
		{Row: lo, Col: lo}, {Row: lo, Col: lo + 1},
		{Row: lo + 1, Col: lo}, {Row: lo + 1, Col: lo + 1},
	}
}

// TinyConfig is a 4×4 teaching board with no bombs.
func TinyConfig() Config {
	return withDefaults(Config{
		Name: "tiny",
		Size: 4,
		Pieces: map[Rank]int{
			Flag:    1,
			Spy:     1,
			Scout:   1,
			Marshal: 1,
		},
		Lakes: DefaultLakes(4),
	})
}

// QuickConfig is a 6×6 board with a reduced piece set.
func QuickConfig() Config {
	return withDefaults(Config{
		Name: "quick",
		Size: 6,
		Pieces: map[Rank]int{
			Flag:    1,
			Bomb:    2,
			Spy:     1,
			Scout:   2,
			Miner:   2,
			General: 1,
			Marshal: 1,
		},
		Lakes: DefaultLakes(6),
	})
}

// ClassicConfig is the full 10×10 game with the two classic lakes and the
// standard 40-piece army.
func ClassicConfig() Config {
	lakes := []Position{}
	for _, row := range []int{4, 5} {
		for _, col := range []int{2, 3, 6, 7} {
			lakes = append(lakes, Position{Row: row, Col: col})
		}
	}
	return withDefaults(Config{
		Name: "classic",
		Size: 10,
		Pieces: map[Rank]int{
			Flag:       1,
			Bomb:       6,
			Spy:        1,
			Scout:      8,
			Miner:      5,
			Sergeant:   4,
			Lieutenant: 4,
			Captain:    4,
			Major:      3,
			Colonel:    2,
			General:    1,
			Marshal:    1,
		},
		Lakes: lakes,
	})
}

func withDefaults(cfg Config) Config {
	if cfg.TurnLimit == 0 {
		cfg.TurnLimit = DefaultTurnLimit
	}
	if cfg.RepetitionLimit == 0 {
		cfg.RepetitionLimit = DefaultRepetitionLimit
	}
	if cfg.MaxInvalidTries == 0 {
		cfg.MaxInvalidTries = DefaultMaxInvalidTries
	}
	return cfg
}

var variants = map[string]func() Config{
	"tiny":    TinyConfig,
	"quick":   QuickConfig,
	"classic": ClassicConfig,
}

// VariantConfig looks up a named board variant.
func VariantConfig(name string) (Config, error) {
	ctor, ok := variants[name]
	if !ok {
		return Config{}, configErrorf("unknown variant %q (have %v)", name, VariantNames())
	}
	return ctor(), nil
}

func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PieceTotal is the per-player army size.
func (cfg Config) PieceTotal() int {
	total := 0
	for _, n := range cfg.Pieces {
		total += n
	}
	return total
}

// ZoneDepth is the number of setup rows each player gets.
func (cfg Config) ZoneDepth() int {
	return (cfg.PieceTotal() + cfg.Size - 1) / cfg.Size
}

// ZoneRows returns the inclusive setup row band for a player: Red at the top
// of the board, Blue at the bottom.
func (cfg Config) ZoneRows(p Player) (lo, hi int) {
	depth := cfg.ZoneDepth()
	if p == Red {
		return 0, depth - 1
	}
	return cfg.Size - depth, cfg.Size - 1
}

// Validate rejects configurations the setup procedure cannot satisfy. It
// runs once at match creation; placement itself never needs to retry or
// hang on a too-small zone.
func (cfg Config) Validate() error {
	if cfg.Size < MinBoardSize || cfg.Size > MaxBoardSize {
		return configErrorf("board size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, cfg.Size)
	}
	if len(cfg.Pieces) == 0 {
		return configErrorf("piece table is empty")
	}
	for rank, n := range cfg.Pieces {
		if rank < Flag || rank > Bomb {
			return configErrorf("unknown rank %d in piece table", rank)
		}
		if n < 0 {
			return configErrorf("negative count %d for %s", n, rank)
		}
	}
	if cfg.Pieces[Flag] != 1 {
		return configErrorf("each side needs exactly one %s, got %d", Flag, cfg.Pieces[Flag])
	}
	if cfg.TurnLimit <= 0 {
		return configErrorf("turn limit must be positive, got %d", cfg.TurnLimit)
	}
	if cfg.RepetitionLimit < 0 {
		return configErrorf("repetition limit must not be negative, got %d", cfg.RepetitionLimit)
	}

	lakeSet := make(map[Position]struct{}, len(cfg.Lakes))
	for _, lake := range cfg.Lakes {
		if lake.Row < 0 || lake.Row >= cfg.Size || lake.Col < 0 || lake.Col >= cfg.Size {
			return configErrorf("lake %v is off the %d×%d board", lake, cfg.Size, cfg.Size)
		}
		if _, dup := lakeSet[lake]; dup {
			return configErrorf("duplicate lake cell %v", lake)
		}
		lakeSet[lake] = struct{}{}
	}

	depth := cfg.ZoneDepth()
	if 2*depth > cfg.Size {
		return configErrorf("%d pieces need %d setup rows per side, board has only %d rows",
			cfg.PieceTotal(), depth, cfg.Size)
	}
	for _, p := range []Player{Red, Blue} {
		lo, hi := cfg.ZoneRows(p)
		for _, lake := range cfg.Lakes {
			if lake.Row >= lo && lake.Row <= hi {
				return configErrorf("lake %v overlaps the %s setup zone (rows %d-%d)", lake, p, lo, hi)
			}
		}
	}
	return nil
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s (%d×%d, %d pieces per side)", cfg.Name, cfg.Size, cfg.Size, cfg.PieceTotal())
}
