package metrics

import "time"

// MatchConfig describes one scheduled game for the benchmark CSVs.
type MatchConfig struct {
	ID        int
	Variant   string
	Seed      uint64
	RedAgent  string
	BlueAgent string
}

// GameRecord is one finished match.
type GameRecord struct {
	ID        int
	Variant   string
	Seed      uint64
	RedAgent  string
	BlueAgent string
	Status    string
	Winner    string // empty on draws
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// MoveRecord is one applied ply.
type MoveRecord struct {
	Game     int // GameRecord.ID
	Turn     int
	Player   string
	Move     string
	Outcome  string
	Rejected int // invalid submissions before this ply was accepted
	Duration time.Duration
}
