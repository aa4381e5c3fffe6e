package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// testConfig is a lakeless board for hand-built positions. Scenario tests
// place their own pieces, so the piece table only matters for setup tests.
func testConfig(size int) Config {
	return withDefaults(Config{
		Name: "test",
		Size: size,
		Pieces: map[Rank]int{
			Flag:  1,
			Scout: 1,
		},
	})
}

func testState(t *testing.T, cfg Config, pieces map[Position]Piece) *State {
	t.Helper()
	s := newEmptyState(cfg)
	for pos, pc := range pieces {
		s.place(pos, pc)
	}
	s.refresh()
	return s
}

func at(row, col int) Position {
	return Position{Row: row, Col: col}
}

func TestBattleResolution(t *testing.T) {
	// Flags anchor each side so elimination checks stay out of the way.
	anchors := map[Position]Piece{
		at(0, 5): {Rank: Flag, Owner: Red},
		at(5, 5): {Rank: Flag, Owner: Blue},
		at(0, 4): {Rank: Scout, Owner: Red},
		at(5, 4): {Rank: Scout, Owner: Blue},
	}
	build := func(t *testing.T, extra map[Position]Piece) *State {
		pieces := map[Position]Piece{}
		for pos, pc := range anchors {
			pieces[pos] = pc
		}
		for pos, pc := range extra {
			pieces[pos] = pc
		}
		return testState(t, testConfig(6), pieces)
	}

	t.Run("spy defeats marshal when attacking", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 1): {Rank: Spy, Owner: Red},
			at(1, 2): {Rank: Marshal, Owner: Blue},
		})
		out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
		require.NoError(t, err)
		require.Equal(t, OutcomeAttackerWon, out.Kind)
		pc, ok := s.Board().At(at(1, 2))
		require.True(t, ok)
		require.Equal(t, Piece{Rank: Spy, Owner: Red}, pc)
		_, ok = s.Board().At(at(1, 1))
		require.False(t, ok, "spy should have vacated its source cell")
	})

	t.Run("marshal defeats spy when attacking", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 1): {Rank: Spy, Owner: Red},
			at(1, 2): {Rank: Marshal, Owner: Blue},
		})
		s.current = Blue
		out, err := s.Apply(Blue, Move{From: at(1, 2), To: at(1, 1)})
		require.NoError(t, err)
		require.Equal(t, OutcomeAttackerWon, out.Kind)
		pc, ok := s.Board().At(at(1, 1))
		require.True(t, ok)
		require.Equal(t, Piece{Rank: Marshal, Owner: Blue}, pc)
	})

	t.Run("miner defuses bomb", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 1): {Rank: Miner, Owner: Red},
			at(1, 2): {Rank: Bomb, Owner: Blue},
		})
		out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
		require.NoError(t, err)
		require.Equal(t, OutcomeDefused, out.Kind)
		pc, ok := s.Board().At(at(1, 2))
		require.True(t, ok)
		require.Equal(t, Piece{Rank: Miner, Owner: Red}, pc)
	})

	t.Run("non-miner dies on bomb and the bomb stays", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 1): {Rank: General, Owner: Red},
			at(1, 2): {Rank: Bomb, Owner: Blue},
		})
		out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
		require.NoError(t, err)
		require.Equal(t, OutcomeDefenderWon, out.Kind)
		pc, ok := s.Board().At(at(1, 2))
		require.True(t, ok)
		require.Equal(t, Piece{Rank: Bomb, Owner: Blue}, pc)
		_, ok = s.Board().At(at(1, 1))
		require.False(t, ok, "attacker should be removed")
	})

	t.Run("equal ranks remove both pieces", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 1): {Rank: Captain, Owner: Red},
			at(1, 2): {Rank: Captain, Owner: Blue},
		})
		out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
		require.NoError(t, err)
		require.Equal(t, OutcomeBothLost, out.Kind)
		_, ok := s.Board().At(at(1, 1))
		require.False(t, ok)
		_, ok = s.Board().At(at(1, 2))
		require.False(t, ok)
	})

	t.Run("flag capture ends the match immediately", func(t *testing.T) {
		s := build(t, map[Position]Piece{
			at(1, 5): {Rank: Sergeant, Owner: Blue},
		})
		s.current = Blue
		out, err := s.Apply(Blue, Move{From: at(1, 5), To: at(0, 5)})
		require.NoError(t, err)
		require.Equal(t, OutcomeFlagCaptured, out.Kind)
		require.Equal(t, WonByFlag, s.Status())
		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Blue, winner)

		_, err = s.Apply(Red, Move{From: at(0, 4), To: at(1, 4)})
		require.ErrorIs(t, err, ErrTerminalState, "no move may follow a terminal state")
	})

	t.Run("higher strength wins regardless of attack direction", func(t *testing.T) {
		for _, attacker := range []Rank{Scout, Miner, Sergeant, Lieutenant, Captain, Major, Colonel, General, Marshal} {
			for _, defender := range []Rank{Spy, Scout, Miner, Sergeant, Lieutenant, Captain, Major, Colonel, General, Marshal} {
				if attacker.Strength() <= defender.Strength() {
					continue
				}
				if attacker == Marshal && defender == Spy {
					continue // covered above; still a normal win
				}
				s := build(t, map[Position]Piece{
					at(1, 1): {Rank: attacker, Owner: Red},
					at(1, 2): {Rank: defender, Owner: Blue},
				})
				out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
				require.NoError(t, err)
				require.Equal(t, OutcomeAttackerWon, out.Kind, "%s attacking %s", attacker, defender)

				s = build(t, map[Position]Piece{
					at(1, 1): {Rank: defender, Owner: Red},
					at(1, 2): {Rank: attacker, Owner: Blue},
				})
				s.current = Blue
				out, err = s.Apply(Blue, Move{From: at(1, 2), To: at(1, 1)})
				require.NoError(t, err)
				require.Equal(t, OutcomeAttackerWon, out.Kind, "%s attacked by %s", defender, attacker)
				pc, ok := s.Board().At(at(1, 1))
				require.True(t, ok)
				require.Equal(t, attacker, pc.Rank, "the stronger piece survives either way")
			}
		}
	})
}

func TestValidationReasons(t *testing.T) {
	cfg := withDefaults(Config{
		Name:   "test-lakes",
		Size:   6,
		Pieces: map[Rank]int{Flag: 1, Scout: 1},
		Lakes:  DefaultLakes(6),
	})
	s := testState(t, cfg, map[Position]Piece{
		at(0, 0): {Rank: Flag, Owner: Red},
		at(0, 1): {Rank: Bomb, Owner: Red},
		at(1, 1): {Rank: Miner, Owner: Red},
		at(1, 2): {Rank: Scout, Owner: Red},
		at(5, 5): {Rank: Flag, Owner: Blue},
		at(4, 5): {Rank: Scout, Owner: Blue},
	})

	cases := []struct {
		name   string
		mv     Move
		reason Reason
	}{
		{"destination off the board", Move{From: at(0, 0), To: at(0, -1)}, ReasonOutOfBounds},
		{"empty source", Move{From: at(3, 0), To: at(3, 1)}, ReasonEmptySource},
		{"opponent's piece", Move{From: at(4, 5), To: at(4, 4)}, ReasonNotYourPiece},
		{"immovable bomb", Move{From: at(0, 1), To: at(1, 1)}, ReasonImmovable},
		{"diagonal step", Move{From: at(1, 1), To: at(2, 2)}, ReasonBadShape},
		{"miner sliding like a scout", Move{From: at(1, 1), To: at(3, 1)}, ReasonBadShape},
		{"scout through a lake", Move{From: at(1, 2), To: at(4, 2)}, ReasonBlockedPath},
		{"scout through a piece", Move{From: at(1, 2), To: at(1, 0)}, ReasonBlockedPath},
		{"lake destination", Move{From: at(1, 2), To: at(2, 2)}, ReasonLakeDestination},
		{"own piece at destination", Move{From: at(1, 2), To: at(1, 1)}, ReasonOwnPieceDestination},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Apply(Red, tc.mv)
			var invalid *InvalidMoveError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, tc.reason, invalid.Reason)
			require.Equal(t, Ongoing, s.Status(), "rejections must not end the match")
		})
	}

	t.Run("out of turn", func(t *testing.T) {
		_, err := s.Apply(Blue, Move{From: at(4, 5), To: at(4, 4)})
		var invalid *InvalidMoveError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, ReasonNotYourTurn, invalid.Reason)
	})
}

func TestTermination(t *testing.T) {
	t.Run("both sides frozen is a stalemate", func(t *testing.T) {
		s := testState(t, testConfig(6), map[Position]Piece{
			at(0, 0): {Rank: Flag, Owner: Red},
			at(0, 1): {Rank: Bomb, Owner: Red},
			at(5, 5): {Rank: Flag, Owner: Blue},
			at(5, 4): {Rank: Bomb, Owner: Blue},
		})
		require.Equal(t, DrawByStalemate, s.Status())
	})

	t.Run("side without movable pieces loses by elimination", func(t *testing.T) {
		s := testState(t, testConfig(6), map[Position]Piece{
			at(0, 0): {Rank: Flag, Owner: Red},
			at(1, 1): {Rank: Scout, Owner: Red},
			at(5, 5): {Rank: Flag, Owner: Blue},
			at(5, 4): {Rank: Bomb, Owner: Blue},
		})
		require.Equal(t, WonByElimination, s.Status())
		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Red, winner)
	})

	t.Run("losing the last movable piece ends the match", func(t *testing.T) {
		s := testState(t, testConfig(6), map[Position]Piece{
			at(0, 0): {Rank: Flag, Owner: Red},
			at(1, 1): {Rank: Marshal, Owner: Red},
			at(1, 2): {Rank: Scout, Owner: Blue},
			at(5, 5): {Rank: Flag, Owner: Blue},
		})
		out, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 2)})
		require.NoError(t, err)
		require.Equal(t, OutcomeAttackerWon, out.Kind)
		require.Equal(t, WonByElimination, s.Status())
		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Red, winner)
	})

	t.Run("turn limit draws the match", func(t *testing.T) {
		cfg := testConfig(6)
		cfg.TurnLimit = 2
		s := testState(t, cfg, map[Position]Piece{
			at(0, 0): {Rank: Flag, Owner: Red},
			at(1, 1): {Rank: Marshal, Owner: Red},
			at(4, 4): {Rank: Marshal, Owner: Blue},
			at(5, 5): {Rank: Flag, Owner: Blue},
		})
		_, err := s.Apply(Red, Move{From: at(1, 1), To: at(1, 0)})
		require.NoError(t, err)
		_, err = s.Apply(Blue, Move{From: at(4, 4), To: at(4, 5)})
		require.NoError(t, err)
		require.Equal(t, Ongoing, s.Status())
		_, err = s.Apply(Red, Move{From: at(1, 0), To: at(2, 0)})
		require.NoError(t, err)
		require.Equal(t, DrawByTurnLimit, s.Status())
		_, ok := s.Winner()
		require.False(t, ok)
	})

	t.Run("forfeit awards the opponent", func(t *testing.T) {
		s := testState(t, testConfig(6), map[Position]Piece{
			at(0, 0): {Rank: Flag, Owner: Red},
			at(1, 1): {Rank: Scout, Owner: Red},
			at(4, 4): {Rank: Scout, Owner: Blue},
			at(5, 5): {Rank: Flag, Owner: Blue},
		})
		require.NoError(t, s.Forfeit(Red))
		require.Equal(t, ForfeitByInvalidMove, s.Status())
		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Blue, winner)
		require.ErrorIs(t, s.Forfeit(Blue), ErrTerminalState)
	})
}

func TestRepetitionRule(t *testing.T) {
	newOscillation := func(t *testing.T, limit int) *State {
		cfg := testConfig(6)
		cfg.RepetitionLimit = limit
		return testState(t, cfg, map[Position]Piece{
			at(0, 0): {Rank: Scout, Owner: Red},
			at(0, 5): {Rank: Flag, Owner: Red},
			at(5, 5): {Rank: Scout, Owner: Blue},
			at(5, 0): {Rank: Flag, Owner: Blue},
		})
	}

	t.Run("fourth move of an oscillating pair is rejected", func(t *testing.T) {
		s := newOscillation(t, 3)
		redMoves := []Move{
			{From: at(0, 0), To: at(0, 1)},
			{From: at(0, 1), To: at(0, 0)},
			{From: at(0, 0), To: at(0, 1)},
		}
		// Blue marches forward so only red oscillates.
		blueMoves := []Move{
			{From: at(5, 5), To: at(5, 4)},
			{From: at(5, 4), To: at(5, 3)},
			{From: at(5, 3), To: at(5, 2)},
		}
		for i, mv := range redMoves {
			_, err := s.Apply(Red, mv)
			require.NoError(t, err, "move %d", i+1)
			_, err = s.Apply(Blue, blueMoves[i])
			require.NoError(t, err)
		}

		barred := Move{From: at(0, 1), To: at(0, 0)}
		require.NotContains(t, s.LegalMoves(Red), barred,
			"the barred reversal must not be enumerated")
		_, err := s.Apply(Red, barred)
		var invalid *InvalidMoveError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, ReasonRepetition, invalid.Reason)

		// Any other move resets the counter and stays legal.
		_, err = s.Apply(Red, Move{From: at(0, 1), To: at(1, 1)})
		require.NoError(t, err)
	})

	t.Run("disabled when the limit is zero", func(t *testing.T) {
		s := newOscillation(t, 3)
		s.cfg.RepetitionLimit = 0
		for i := 0; i < 6; i++ {
			redMove := Move{From: at(0, i%2), To: at(0, 1-i%2)}
			_, err := s.Apply(Red, redMove)
			require.NoError(t, err, "oscillation %d should stay legal", i+1)
			blueMove := Move{From: at(5, 5-i%2), To: at(5, 4+i%2)}
			_, err = s.Apply(Blue, blueMove)
			require.NoError(t, err)
		}
	})
}

// TestRandomPlayoutInvariants plays random games end to end and checks the
// board/index bookkeeping after every ply.
func TestRandomPlayoutInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s, err := NewState(QuickConfig(), rng)
		require.NoError(t, err)

		for ply := 0; !s.Status().Terminal() && ply < 2000; ply++ {
			p := s.Current()
			moves := s.LegalMoves(p)
			require.Equal(t, s.MovesAvailable(p), len(moves), "cached count must match enumeration")
			require.NotEmpty(t, moves, "ongoing state must have moves for the side to move")

			for _, mv := range moves {
				require.False(t, s.Board().IsLake(mv.To), "legal move into a lake: %s", mv)
				if pc, ok := s.Board().At(mv.To); ok {
					require.NotEqual(t, p, pc.Owner, "legal move onto own piece: %s", mv)
				}
			}

			_, err := s.Apply(p, moves[rng.Intn(len(moves))])
			require.NoError(t, err)
			requireIndexConsistent(t, s)
		}
	}
}

func requireIndexConsistent(t *testing.T, s *State) {
	t.Helper()
	counts := map[Player]int{}
	for row := 0; row < s.Board().Size(); row++ {
		for col := 0; col < s.Board().Size(); col++ {
			pos := at(row, col)
			pc, ok := s.Board().At(pos)
			if !ok {
				continue
			}
			require.False(t, s.Board().IsLake(pos), "piece on a lake cell at %s", pos)
			counts[pc.Owner]++
			require.Contains(t, s.Positions(pc.Owner), pos,
				"board piece missing from %s index", pc.Owner)
		}
	}
	for _, p := range []Player{Red, Blue} {
		require.Len(t, s.Positions(p), counts[p], "%s index size must match the board", p)
	}
}
