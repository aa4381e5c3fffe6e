// Package agent defines the collaborator that produces a move string from
// an observation string. LLM-backed players live outside this repo and plug
// in behind the same interface; Random and Human cover self-play and the
// CLI.
package agent

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/exp/rand"
)

// Agent produces a move in bracket notation given an observation. The
// engine treats the call as an opaque synchronous exchange; timeouts and
// retries are the caller's concern.
type Agent interface {
	Name() string
	FindMove(observation string) (string, error)
}

// moveTokens matches the bracket notation inside the observation's legal
// move list. Boards cap at 10 rows, so A-J covers every variant.
var moveTokens = regexp.MustCompile(`\[[A-J][0-9]+ [A-J][0-9]+\]`)

// Random picks uniformly among the legal moves enumerated in the
// observation. Its own seeded RNG keeps matches replayable.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) Name() string { return "random" }

func (a *Random) FindMove(observation string) (string, error) {
	idx := strings.LastIndex(observation, "Legal moves:")
	if idx < 0 {
		return "", fmt.Errorf("observation has no legal move list")
	}
	moves := moveTokens.FindAllString(observation[idx:], -1)
	if len(moves) == 0 {
		return "", fmt.Errorf("observation lists no legal moves")
	}
	return moves[a.rng.Intn(len(moves))], nil
}

// Human prompts on out and reads one move per line from in.
type Human struct {
	in  *bufio.Reader
	out io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewReader(in), out: out}
}

func (a *Human) Name() string { return "human" }

func (a *Human) FindMove(observation string) (string, error) {
	fmt.Fprintln(a.out, observation)
	fmt.Fprint(a.out, "move> ")
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
