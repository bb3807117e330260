// Package terminal is a line-oriented blackjack table for a local terminal.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"blackjack21/internal/game"
	"blackjack21/internal/scoresync"
	"blackjack21/internal/session"

	"github.com/pterm/pterm"
)

type Options struct {
	Ranker           scoresync.Ranker
	RewardThreshold  int
	LeaderboardLimit int
}

// Table reads commands and renders the session after each one.
type Table struct {
	out       io.Writer
	ranker    scoresync.Ranker
	threshold int
	limit     int

	mu sync.Mutex
}

func New(out io.Writer, opts Options) *Table {
	return &Table{
		out:       out,
		ranker:    opts.Ranker,
		threshold: opts.RewardThreshold,
		limit:     opts.LeaderboardLimit,
	}
}

// OnEvent is meant for session.Options.OnEvent. It narrates the dealer's draws.
func (t *Table) OnEvent(ev session.Event) {
	if ev.Kind != session.EventCardDealt || ev.Seat != session.SeatDealer || ev.Phase != game.PhaseDealerTurn {
		return
	}
	t.print(pterm.Info.Sprintfln("Dealer draws %s", renderCard(ev.Card)))
}

func (t *Table) print(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.out, s)
}

// Run processes commands from in until quit, end of input or ctx ends.
func (t *Table) Run(ctx context.Context, in io.Reader, sess *session.Session) error {
	t.print(pterm.Info.Sprintln("Welcome to Blackjack 21! Type help for commands."))
	t.print(renderTable(sess.Snapshot()))

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		t.print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !t.exec(ctx, sess, strings.ToLower(fields[0]), fields[1:]) {
			return nil
		}
	}
}

// exec runs one command and reports whether the loop should continue.
func (t *Table) exec(ctx context.Context, sess *session.Session, cmd string, args []string) bool {
	switch cmd {
	case "quit", "exit", "q":
		t.print(pterm.Info.Sprintln("Bye!"))
		return false

	case "help", "h", "?":
		t.print(helpText + "\n")

	case "connect":
		if len(args) == 0 {
			t.print(pterm.Error.Sprintln("usage: connect <address>"))
			return true
		}
		sess.Connect(ctx, args[0])
		t.print(renderTable(sess.Snapshot()))

	case "disconnect":
		sess.Disconnect()
		t.print(renderTable(sess.Snapshot()))

	case "start", "deal":
		sess.Start()
		t.showRound(sess)

	case "reset":
		sess.Reset()
		t.showRound(sess)

	case "hit":
		if !sess.Hit() {
			t.print(pterm.Error.Sprintln("You can't hit right now."))
			return true
		}
		t.afterAction(ctx, sess)

	case "stand":
		if !sess.Stand() {
			t.print(pterm.Error.Sprintln("You can't stand right now."))
			return true
		}
		t.afterAction(ctx, sess)

	case "score":
		snap := sess.Snapshot()
		if !snap.Connected {
			t.print(pterm.Error.Sprintln(session.MsgConnectFirst))
			return true
		}
		t.print(pterm.Info.Sprintfln("Score: %d", snap.Score))
		t.print(renderReward(snap.Score, t.threshold))

	case "top":
		t.showLeaderboard(ctx)

	default:
		t.print(pterm.Error.Sprintfln("Unknown command %q. Type help.", cmd))
	}
	return true
}

func (t *Table) showRound(sess *session.Session) {
	snap := sess.Snapshot()
	t.print(renderTable(snap))
	if snap.Phase == game.PhaseConcluded {
		t.print(renderReward(snap.Score, t.threshold))
	}
}

func (t *Table) afterAction(ctx context.Context, sess *session.Session) {
	snap := sess.Snapshot()
	if snap.Phase != game.PhaseDealerTurn {
		t.showRound(sess)
		return
	}

	t.print(renderTable(snap))
	if sess.PlayDealer(ctx) == game.ResultNone {
		return
	}
	t.showRound(sess)
}

func (t *Table) showLeaderboard(ctx context.Context) {
	if t.ranker == nil {
		t.print(pterm.Error.Sprintln("Leaderboard is not available."))
		return
	}

	scores, err := t.ranker.Leaderboard(ctx, t.limit)
	if err != nil {
		t.print(pterm.Error.Sprintfln("Failed to load leaderboard: %v", err))
		return
	}
	t.print(renderLeaderboard(scores))
}
