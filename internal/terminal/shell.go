package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

// Table is the session the shell drives
type Table interface {
	PlaceBet(ctx context.Context, amount int64) (*blackjack.Result, error)
	Deal(ctx context.Context) (*blackjack.Result, error)
	Hit(ctx context.Context) (*blackjack.Result, error)
	Stand(ctx context.Context) (*blackjack.Result, error)
	Split(ctx context.Context) (*blackjack.Result, error)
	PlaceInsurance(ctx context.Context) (*blackjack.Result, error)
	Fold(ctx context.Context) (*blackjack.Result, error)
	Snapshot() *blackjack.Snapshot
	Balance() int64
	Statistics(ctx context.Context) (*entities.SessionStatistics, error)
	RecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error)
}

// Shell reads commands line by line and prints the outcome of each
type Shell struct {
	table    Table
	in       io.Reader
	out      io.Writer
	renderer *Renderer
}

// NewShell creates a shell reading from in and writing to out
func NewShell(table Table, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		table:    table,
		in:       in,
		out:      out,
		renderer: NewRenderer(out),
	}
}

// Run processes input until quit, end of input or ctx is cancelled
func (s *Shell) Run(ctx context.Context) error {
	s.renderer.Title(s.table.Balance())

	lines := make(chan string)
	scanErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go s.readLines(lines, scanErr, stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case text, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-scanErr
			}
			line = strings.TrimSpace(text)
		}

		if line == "" {
			continue
		}

		if quit := s.Execute(ctx, line); quit {
			s.renderer.println(fmt.Sprintf("Leaving the table with %d.", s.table.Balance()))
			return nil
		}
	}
}

// readLines feeds input lines to Run until end of input or stop is closed.
// A read blocked on the underlying reader outlives Run until that read returns.
func (s *Shell) readLines(lines chan<- string, scanErr chan<- error, stop <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-stop:
			scanErr <- nil
			return
		}
	}
	scanErr <- scanner.Err()
}

// Execute runs one line of input and reports whether the player asked to quit
func (s *Shell) Execute(ctx context.Context, line string) bool {
	cmd, err := ParseCommand(line)
	if err != nil {
		s.renderer.Error(err)
		return false
	}

	var res *blackjack.Result
	switch cmd.Name {
	case CmdQuit:
		return true
	case CmdHelp:
		s.renderer.Help()
		return false
	case CmdBalance:
		s.renderer.Balance(s.table.Balance())
		return false
	case CmdStats:
		stats, err := s.table.Statistics(ctx)
		if err != nil {
			s.renderer.Error(err)
			return false
		}
		s.renderer.Statistics(stats)
		return false
	case CmdHistory:
		rounds, err := s.table.RecentRounds(ctx, int(cmd.Amount))
		if err != nil {
			s.renderer.Error(err)
			return false
		}
		s.renderer.History(rounds)
		return false
	case CmdBet:
		res, err = s.table.PlaceBet(ctx, cmd.Amount)
	case CmdDeal:
		res, err = s.table.Deal(ctx)
	case CmdHit:
		res, err = s.table.Hit(ctx)
	case CmdStand:
		res, err = s.table.Stand(ctx)
	case CmdSplit:
		res, err = s.table.Split(ctx)
	case CmdInsurance:
		res, err = s.table.PlaceInsurance(ctx)
	case CmdFold:
		res, err = s.table.Fold(ctx)
	}

	if err != nil {
		s.renderer.Error(err)
		return false
	}

	s.renderer.Result(res)
	s.renderer.Table(s.table.Snapshot())
	return false
}
