package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
)

// CommandName identifies a line of player input
type CommandName string

const (
	CmdBet       CommandName = "bet"
	CmdDeal      CommandName = "deal"
	CmdHit       CommandName = "hit"
	CmdStand     CommandName = "stand"
	CmdSplit     CommandName = "split"
	CmdInsurance CommandName = "insurance"
	CmdFold      CommandName = "fold"
	CmdBalance   CommandName = "balance"
	CmdStats     CommandName = "stats"
	CmdHistory   CommandName = "history"
	CmdHelp      CommandName = "help"
	CmdQuit      CommandName = "quit"
)

var aliases = map[string]CommandName{
	"b":         CmdBet,
	"bet":       CmdBet,
	"d":         CmdDeal,
	"deal":      CmdDeal,
	"h":         CmdHit,
	"hit":       CmdHit,
	"s":         CmdStand,
	"stand":     CmdStand,
	"split":     CmdSplit,
	"sp":        CmdSplit,
	"insurance": CmdInsurance,
	"insure":    CmdInsurance,
	"i":         CmdInsurance,
	"fold":      CmdFold,
	"f":         CmdFold,
	"balance":   CmdBalance,
	"stats":     CmdStats,
	"history":   CmdHistory,
	"hist":      CmdHistory,
	"help":      CmdHelp,
	"?":         CmdHelp,
	"quit":      CmdQuit,
	"exit":      CmdQuit,
	"q":         CmdQuit,
}

// Command is a parsed line of input
type Command struct {
	Name   CommandName
	Amount int64 // bet amount, or the number of rounds for history
}

// DefaultHistoryLength is how many rounds history shows without a count
const DefaultHistoryLength = 5

// ParseCommand parses one line such as "bet 100" or "hit"
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, types.NewGameError(types.ErrInvalidCommand, "Type a command, or 'help' for a list")
	}

	name, ok := aliases[fields[0]]
	if !ok {
		return Command{}, types.NewGameError(types.ErrInvalidCommand,
			fmt.Sprintf("Unknown command %q, type 'help' for a list", fields[0]))
	}

	if name == CmdHistory {
		return parseHistory(fields)
	}

	if name != CmdBet {
		if len(fields) > 1 {
			return Command{}, types.NewGameError(types.ErrInvalidCommand,
				fmt.Sprintf("'%s' does not take arguments", name))
		}
		return Command{Name: name}, nil
	}

	if len(fields) != 2 {
		return Command{}, types.NewGameError(types.ErrInvalidCommand, "Usage: bet <amount>")
	}
	amount, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Command{}, types.WrapError(types.ErrInvalidCommand, "Bet amount must be a whole number", err)
	}
	return Command{Name: CmdBet, Amount: amount}, nil
}

func parseHistory(fields []string) (Command, error) {
	switch len(fields) {
	case 1:
		return Command{Name: CmdHistory, Amount: DefaultHistoryLength}, nil
	case 2:
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || n <= 0 {
			return Command{}, types.NewGameError(types.ErrInvalidCommand, "History length must be a positive whole number")
		}
		return Command{Name: CmdHistory, Amount: n}, nil
	default:
		return Command{}, types.NewGameError(types.ErrInvalidCommand, "Usage: history [rounds]")
	}
}
