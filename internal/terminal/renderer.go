package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

// Renderer writes events and table state as text
type Renderer struct {
	w      io.Writer
	styles *Styles
}

// NewRenderer creates a renderer writing to w. Colors are only emitted when
// w is a color capable terminal.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.w, s)
}

// Title prints the banner shown at startup
func (r *Renderer) Title(balance int64) {
	r.println(r.styles.Header.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	r.println(fmt.Sprintf("Starting balance: %d. Type 'help' for commands.", balance))
}

// Help lists the commands
func (r *Renderer) Help() {
	r.println(strings.Join([]string{
		"bet <amount>  start a round",
		"deal          deal the opening cards (manual dealing only)",
		"hit           draw a card",
		"stand         finish the current hand",
		"split         split a pair into two hands",
		"insurance     insure against a dealer blackjack",
		"fold          give up the round",
		"balance       show your balance",
		"stats         show session statistics",
		"history [n]   show the last n rounds",
		"quit          leave the table",
	}, "\n"))
}

// Error prints the player-facing message of err
func (r *Renderer) Error(err error) {
	r.println(r.styles.Error.Render(types.Message(err)))
}

func (r *Renderer) Balance(balance int64) {
	r.println(fmt.Sprintf("Balance: %d", balance))
}

// Statistics prints a session summary
func (r *Renderer) Statistics(stats *entities.SessionStatistics) {
	if stats.RoundsPlayed == 0 {
		r.println(r.styles.Info.Render("No rounds played yet."))
		return
	}
	r.println(fmt.Sprintf("Rounds: %d  Hands: %d  Won: %d  Lost: %d  Pushed: %d",
		stats.RoundsPlayed, stats.HandsPlayed, stats.Wins, stats.Losses, stats.Pushes))
	r.println(fmt.Sprintf("Blackjacks: %d  Busts: %d  Splits: %d  Insurance: %d  Folds: %d",
		stats.Blackjacks, stats.Busts, stats.Splits, stats.Insurances, stats.Folds))
	r.println(fmt.Sprintf("Wagered: %d  Returned: %d  Net: %+d  Win rate: %.1f%%",
		stats.TotalWagered, stats.TotalReturned, stats.NetProfit(), stats.WinRate()))
}

// History prints one line per recorded round, oldest first
func (r *Renderer) History(rounds []*entities.RoundRecord) {
	if len(rounds) == 0 {
		r.println(r.styles.Info.Render("No rounds played yet."))
		return
	}
	for i, round := range rounds {
		hands := make([]string, len(round.Hands))
		for j, h := range round.Hands {
			hands[j] = fmt.Sprintf("%s %d %s", holderName(h.Slot), h.Total, h.Outcome)
		}
		r.println(fmt.Sprintf("%d. %s vs dealer %d, net %+d",
			i+1, strings.Join(hands, ", "), round.DealerTotal, round.TotalReturned()-round.TotalWagered()))
	}
}

// Result prints every event of a command
func (r *Renderer) Result(res *blackjack.Result) {
	for _, e := range res.Events {
		r.Event(e)
	}
}

// Event prints a single event
func (r *Renderer) Event(e blackjack.Event) {
	switch ev := e.(type) {
	case blackjack.BetPlaced:
		r.println(fmt.Sprintf("Bet %d placed. Balance: %d", ev.Amount, ev.Balance))
	case blackjack.CardDealt:
		if ev.FaceDown {
			r.println(fmt.Sprintf("%s: %s", holderName(ev.Slot), r.styles.Hidden.Render("[hidden card]")))
			return
		}
		r.println(fmt.Sprintf("%s: %s %s", holderName(ev.Slot), r.card(ev.Card), r.total(ev.Total)))
	case blackjack.ShoeReshuffled:
		r.println(r.styles.Warning.Render(ev.Message))
	case blackjack.BlackjackDealt:
		r.println(r.styles.Success.Render(ev.Message))
	case blackjack.InsuranceOffered:
		r.println(r.styles.Info.Render(fmt.Sprintf("Dealer shows an Ace. Insurance costs %d.", ev.Stake)))
	case blackjack.SplitOffered:
		r.println(r.styles.Info.Render(fmt.Sprintf("You have a pair of %ss and may split.", ev.Rank)))
	case blackjack.InsurancePlaced:
		r.println(fmt.Sprintf("Insurance of %d placed. Balance: %d", ev.Stake, ev.Balance))
	case blackjack.HandSplit:
		r.println(fmt.Sprintf("Hand split into %s and %s. Second bet %d, balance: %d",
			r.card(ev.MainCard), r.card(ev.SplitCard), ev.Bet, ev.Balance))
	case blackjack.HandBusted:
		r.println(r.styles.Error.Render(ev.Message))
	case blackjack.ActiveHandChanged:
		r.println(r.styles.Info.Render("Now playing your split hand."))
	case blackjack.DealerRevealed:
		r.println(fmt.Sprintf("Dealer reveals %s %s", r.card(ev.HoleCard), r.total(ev.Total)))
	case blackjack.DealerStood:
		if ev.Bust {
			r.println(fmt.Sprintf("Dealer busts with %d", ev.Total))
			return
		}
		r.println(fmt.Sprintf("Dealer stands on %d", ev.Total))
	case blackjack.HandSettled:
		r.println(fmt.Sprintf("%s %d vs dealer %d: %s", holderName(ev.Slot), ev.Total, ev.DealerTotal, ev.Message))
	case blackjack.RoundFolded:
		r.println(fmt.Sprintf("Forfeited %d", ev.Forfeited))
	case blackjack.RoundSettled:
		r.println(r.styles.Actions.Render(ev.Message))
		r.Balance(ev.Balance)
	}
}

// Table prints the player's view of the hands and the legal actions
func (r *Renderer) Table(snap *blackjack.Snapshot) {
	if len(snap.Dealer) > 0 {
		dealer := r.cards(snap.Dealer)
		if snap.HoleHidden {
			dealer += " " + r.styles.Hidden.Render("[?]")
		}
		r.println(fmt.Sprintf("Dealer: %s %s", dealer, r.total(snap.DealerTotal)))
	}

	if len(snap.Player) > 0 {
		r.println(fmt.Sprintf("%s%s: %s %s", r.marker(snap, entities.MainHand), holderName(entities.MainHand),
			r.cards(snap.Player), r.total(snap.PlayerTotal)))
	}
	if snap.HasSplit {
		r.println(fmt.Sprintf("%s%s: %s %s", r.marker(snap, entities.SplitHand), holderName(entities.SplitHand),
			r.cards(snap.Split), r.total(snap.SplitTotal)))
	}

	if len(snap.Actions) > 0 {
		names := make([]string, len(snap.Actions))
		for i, a := range snap.Actions {
			names[i] = string(a)
		}
		r.println(r.styles.Actions.Render("Actions: " + strings.Join(names, ", ")))
	}
}

func (r *Renderer) marker(snap *blackjack.Snapshot, slot entities.HandSlot) string {
	if snap.HasSplit && snap.State.IsPlayerTurn() && snap.Active == slot {
		return "> "
	}
	return ""
}

func (r *Renderer) card(c entities.Card) string {
	if c.Suit == entities.Hearts || c.Suit == entities.Diamonds {
		return r.styles.CardRed.Render(c.String())
	}
	return r.styles.CardBlack.Render(c.String())
}

func (r *Renderer) cards(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.card(c)
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) total(total int) string {
	return r.styles.Total.Render(fmt.Sprintf("(%d)", total))
}

func holderName(slot entities.HandSlot) string {
	switch slot {
	case entities.DealerHand:
		return "Dealer"
	case entities.SplitHand:
		return "Split hand"
	default:
		return "You"
	}
}
