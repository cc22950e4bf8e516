package blackjack

import (
	"fmt"
	"strings"

	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	MessageBlackjack  = "Blackjack! You automatically stand."
	MessageBust       = "Bust! You went over 21."
	MessageDealerBust = "Dealer busts! You win!"
	MessageWin        = "You win!"
	MessageLose       = "Dealer wins!"
	MessagePush       = "It's a tie!"
	MessageFold       = "Player folded. Game over."
	MessageReshuffle  = "Deck is empty! Reshuffling..."
)

// HandResult is the settled state of one player hand
type HandResult struct {
	Slot        entities.HandSlot
	Cards       []entities.Card
	Total       int
	DealerTotal int
	Bet         int64
	Outcome     entities.Outcome
	Payout      int64
	Blackjack   bool
}

// SettleHand compares a finished player hand against the dealer and returns
// the outcome with the amount credited back to the balance. A busted player
// hand loses even when the dealer also busts. Wins pay the stake plus an
// equal amount and a push returns the stake.
func SettleHand(player *Hand, bet int64, dealer *Hand) (entities.Outcome, int64) {
	playerScore := player.Total()
	dealerScore := dealer.Total()

	switch {
	case playerScore > BlackjackTotal:
		return entities.OutcomeBust, 0
	case dealerScore > BlackjackTotal:
		return entities.OutcomeWin, bet * 2
	case playerScore > dealerScore:
		return entities.OutcomeWin, bet * 2
	case playerScore == dealerScore:
		return entities.OutcomePush, bet
	default:
		return entities.OutcomeLose, 0
	}
}

// OutcomeMessage returns the player-facing text for a settled hand
func OutcomeMessage(outcome entities.Outcome, dealerBust bool) string {
	switch outcome {
	case entities.OutcomeWin:
		if dealerBust {
			return MessageDealerBust
		}
		return MessageWin
	case entities.OutcomeLose:
		return MessageLose
	case entities.OutcomePush:
		return MessagePush
	case entities.OutcomeBust:
		return MessageBust
	case entities.OutcomeFold:
		return MessageFold
	default:
		return ""
	}
}

// summarize joins the per-hand messages. A single hand keeps its message as is.
func summarize(results []*HandResult, dealerBust bool) string {
	if len(results) == 1 {
		return OutcomeMessage(results[0].Outcome, dealerBust)
	}

	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, fmt.Sprintf("%s hand: %s", slotLabel(res.Slot), OutcomeMessage(res.Outcome, dealerBust)))
	}
	return strings.Join(parts, " ")
}

func slotLabel(slot entities.HandSlot) string {
	switch slot {
	case entities.MainHand:
		return "Main"
	case entities.SplitHand:
		return "Split"
	default:
		return "Dealer"
	}
}
