package blackjack

import (
	"fmt"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Action is a command the player can issue to a round
type Action string

const (
	ActionPlaceBet  Action = "bet"
	ActionDeal      Action = "deal"
	ActionHit       Action = "hit"
	ActionStand     Action = "stand"
	ActionSplit     Action = "split"
	ActionInsurance Action = "insurance"
	ActionFold      Action = "fold"
)

// Actions is an ordered set of legal actions
type Actions []Action

// Contains reports whether a is in the set
func (as Actions) Contains(a Action) bool {
	for _, action := range as {
		if action == a {
			return true
		}
	}
	return false
}

// AvailableActions lists what the player may do in the current state
func (r *Round) AvailableActions() Actions {
	switch {
	case r.state == entities.StateAwaitingBet || r.state == entities.StateSettled:
		if r.balance > 0 {
			return Actions{ActionPlaceBet}
		}
		return Actions{}
	case r.state == entities.StateDealing:
		return Actions{ActionDeal}
	case r.state.IsPlayerTurn():
		actions := Actions{ActionHit, ActionStand}
		if r.canSplit() {
			actions = append(actions, ActionSplit)
		}
		if r.canInsure() {
			actions = append(actions, ActionInsurance)
		}
		return append(actions, ActionFold)
	default:
		return Actions{}
	}
}

func (r *Round) canSplit() bool {
	return r.state == entities.StatePlayerTurnFirst &&
		r.split == nil &&
		r.player.CanSplit() &&
		r.balance >= r.bet
}

func (r *Round) canInsure() bool {
	stake := InsuranceStake(r.bet)
	return r.insuranceOffered &&
		r.insuranceBet == 0 &&
		stake > 0 &&
		stake <= r.balance
}

// Split divides a pair into two hands, staking the original bet again on
// the second one. No replacement cards are dealt; each hand is built up by
// hitting when its turn comes.
func (r *Round) Split() (*Result, error) {
	if r.state != entities.StatePlayerTurnFirst {
		return nil, illegalAction(ActionSplit, r.state)
	}
	if r.split != nil {
		return nil, types.NewGameError(types.ErrIllegalSplit, "You have already split this round")
	}
	if !r.player.CanSplit() {
		return nil, types.NewGameError(types.ErrIllegalSplit, "You can only split two cards of the same rank")
	}
	if r.balance < r.bet {
		return nil, types.NewGameError(types.ErrInsufficientFunds,
			fmt.Sprintf("Splitting needs another %d but your balance is %d", r.bet, r.balance))
	}

	r.begin()

	moved := r.player.Cards[1]
	r.player = NewHand(r.player.Cards[0])
	r.split = NewHand(moved)
	r.splitBet = r.bet
	r.balance -= r.splitBet
	r.record(entities.TransactionTypeSplit, entities.SplitHand, -r.splitBet, "Split hand bet")

	r.emit(HandSplit{
		MainCard:  r.player.Cards[0],
		SplitCard: moved,
		Bet:       r.splitBet,
		Balance:   r.balance,
	})

	return r.result(), nil
}

// PlaceInsurance stakes half the main bet against a dealer blackjack. It is
// only available once, after the dealer showed an Ace.
func (r *Round) PlaceInsurance() (*Result, error) {
	if !r.state.IsPlayerTurn() || !r.insuranceOffered {
		return nil, illegalAction(ActionInsurance, r.state)
	}
	if r.insuranceBet > 0 {
		return nil, types.NewGameError(types.ErrIllegalAction, "Insurance has already been placed this round")
	}

	stake := InsuranceStake(r.bet)
	if stake == 0 {
		return nil, types.NewGameError(types.ErrIllegalAction, "Your bet is too small to insure")
	}
	if stake > r.balance {
		return nil, types.NewGameError(types.ErrInsufficientFunds,
			fmt.Sprintf("Insurance costs %d but your balance is %d", stake, r.balance))
	}

	r.begin()

	// TODO: pay 2:1 on the insurance stake when the dealer holds blackjack;
	// settlement currently ignores it so the stake is always lost.
	r.insuranceBet = stake
	r.balance -= stake
	r.record(entities.TransactionTypeInsurance, entities.MainHand, -stake, "Insurance bet")

	r.emit(InsurancePlaced{Stake: stake, Balance: r.balance})

	return r.result(), nil
}

func illegalAction(action Action, state entities.RoundState) error {
	return types.NewGameError(types.ErrIllegalAction,
		fmt.Sprintf("You cannot %s while the round is %s", action, state))
}
