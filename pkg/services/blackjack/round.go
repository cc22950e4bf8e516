package blackjack

import (
	"fmt"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Result is returned by every successful command
type Result struct {
	Events    []Event
	State     entities.RoundState
	Balance   int64
	Bust      bool // a player hand went over 21 during this command
	Blackjack bool // the opening hand was a natural 21
	Over      bool // the round reached SETTLED during this command
	Message   string
	Hands     []*HandResult // settled hands, set when Over
}

// Option configures a Round
type Option func(*Round)

// WithManualDeal stops PlaceBet in the DEALING state so the caller must
// issue Deal itself.
func WithManualDeal() Option {
	return func(r *Round) {
		r.manualDeal = true
	}
}

// Round is the state machine for one player against the dealer. It owns
// the balance across rounds and draws from a shared shoe. A Round is not
// safe for concurrent use.
type Round struct {
	shoe       *entities.Shoe
	balance    int64
	manualDeal bool

	state  entities.RoundState
	active entities.HandSlot

	player *Hand
	split  *Hand
	dealer *Hand

	bet          int64
	splitBet     int64
	insuranceBet int64

	insuranceOffered bool
	dealerRevealed   bool
	folded           bool

	results []*HandResult
	ledger  []*entities.Transaction

	// per-command output
	events    []Event
	bust      bool
	blackjack bool
	message   string
}

// NewRound creates a round waiting for the first bet
func NewRound(shoe *entities.Shoe, balance int64, opts ...Option) *Round {
	r := &Round{
		shoe:    shoe,
		balance: balance,
		state:   entities.StateAwaitingBet,
		active:  entities.MainHand,
		player:  NewHand(),
		dealer:  NewHand(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlaceBet starts a new round, deducting amount from the balance. Unless
// manual dealing is enabled the opening cards are dealt immediately.
func (r *Round) PlaceBet(amount int64) (*Result, error) {
	if r.state != entities.StateAwaitingBet && r.state != entities.StateSettled {
		return nil, illegalAction(ActionPlaceBet, r.state)
	}
	if amount <= 0 {
		return nil, types.NewGameError(types.ErrInvalidBet, "Bet must be a positive amount")
	}
	if amount > r.balance {
		return nil, types.NewGameError(types.ErrInvalidBet,
			fmt.Sprintf("Bet of %d exceeds your balance of %d", amount, r.balance))
	}

	r.reset()
	r.begin()

	r.bet = amount
	r.balance -= amount
	r.record(entities.TransactionTypeBet, entities.MainHand, -amount, "Blackjack bet")
	r.state = entities.StateDealing
	r.emit(BetPlaced{Amount: amount, Balance: r.balance})

	if !r.manualDeal {
		r.deal()
	}

	return r.result(), nil
}

// Deal draws the opening cards: player, dealer up card, player, dealer hole card
func (r *Round) Deal() (*Result, error) {
	if r.state != entities.StateDealing {
		return nil, illegalAction(ActionDeal, r.state)
	}

	r.begin()
	r.deal()

	return r.result(), nil
}

func (r *Round) deal() {
	r.draw(entities.MainHand, false)
	r.draw(entities.DealerHand, false)
	r.draw(entities.MainHand, false)
	r.draw(entities.DealerHand, true)

	r.state = entities.StatePlayerTurnFirst
	r.active = entities.MainHand

	// A natural stands at once, so the offer is announced but cannot be taken.
	if IsAce(r.dealer.Cards[0]) {
		r.insuranceOffered = true
		r.emit(InsuranceOffered{Stake: InsuranceStake(r.bet)})
	}

	if r.player.Total() == BlackjackTotal {
		r.blackjack = true
		r.message = MessageBlackjack
		r.emit(BlackjackDealt{Message: MessageBlackjack})
		r.playDealer()
		return
	}

	if r.player.CanSplit() {
		r.emit(SplitOffered{Rank: r.player.Cards[0].Rank})
	}
}

// Hit draws one card to the active hand. Busting moves play on.
func (r *Round) Hit() (*Result, error) {
	if !r.state.IsPlayerTurn() {
		return nil, illegalAction(ActionHit, r.state)
	}

	r.begin()

	hand := r.activeHand()
	r.draw(r.active, false)

	if hand.IsBust() {
		r.bust = true
		r.message = MessageBust
		r.emit(HandBusted{Slot: r.active, Total: hand.Total(), Message: MessageBust})
		r.advance()
	}

	return r.result(), nil
}

// Stand finishes the active hand
func (r *Round) Stand() (*Result, error) {
	if !r.state.IsPlayerTurn() {
		return nil, illegalAction(ActionStand, r.state)
	}

	r.begin()
	r.advance()

	return r.result(), nil
}

// Fold abandons the round. Every stake placed this round is forfeited.
func (r *Round) Fold() (*Result, error) {
	if !r.state.IsPlayerTurn() {
		return nil, illegalAction(ActionFold, r.state)
	}

	r.begin()

	r.folded = true
	r.results = r.results[:0]
	for _, slot := range r.playerSlots() {
		hand, bet := r.handFor(slot), r.betFor(slot)
		r.results = append(r.results, &HandResult{
			Slot:        slot,
			Cards:       hand.Clone().Cards,
			Total:       hand.Total(),
			DealerTotal: r.DealerTotal(false),
			Bet:         bet,
			Outcome:     entities.OutcomeFold,
		})
		r.emit(HandSettled{
			Slot:        slot,
			Outcome:     entities.OutcomeFold,
			Total:       hand.Total(),
			DealerTotal: r.DealerTotal(false),
			Bet:         bet,
			Message:     MessageFold,
		})
	}

	r.state = entities.StateSettled
	r.message = MessageFold
	r.emit(RoundFolded{Forfeited: r.bet + r.splitBet + r.insuranceBet, Message: MessageFold})
	r.emit(RoundSettled{Balance: r.balance, Message: MessageFold})

	return r.result(), nil
}

// advance moves from the main hand to the split hand, or to the dealer
func (r *Round) advance() {
	if r.active == entities.MainHand && r.split != nil {
		r.active = entities.SplitHand
		r.state = entities.StatePlayerTurnSecond
		r.emit(ActiveHandChanged{Slot: entities.SplitHand})
		return
	}
	r.playDealer()
}

// playDealer reveals the hole card and draws to 17. The dealer does not
// draw when every player hand has already busted.
func (r *Round) playDealer() {
	r.state = entities.StateDealerTurn
	r.dealerRevealed = true
	r.emit(DealerRevealed{HoleCard: r.dealer.Cards[1], Total: r.dealer.Total()})

	if r.anyLiveHand() {
		for DealerShouldHit(r.dealer.Cards) {
			r.draw(entities.DealerHand, false)
		}
		r.emit(DealerStood{Total: r.dealer.Total(), Bust: r.dealer.IsBust()})
	}

	r.settle()
}

func (r *Round) settle() {
	dealerBust := r.dealer.IsBust()
	r.results = r.results[:0]

	for _, slot := range r.playerSlots() {
		hand, bet := r.handFor(slot), r.betFor(slot)
		outcome, payout := SettleHand(hand, bet, r.dealer)

		if payout > 0 {
			r.balance += payout
			r.record(entities.TransactionTypePayout, slot, payout, fmt.Sprintf("%s hand %s", slotLabel(slot), outcome))
		}

		r.results = append(r.results, &HandResult{
			Slot:        slot,
			Cards:       hand.Clone().Cards,
			Total:       hand.Total(),
			DealerTotal: r.dealer.Total(),
			Bet:         bet,
			Outcome:     outcome,
			Payout:      payout,
			Blackjack:   r.split == nil && hand.IsBlackjack(),
		})
		r.emit(HandSettled{
			Slot:        slot,
			Outcome:     outcome,
			Total:       hand.Total(),
			DealerTotal: r.dealer.Total(),
			Bet:         bet,
			Payout:      payout,
			Message:     OutcomeMessage(outcome, dealerBust),
		})
	}

	r.state = entities.StateSettled
	r.message = summarize(r.results, dealerBust)
	r.emit(RoundSettled{Balance: r.balance, Message: r.message})
}

// draw takes a card from the shoe, rebuilding it when empty, and gives it to slot
func (r *Round) draw(slot entities.HandSlot, faceDown bool) {
	card, reshuffled := r.shoe.DrawWithReshuffle()
	if reshuffled {
		r.emit(ShoeReshuffled{Message: MessageReshuffle})
	}

	hand := r.handFor(slot)
	hand.AddCard(card)

	total := hand.Total()
	if slot == entities.DealerHand {
		total = r.DealerTotal(false)
	}
	r.emit(CardDealt{Slot: slot, Card: card, FaceDown: faceDown, Total: total})
}

func (r *Round) anyLiveHand() bool {
	for _, slot := range r.playerSlots() {
		if !r.handFor(slot).IsBust() {
			return true
		}
	}
	return false
}

func (r *Round) playerSlots() []entities.HandSlot {
	if r.split != nil {
		return []entities.HandSlot{entities.MainHand, entities.SplitHand}
	}
	return []entities.HandSlot{entities.MainHand}
}

func (r *Round) handFor(slot entities.HandSlot) *Hand {
	switch slot {
	case entities.SplitHand:
		return r.split
	case entities.DealerHand:
		return r.dealer
	default:
		return r.player
	}
}

func (r *Round) betFor(slot entities.HandSlot) int64 {
	if slot == entities.SplitHand {
		return r.splitBet
	}
	return r.bet
}

func (r *Round) activeHand() *Hand {
	return r.handFor(r.active)
}

// reset clears everything from the previous round except the balance
func (r *Round) reset() {
	r.state = entities.StateAwaitingBet
	r.active = entities.MainHand
	r.player = NewHand()
	r.split = nil
	r.dealer = NewHand()
	r.bet, r.splitBet, r.insuranceBet = 0, 0, 0
	r.insuranceOffered = false
	r.dealerRevealed = false
	r.folded = false
	r.results = nil
	r.ledger = nil
}

func (r *Round) begin() {
	r.events = nil
	r.bust = false
	r.blackjack = false
	r.message = ""
}

func (r *Round) emit(e Event) {
	r.events = append(r.events, e)
}

func (r *Round) record(kind entities.TransactionType, slot entities.HandSlot, amount int64, description string) {
	r.ledger = append(r.ledger, &entities.Transaction{
		Amount:       amount,
		Type:         kind,
		Slot:         slot,
		Description:  description,
		BalanceAfter: r.balance,
	})
}

func (r *Round) result() *Result {
	res := &Result{
		Events:    r.events,
		State:     r.state,
		Balance:   r.balance,
		Bust:      r.bust,
		Blackjack: r.blackjack,
		Over:      r.state == entities.StateSettled,
		Message:   r.message,
	}
	if res.Over {
		res.Hands = r.Results()
	}
	return res
}
