package entities

// RoundState is the phase a round is in
type RoundState string

const (
	StateAwaitingBet      RoundState = "AWAITING_BET"
	StateDealing          RoundState = "DEALING"
	StatePlayerTurnFirst  RoundState = "PLAYER_TURN_FIRST"
	StatePlayerTurnSecond RoundState = "PLAYER_TURN_SECOND"
	StateDealerTurn       RoundState = "DEALER_TURN"
	StateSettled          RoundState = "SETTLED"
)

// IsPlayerTurn returns true while the player may hit, stand or fold
func (s RoundState) IsPlayerTurn() bool {
	return s == StatePlayerTurnFirst || s == StatePlayerTurnSecond
}

// HandSlot identifies one of the hands on the table
type HandSlot string

const (
	MainHand   HandSlot = "MAIN"
	SplitHand  HandSlot = "SPLIT"
	DealerHand HandSlot = "DEALER"
)

// Outcome is the settled result of one player hand
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
	OutcomePush Outcome = "PUSH"
	OutcomeBust Outcome = "BUST"
	OutcomeFold Outcome = "FOLD"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if this outcome pays the player
func (o Outcome) IsWin() bool {
	return o == OutcomeWin
}

// IsLoss returns true if the stake was forfeited
func (o Outcome) IsLoss() bool {
	return o == OutcomeLose || o == OutcomeBust || o == OutcomeFold
}
