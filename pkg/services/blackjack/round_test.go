package blackjack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

type RoundTestSuite struct {
	suite.Suite
}

func TestRoundSuite(t *testing.T) {
	suite.Run(t, new(RoundTestSuite))
}

// stackedShoe returns a shoe that deals cards in the listed order
func stackedShoe(cards ...entities.Card) *entities.Shoe {
	reversed := make([]entities.Card, len(cards))
	for i, c := range cards {
		reversed[len(cards)-1-i] = c
	}
	return entities.NewShoeFromCards(1, rand.New(rand.NewSource(1)), reversed)
}

func c(rank entities.Rank, suit entities.Suit) entities.Card {
	return entities.NewCard(rank, suit)
}

func (s *RoundTestSuite) requireCode(err error, code types.ErrorCode, msgAndArgs ...interface{}) {
	s.Require().Error(err, msgAndArgs...)
	s.True(types.IsGameError(err, code), "expected %s, got %v", code, err)
}

func (s *RoundTestSuite) ledgerSum(r *Round) int64 {
	var sum int64
	for _, tx := range r.Transactions() {
		sum += tx.Amount
	}
	return sum
}

func (s *RoundTestSuite) TestBlackjackRoundEndToEnd() {
	shoe := stackedShoe(
		c(entities.Ace, entities.Spades),  // player
		c(entities.Nine, entities.Hearts), // dealer up
		c(entities.King, entities.Clubs),  // player
		c(entities.Eight, entities.Clubs), // dealer hole
	)
	round := NewRound(shoe, 1000, WithManualDeal())

	res, err := round.PlaceBet(100)
	s.Require().NoError(err)
	s.Equal(int64(900), res.Balance)
	s.Equal(entities.StateDealing, res.State)
	s.Equal(Actions{ActionDeal}, round.AvailableActions())

	res, err = round.Deal()
	s.Require().NoError(err)

	s.True(res.Blackjack)
	s.True(res.Over)
	s.Equal(entities.StateSettled, res.State)
	s.Equal(int64(1100), res.Balance)
	s.Equal("You win!", res.Message)
	s.Require().Len(res.Hands, 1)
	s.True(res.Hands[0].Blackjack)
	s.Equal(int64(200), res.Hands[0].Payout)

	var sawBlackjack bool
	for _, e := range res.Events {
		if bj, ok := e.(BlackjackDealt); ok {
			sawBlackjack = true
			s.Equal("Blackjack! You automatically stand.", bj.Message)
		}
	}
	s.True(sawBlackjack)
	s.Equal(round.Balance()-1000, s.ledgerSum(round))
}

func (s *RoundTestSuite) TestBlackjackAgainstDealerAceOffersInsurance() {
	shoe := stackedShoe(
		c(entities.Ace, entities.Spades),
		c(entities.Ace, entities.Hearts),
		c(entities.King, entities.Clubs),
		c(entities.Nine, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)

	res, err := round.PlaceBet(100)
	s.Require().NoError(err)

	offerAt, blackjackAt := -1, -1
	for i, e := range res.Events {
		switch ev := e.(type) {
		case InsuranceOffered:
			offerAt = i
			s.Equal(int64(50), ev.Stake)
		case BlackjackDealt:
			blackjackAt = i
		}
	}
	s.Require().NotEqual(-1, offerAt, "dealer Ace should announce insurance")
	s.Less(offerAt, blackjackAt)

	s.True(res.Over)
	s.Equal(int64(1100), res.Balance)

	_, err = round.PlaceInsurance()
	s.requireCode(err, types.ErrIllegalAction)
	s.Equal(int64(0), round.InsuranceBet())
}

func (s *RoundTestSuite) TestDealOrderAndHoleCard() {
	shoe := stackedShoe(
		c(entities.Two, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Three, entities.Clubs),
		c(entities.Six, entities.Clubs),
	)
	round := NewRound(shoe, 1000)

	res, err := round.PlaceBet(10)
	s.Require().NoError(err)

	var dealt []CardDealt
	for _, e := range res.Events {
		if cd, ok := e.(CardDealt); ok {
			dealt = append(dealt, cd)
		}
	}
	s.Require().Len(dealt, 4)
	s.Equal(entities.MainHand, dealt[0].Slot)
	s.Equal(entities.DealerHand, dealt[1].Slot)
	s.Equal(entities.MainHand, dealt[2].Slot)
	s.Equal(entities.DealerHand, dealt[3].Slot)
	s.True(dealt[3].FaceDown)
	s.False(dealt[1].FaceDown)

	s.Equal(entities.StatePlayerTurnFirst, round.State())
	s.Equal(10, round.DealerTotal(false), "only the up card is visible")
	s.Equal(16, round.DealerTotal(true))

	snap := round.Snapshot()
	s.Len(snap.Dealer, 1)
	s.True(snap.HoleHidden)
	s.Equal(5, snap.PlayerTotal)
}

func (s *RoundTestSuite) TestDealerHitsSixteen() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Nine, entities.Clubs),
		c(entities.Six, entities.Clubs),
		c(entities.Five, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Stand()
	s.Require().NoError(err)

	s.True(res.Over)
	s.Equal(3, round.DealerHand().Len())
	s.Equal(21, round.DealerTotal(false))
	s.Equal("Dealer wins!", res.Message)
	s.Equal(int64(900), round.Balance())
}

func (s *RoundTestSuite) TestDealerStandsOnSoftSeventeen() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ace, entities.Hearts),
		c(entities.Eight, entities.Clubs),
		c(entities.Six, entities.Clubs),
		c(entities.Five, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Stand()
	s.Require().NoError(err)

	s.Equal(2, round.DealerHand().Len())
	s.Equal("You win!", res.Message)
	s.Equal(int64(1100), round.Balance())
}

func (s *RoundTestSuite) TestPushReturnsStake() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Nine, entities.Clubs),
		c(entities.Nine, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Stand()
	s.Require().NoError(err)

	s.Equal("It's a tie!", res.Message)
	s.Equal(entities.OutcomePush, res.Hands[0].Outcome)
	s.Equal(int64(1000), round.Balance())
}

func (s *RoundTestSuite) TestDealerBust() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Eight, entities.Clubs),
		c(entities.Six, entities.Diamonds),
		c(entities.King, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Stand()
	s.Require().NoError(err)

	s.Equal("Dealer busts! You win!", res.Message)
	s.Equal(int64(1100), round.Balance())
}

func (s *RoundTestSuite) TestPlayerBustEndsRoundWithoutDealerDraw() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Six, entities.Clubs),
		c(entities.Five, entities.Diamonds),
		c(entities.King, entities.Diamonds),
		c(entities.Two, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Hit()
	s.Require().NoError(err)

	s.True(res.Bust)
	s.True(res.Over)
	s.Equal("Bust! You went over 21.", res.Message)
	s.Equal(entities.OutcomeBust, res.Hands[0].Outcome)
	s.Equal(2, round.DealerHand().Len(), "dealer does not draw against a busted hand")
	s.Equal(1, shoe.Remaining())
	s.Equal(int64(900), round.Balance())
}

func (s *RoundTestSuite) TestSplitAccounting() {
	shoe := stackedShoe(
		c(entities.Eight, entities.Spades),
		c(entities.Ten, entities.Clubs),
		c(entities.Eight, entities.Hearts),
		c(entities.Seven, entities.Diamonds),
		c(entities.Three, entities.Clubs),
		c(entities.Nine, entities.Diamonds),
		c(entities.Ten, entities.Hearts),
	)
	round := NewRound(shoe, 1000)
	res, err := round.PlaceBet(100)
	s.Require().NoError(err)
	s.True(round.AvailableActions().Contains(ActionSplit))

	var offered bool
	for _, e := range res.Events {
		if _, ok := e.(SplitOffered); ok {
			offered = true
		}
	}
	s.True(offered)

	res, err = round.Split()
	s.Require().NoError(err)
	s.Equal(int64(800), res.Balance)
	s.Equal(entities.StatePlayerTurnFirst, res.State)
	s.Equal(1, round.PlayerHand().Len())
	s.Equal(1, round.SplitHand().Len())
	s.Equal(int64(100), round.SplitBet())

	_, err = round.Hit() // 8 + 3
	s.Require().NoError(err)
	_, err = round.Hit() // 11 + 9
	s.Require().NoError(err)

	res, err = round.Stand()
	s.Require().NoError(err)
	s.Equal(entities.StatePlayerTurnSecond, res.State)
	s.Equal(entities.SplitHand, round.ActiveHand())

	_, err = round.Hit() // 8 + 10
	s.Require().NoError(err)

	main, split, hasSplit := round.PlayerTotals()
	s.Equal(20, main)
	s.Equal(18, split)
	s.True(hasSplit)

	res, err = round.Stand()
	s.Require().NoError(err)

	s.True(res.Over)
	s.Require().Len(res.Hands, 2)
	s.Equal(entities.OutcomeWin, res.Hands[0].Outcome)
	s.Equal(entities.OutcomeWin, res.Hands[1].Outcome)
	s.Equal("Main hand: You win! Split hand: You win!", res.Message)
	s.Equal(int64(1200), round.Balance())
	s.Equal(round.Balance()-1000, s.ledgerSum(round))
}

func (s *RoundTestSuite) TestSplitBothHandsBustSkipsDealer() {
	shoe := stackedShoe(
		c(entities.Eight, entities.Spades),
		c(entities.Ten, entities.Clubs),
		c(entities.Eight, entities.Hearts),
		c(entities.Six, entities.Diamonds),
		c(entities.King, entities.Spades),
		c(entities.Queen, entities.Spades),
		c(entities.King, entities.Hearts),
		c(entities.Jack, entities.Hearts),
		c(entities.Five, entities.Clubs),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)
	_, err = round.Split()
	s.Require().NoError(err)

	_, err = round.Hit()
	s.Require().NoError(err)
	res, err := round.Hit()
	s.Require().NoError(err)
	s.True(res.Bust)
	s.Equal(entities.StatePlayerTurnSecond, res.State)

	_, err = round.Hit()
	s.Require().NoError(err)
	res, err = round.Hit()
	s.Require().NoError(err)

	s.True(res.Over)
	s.Equal(2, round.DealerHand().Len())
	s.Equal(1, shoe.Remaining())
	s.Equal(int64(800), round.Balance())
}

func (s *RoundTestSuite) TestSplitRejections() {
	s.Run("different ranks", func() {
		round := NewRound(stackedShoe(
			c(entities.King, entities.Spades),
			c(entities.Five, entities.Clubs),
			c(entities.Ten, entities.Hearts),
			c(entities.Six, entities.Diamonds),
		), 1000)
		_, err := round.PlaceBet(100)
		s.Require().NoError(err)

		_, err = round.Split()
		s.requireCode(err, types.ErrIllegalSplit)
		s.Equal(int64(900), round.Balance())
	})

	s.Run("second split", func() {
		round := NewRound(stackedShoe(
			c(entities.Eight, entities.Spades),
			c(entities.Five, entities.Clubs),
			c(entities.Eight, entities.Hearts),
			c(entities.Six, entities.Diamonds),
		), 1000)
		_, err := round.PlaceBet(100)
		s.Require().NoError(err)
		_, err = round.Split()
		s.Require().NoError(err)

		_, err = round.Split()
		s.requireCode(err, types.ErrIllegalSplit)
		s.Equal(int64(800), round.Balance())
	})

	s.Run("insufficient funds", func() {
		round := NewRound(stackedShoe(
			c(entities.Eight, entities.Spades),
			c(entities.Five, entities.Clubs),
			c(entities.Eight, entities.Hearts),
			c(entities.Six, entities.Diamonds),
		), 150)
		_, err := round.PlaceBet(100)
		s.Require().NoError(err)
		s.False(round.AvailableActions().Contains(ActionSplit))

		_, err = round.Split()
		s.requireCode(err, types.ErrInsufficientFunds)
		s.Nil(round.SplitHand())
	})
}

func (s *RoundTestSuite) TestInvalidBets() {
	round := NewRound(stackedShoe(), 500)

	for _, amount := range []int64{0, -5, 501} {
		_, err := round.PlaceBet(amount)
		s.requireCode(err, types.ErrInvalidBet)
		s.Equal(int64(500), round.Balance())
		s.Equal(entities.StateAwaitingBet, round.State())
	}
}

func (s *RoundTestSuite) TestIllegalActions() {
	round := NewRound(stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Five, entities.Clubs),
		c(entities.Seven, entities.Hearts),
		c(entities.Six, entities.Diamonds),
	), 1000)

	_, err := round.Hit()
	s.requireCode(err, types.ErrIllegalAction)
	_, err = round.Stand()
	s.requireCode(err, types.ErrIllegalAction)
	_, err = round.Deal()
	s.requireCode(err, types.ErrIllegalAction)
	_, err = round.Fold()
	s.requireCode(err, types.ErrIllegalAction)

	_, err = round.PlaceBet(100)
	s.Require().NoError(err)

	_, err = round.PlaceBet(100)
	s.requireCode(err, types.ErrIllegalAction)
	_, err = round.PlaceInsurance()
	s.requireCode(err, types.ErrIllegalAction, "no insurance without a dealer Ace")
	s.Equal(int64(900), round.Balance())
}

func (s *RoundTestSuite) TestInsuranceStakeIsNeverPaid() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ace, entities.Hearts),
		c(entities.Seven, entities.Clubs),
		c(entities.King, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	res, err := round.PlaceBet(100)
	s.Require().NoError(err)

	var offered InsuranceOffered
	for _, e := range res.Events {
		if io, ok := e.(InsuranceOffered); ok {
			offered = io
		}
	}
	s.Equal(int64(50), offered.Stake)
	s.True(round.AvailableActions().Contains(ActionInsurance))

	res, err = round.PlaceInsurance()
	s.Require().NoError(err)
	s.Equal(int64(850), res.Balance)
	s.Equal(int64(50), round.InsuranceBet())
	s.False(round.AvailableActions().Contains(ActionInsurance))

	_, err = round.PlaceInsurance()
	s.requireCode(err, types.ErrIllegalAction)

	res, err = round.Stand()
	s.Require().NoError(err)

	s.Equal(21, round.DealerTotal(false))
	s.Equal(entities.OutcomeLose, res.Hands[0].Outcome)
	s.Equal(int64(850), round.Balance(), "insurance does not pay against a dealer blackjack")
}

func (s *RoundTestSuite) TestInsuranceTooSmall() {
	round := NewRound(stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ace, entities.Hearts),
		c(entities.Seven, entities.Clubs),
		c(entities.King, entities.Diamonds),
	), 1000)
	_, err := round.PlaceBet(1)
	s.Require().NoError(err)

	s.False(round.AvailableActions().Contains(ActionInsurance))
	_, err = round.PlaceInsurance()
	s.requireCode(err, types.ErrIllegalAction)
}

func (s *RoundTestSuite) TestFoldForfeitsStake() {
	round := NewRound(stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Five, entities.Clubs),
		c(entities.Six, entities.Hearts),
		c(entities.Six, entities.Diamonds),
	), 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	res, err := round.Fold()
	s.Require().NoError(err)

	s.True(res.Over)
	s.True(round.Folded())
	s.Equal("Player folded. Game over.", res.Message)
	s.Equal(entities.OutcomeFold, res.Hands[0].Outcome)
	s.Equal(int64(900), round.Balance())
	s.Equal(Actions{ActionPlaceBet}, round.AvailableActions())
}

func (s *RoundTestSuite) TestAvailableActionsWithPairAgainstAce() {
	round := NewRound(stackedShoe(
		c(entities.Nine, entities.Spades),
		c(entities.Ace, entities.Clubs),
		c(entities.Nine, entities.Hearts),
		c(entities.Six, entities.Diamonds),
	), 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)

	s.Equal(Actions{ActionHit, ActionStand, ActionSplit, ActionInsurance, ActionFold}, round.AvailableActions())
}

func (s *RoundTestSuite) TestNextBetResetsRound() {
	shoe := stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Nine, entities.Clubs),
		c(entities.Nine, entities.Diamonds),
		c(entities.Two, entities.Spades),
		c(entities.Ten, entities.Clubs),
		c(entities.Three, entities.Clubs),
		c(entities.Seven, entities.Diamonds),
	)
	round := NewRound(shoe, 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)
	_, err = round.Stand()
	s.Require().NoError(err)

	res, err := round.PlaceBet(50)
	s.Require().NoError(err)

	s.Equal(entities.StatePlayerTurnFirst, res.State)
	s.Equal(int64(950), round.Balance())
	s.Equal(2, round.PlayerHand().Len())
	s.Equal(5, round.PlayerHand().Total())
	s.Len(round.Transactions(), 1)
	s.Empty(round.Results())
}

func (s *RoundTestSuite) TestReshuffleWhenShoeRunsOut() {
	shoe := entities.NewShoeFromCards(1, rand.New(rand.NewSource(3)), []entities.Card{
		c(entities.Two, entities.Spades),
		c(entities.Three, entities.Spades),
	})
	round := NewRound(shoe, 1000, WithManualDeal())
	_, err := round.PlaceBet(10)
	s.Require().NoError(err)

	res, err := round.Deal()
	s.Require().NoError(err)

	var reshuffles int
	for _, e := range res.Events {
		if rs, ok := e.(ShoeReshuffled); ok {
			reshuffles++
			s.Equal("Deck is empty! Reshuffling...", rs.Message)
		}
	}
	s.Equal(1, reshuffles)
	s.Equal(4, round.PlayerHand().Len()+round.DealerHand().Len())
}

func (s *RoundTestSuite) TestRecordAfterSettlement() {
	round := NewRound(stackedShoe(
		c(entities.Ten, entities.Spades),
		c(entities.Ten, entities.Hearts),
		c(entities.Nine, entities.Clubs),
		c(entities.Eight, entities.Diamonds),
	), 1000)
	_, err := round.PlaceBet(100)
	s.Require().NoError(err)
	s.Nil(round.Record(), "no record while the round is in play")

	_, err = round.Stand()
	s.Require().NoError(err)

	record := round.Record()
	s.Require().NotNil(record)
	s.Equal(18, record.DealerTotal)
	s.Equal(int64(1100), record.BalanceAfter)
	s.Equal(int64(100), record.TotalWagered())
	s.Equal(int64(200), record.TotalReturned())
	s.Require().Len(record.Transactions, 2)
	s.Equal(entities.TransactionTypeBet, record.Transactions[0].Type)
	s.Equal(entities.TransactionTypePayout, record.Transactions[1].Type)
}
