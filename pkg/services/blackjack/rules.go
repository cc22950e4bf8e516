package blackjack

import (
	"strconv"

	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	DefaultDecks   = 8  // Decks in the shoe
	BlackjackTotal = 21 // Best possible total
	DealerStandsOn = 17 // Dealer draws below this total, soft or hard
)

// GetCardValue returns the blackjack value of a card, counting an Ace as 11
func GetCardValue(card entities.Card) int {
	switch card.Rank {
	case entities.Ace:
		return 11
	case entities.Jack, entities.Queen, entities.King:
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card entities.Card) bool {
	return card.Rank == entities.Ace
}

// GetBestScore totals the cards, demoting Aces from 11 to 1 while the total is over 21
func GetBestScore(cards []entities.Card) int {
	score, _ := scoreCards(cards)
	return score
}

// scoreCards returns the best total and how many Aces are still counted as 11
func scoreCards(cards []entities.Card) (int, int) {
	score := 0
	softAces := 0

	for _, card := range cards {
		if IsAce(card) {
			softAces++
		}
		score += GetCardValue(card)
	}

	for score > BlackjackTotal && softAces > 0 {
		score -= 10
		softAces--
	}

	return score, softAces
}

// DealerShouldHit applies the house policy: draw below 17, stand on any 17
func DealerShouldHit(cards []entities.Card) bool {
	return GetBestScore(cards) < DealerStandsOn
}

// InsuranceStake is half the main bet, rounded down
func InsuranceStake(bet int64) int64 {
	return bet / 2
}
