package deck

import (
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits is every suit in build order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Value is the face value of a card
type Value string

// value constants
const (
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
	Ace   Value = "A"
)

// Values is every value in build order
var Values = []Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid returns true if the suit is one of the four suits
func (s Suit) Valid() bool {
	for _, suit := range Suits {
		if s == suit {
			return true
		}
	}

	return false
}

// Valid returns true if the value is one of the thirteen values
func (v Value) Valid() bool {
	for _, value := range Values {
		if v == value {
			return true
		}
	}

	return false
}

// Card is an individual playing card
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♦"
	case Hearts:
		suit = "♥"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return fmt.Sprintf("%s%s", c.Value, suit)
}

var cardRx = regexp.MustCompile(`(?i)^(10|[2-9jqka])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <value><suit>, e.g., 10c, Kd, 2h
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{
		Suit:  suit,
		Value: Value(strings.ToUpper(match[1])),
	}
}

// CardsFromString returns a slice of cards from a comma-separated list, e.g., 2h,5s,Kd
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(strings.TrimSpace(part))
	}

	return cards
}
