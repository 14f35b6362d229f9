package model

import (
	"time"
)

// GameStatus is the lifecycle status of a game
type GameStatus string

// GameStatus constants
const (
	GameStatusPending  GameStatus = "pending"
	GameStatusOngoing  GameStatus = "ongoing"
	GameStatusFinished GameStatus = "finished"
)

// Game is a record in the `games` table
type Game struct {
	ID     string     `json:"id"`
	Status GameStatus `json:"status"`
	// CurrentTurn is the ID of the player whose turn it is, empty before the game starts
	CurrentTurn string `json:"currentTurn"`
	// WinnerID is empty until the game is finished
	WinnerID   string    `json:"winnerId"`
	InviteCode string    `json:"inviteCode"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// Start moves a pending game to ongoing with the first player's turn
func (g *Game) Start(firstPlayerID string) error {
	if g.Status != GameStatusPending {
		return ErrInvalidTransition
	}

	g.Status = GameStatusOngoing
	g.CurrentTurn = firstPlayerID
	return nil
}

// Finish ends an ongoing game
func (g *Game) Finish(winnerID string) error {
	if g.Status != GameStatusOngoing {
		return ErrInvalidTransition
	}

	g.Status = GameStatusFinished
	g.WinnerID = winnerID
	return nil
}

// IsOver returns true if the game is finished
func (g *Game) IsOver() bool {
	return g.Status == GameStatusFinished
}
