package model

// Player is a record in the `players` table
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"gameId"`
	// UserID is the external identity of a human; empty for bots
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	IsBot    bool   `json:"isBot"`
}
