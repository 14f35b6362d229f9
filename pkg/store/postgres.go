package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shed-server/pkg/db"
	"shed-server/pkg/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// maxAttempts is how many times a mutation is tried when it loses a serialization race
const maxAttempts = 3

// postgres error codes
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

const gameColumns = `
games.id,
games.status,
games.current_turn,
games.winner_id,
games.invite_code,
games.created,
games.updated`

const playerColumns = `
players.id,
players.game_id,
players.user_id,
players.name,
players.position,
players.is_bot`

const cardColumns = `
cards.id,
cards.game_id,
cards.suit,
cards.value,
cards.location,
cards.owner_id,
cards.position`

// Postgres is a Store backed by the games, players and cards tables
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a postgres store
func NewPostgres(dbh *sql.DB) *Postgres {
	return &Postgres{db: dbh}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isCode(err error, codes ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}

	return false
}

// Create inserts the game, its players and its cards in one transaction
func (p *Postgres) Create(ctx context.Context, state *model.State) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := p.insertState(ctx, tx, state); err != nil {
		db.Rollback(tx)
		if isCode(err, pqUniqueViolation) {
			return ErrDuplicateInviteCode
		}

		return err
	}

	return tx.Commit()
}

func (p *Postgres) insertState(ctx context.Context, tx *sql.Tx, state *model.State) error {
	g := state.Game
	const query = `
INSERT INTO games (id, status, current_turn, winner_id, invite_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING created, updated`
	row := tx.QueryRowContext(ctx, query, g.ID, g.Status, nullString(g.CurrentTurn), nullString(g.WinnerID), g.InviteCode)
	if err := row.Scan(&g.Created, &g.Updated); err != nil {
		return err
	}

	const playerQuery = `
INSERT INTO players (id, game_id, user_id, name, position, is_bot)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, player := range state.Players {
		if _, err := tx.ExecContext(ctx, playerQuery, player.ID, g.ID, nullString(player.UserID), player.Name, player.Position, player.IsBot); err != nil {
			return err
		}
	}

	const cardQuery = `
INSERT INTO cards (id, game_id, suit, value, location, owner_id, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, card := range state.Cards {
		if _, err := tx.ExecContext(ctx, cardQuery, card.ID, g.ID, card.Suit, card.Value, card.Location, nullString(card.OwnerID), card.Position); err != nil {
			return err
		}
	}

	return nil
}

// View returns the game without locking it
func (p *Postgres) View(ctx context.Context, gameID string) (*model.State, error) {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, err
	}
	defer db.Rollback(tx)

	return p.load(ctx, tx, gameID, false)
}

// Update locks the game row, runs fn and writes back only what fn changed
// Serialization failures and deadlocks are retried before ErrConcurrentMutation is returned.
func (p *Postgres) Update(ctx context.Context, gameID string, fn func(state *model.State) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = p.update(ctx, gameID, fn)
		if !isCode(err, pqSerializationFailure, pqDeadlockDetected) {
			return err
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"gameID":  gameID,
			"attempt": attempt,
		}).Warn("retrying game update")
	}

	return fmt.Errorf("%w: %v", ErrConcurrentMutation, err)
}

func (p *Postgres) update(ctx context.Context, gameID string, fn func(state *model.State) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	original, err := p.load(ctx, tx, gameID, true)
	if err != nil {
		db.Rollback(tx)
		return err
	}

	working := original.Clone()
	if err := fn(working); err != nil {
		db.Rollback(tx)
		return err
	}

	if err := p.save(ctx, tx, original, working); err != nil {
		db.Rollback(tx)
		return err
	}

	return tx.Commit()
}

func (p *Postgres) load(ctx context.Context, tx *sql.Tx, gameID string, forUpdate bool) (*model.State, error) {
	query := `
SELECT ` + gameColumns + `
FROM games
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	g, err := getGameByRow(tx.QueryRowContext(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}

		return nil, err
	}

	players, err := p.loadPlayers(ctx, tx, gameID)
	if err != nil {
		return nil, err
	}

	cards, err := p.loadCards(ctx, tx, gameID)
	if err != nil {
		return nil, err
	}

	return &model.State{Game: g, Players: players, Cards: cards}, nil
}

func (p *Postgres) loadPlayers(ctx context.Context, tx *sql.Tx, gameID string) ([]*model.Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE game_id = $1
ORDER BY position`

	rows, err := tx.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*model.Player, 0)
	for rows.Next() {
		player, err := getPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, rows.Err()
}

func (p *Postgres) loadCards(ctx context.Context, tx *sql.Tx, gameID string) ([]*model.Card, error) {
	const query = `
SELECT ` + cardColumns + `
FROM cards
WHERE game_id = $1
ORDER BY location, owner_id, position`

	rows, err := tx.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := make([]*model.Card, 0, 52)
	for rows.Next() {
		card, err := getCardByRow(rows)
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// save writes the difference between original and working
func (p *Postgres) save(ctx context.Context, tx *sql.Tx, original, working *model.State) error {
	if *original.Game != *working.Game {
		const query = `
UPDATE games
SET status       = $1,
    current_turn = $2,
    winner_id    = $3,
    updated      = (NOW() AT TIME ZONE 'UTC')
WHERE id = $4
RETURNING updated`
		g := working.Game
		row := tx.QueryRowContext(ctx, query, g.Status, nullString(g.CurrentTurn), nullString(g.WinnerID), g.ID)
		if err := row.Scan(&g.Updated); err != nil {
			return err
		}
	}

	remaining := make(map[string]*model.Card, len(working.Cards))
	for _, card := range working.Cards {
		remaining[card.ID] = card
	}

	removed := make([]string, 0)
	changed := make([]*model.Card, 0)
	for _, card := range original.Cards {
		after, ok := remaining[card.ID]
		if !ok {
			removed = append(removed, card.ID)
			continue
		}

		if *after != *card {
			changed = append(changed, after)
		}
	}

	if len(removed) > 0 {
		const query = `
DELETE FROM cards
WHERE game_id = $1
  AND id = ANY($2)`
		if _, err := tx.ExecContext(ctx, query, working.Game.ID, pq.Array(removed)); err != nil {
			return err
		}
	}

	const query = `
UPDATE cards
SET location = $1,
    owner_id = $2,
    position = $3
WHERE id = $4`
	for _, card := range changed {
		if _, err := tx.ExecContext(ctx, query, card.Location, nullString(card.OwnerID), card.Position, card.ID); err != nil {
			return err
		}
	}

	return nil
}

// GameIDByInviteCode returns the ID of the game for an invite code
func (p *Postgres) GameIDByInviteCode(ctx context.Context, inviteCode string) (string, error) {
	const query = `
SELECT id
FROM games
WHERE invite_code = $1`

	var id string
	if err := p.db.QueryRowContext(ctx, query, inviteCode).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrGameNotFound
		}

		return "", err
	}

	return id, nil
}

func getGameByRow(row db.Scanner) (*model.Game, error) {
	var g model.Game
	var currentTurn, winnerID sql.NullString
	if err := row.Scan(&g.ID, &g.Status, &currentTurn, &winnerID, &g.InviteCode, &g.Created, &g.Updated); err != nil {
		return nil, err
	}

	g.CurrentTurn = currentTurn.String
	g.WinnerID = winnerID.String
	return &g, nil
}

func getPlayerByRow(row db.Scanner) (*model.Player, error) {
	var player model.Player
	var userID sql.NullString
	if err := row.Scan(&player.ID, &player.GameID, &userID, &player.Name, &player.Position, &player.IsBot); err != nil {
		return nil, err
	}

	player.UserID = userID.String
	return &player, nil
}

func getCardByRow(row db.Scanner) (*model.Card, error) {
	var card model.Card
	var ownerID sql.NullString
	if err := row.Scan(&card.ID, &card.GameID, &card.Suit, &card.Value, &card.Location, &ownerID, &card.Position); err != nil {
		return nil, err
	}

	card.OwnerID = ownerID.String
	return &card, nil
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*Memory)(nil)
)
