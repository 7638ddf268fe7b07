package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/model"
)

// inserts a new account, returns the new account ID. Usernames are stored
// lowercased; a duplicate yields ErrUsernameTaken.
func (s *pgStore) CreateAccount(ctx context.Context, username, hashedPIN string) (int, error) {
	query := `
	INSERT INTO accounts (username, hashed_pin, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRowContext(ctx, query, strings.ToLower(username), hashedPIN).Scan(&newID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrUsernameTaken
		}
		log.Error().Err(err).Msg("failed to create account")
		return 0, err
	}
	return newID, nil
}

// fetches an account by username. Returns ErrUserNotFound if absent.
func (s *pgStore) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account
	query := `
	SELECT id, username, hashed_pin, tracker, created_at, updated_at
	FROM accounts
	WHERE username = $1;
	`
	err := s.db.GetContext(ctx, &a, query, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		log.Error().Err(err).Msg("failed to get account by username")
		return nil, err
	}
	return &a, nil
}

// returns the account's tracker document, or nil when the account has never
// pushed one.
func (s *pgStore) LoadTracker(ctx context.Context, username string) (*model.Tracker, error) {
	a, err := s.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(a.Tracker) == 0 {
		return nil, nil
	}
	var t model.Tracker
	if err := json.Unmarshal(a.Tracker, &t); err != nil {
		log.Warn().Err(err).Str("username", a.Username).Msg("discarding malformed remote tracker")
		return nil, nil
	}
	return &t, nil
}

// replaces the account's tracker document. Only the tracker column is
// written, so the stored pin is preserved.
func (s *pgStore) SaveTracker(ctx context.Context, username string, t *model.Tracker) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	query := `
	UPDATE accounts
	SET tracker = $2,
	updated_at = now()
	WHERE username = $1;
	`
	res, err := s.db.ExecContext(ctx, query, strings.ToLower(username), payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to save tracker")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
