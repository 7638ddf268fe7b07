// exposes a Store interface that is passed to API calls and the sync service.
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/deenworks/qada/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Store interface {
	// account functions
	CreateAccount(ctx context.Context, username, hashedPIN string) (int, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)

	// tracker document functions; SaveTracker must never touch the pin column
	LoadTracker(ctx context.Context, username string) (*model.Tracker, error)
	SaveTracker(ctx context.Context, username string, t *model.Tracker) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
