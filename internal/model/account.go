package model

import "time"

// Account is one remote-sync record: a username, its PIN hash, and the last
// tracker document the user's devices pushed. Tracker is nil until the first
// remote save.
type Account struct {
	ID        int       `db:"id"`
	Username  string    `db:"username"`
	HashedPIN string    `db:"hashed_pin"`
	Tracker   []byte    `db:"tracker"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
