package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID        uint64
	Name      string
	Email     string
	CreatedAt time.Time
}

type Users interface {
	GetByID(ctx context.Context, userID uint64) (*User, error)
	Exists(tx *sql.Tx, userID uint64) error
}
