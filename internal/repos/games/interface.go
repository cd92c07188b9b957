package games

import (
	"context"
	"errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameClosed   = errors.New("game closed")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusClosed    Status = "closed"
	StatusExclusive Status = "exclusive"
)

// Game is the per-kind betting configuration. Owned by an external admin
// surface; read-only from the engines' perspective.
type Game struct {
	ID     uint64
	Name   string
	MinBet int64
	MaxBet int64
	Status Status
}

type Games interface {
	GetByName(ctx context.Context, name string) (*Game, error)
}
