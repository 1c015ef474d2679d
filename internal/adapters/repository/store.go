// Package repository keeps the best recorded offer per player.
package repository

import (
	"context"

	"github.com/okian/aav/internal/domain/model"
)

// Entry is one row of the offer board.
type Entry struct {
	Rank int `json:"rank"`
	model.Offer
}

// Board provides read/write access to the best offer per player.
type Board interface {
	// RecordBest stores o if its final AAV beats the player's current best.
	// It reports whether the board changed.
	RecordBest(ctx context.Context, o model.Offer) (bool, error)

	// Rank returns the player's position on the board.
	// Returns ErrNotFound if the player has no offer.
	Rank(ctx context.Context, playerID string) (Entry, error)

	// TopN returns the best n offers ordered by final AAV desc, player id asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players on the board.
	Count(ctx context.Context) int
}
