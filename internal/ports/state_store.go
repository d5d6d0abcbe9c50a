package ports

import (
	"context"

	"github.com/jsr4564/WepaAPP/internal/domain"
)

// StateStore owns the persisted monitor document. Load recovers to an empty
// ledger on corruption, returning both the usable ledger and an error
// wrapping domain.ErrStateCorrupt so callers can warn without crashing.
type StateStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, ledger *domain.Ledger) error
}
