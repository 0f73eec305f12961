package port

import (
	"context"

	"github.com/exsim/exchange-sim/internal/domain"
)

// Journal is the audit trail of executions. It is write-mostly; the book is
// never restored from it.
type Journal interface {
	SaveFill(ctx context.Context, f *domain.Fill) error
	RecentFills(ctx context.Context, limit int) ([]*domain.Fill, error)
}
