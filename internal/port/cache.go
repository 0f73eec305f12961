package port

import (
	"context"

	"github.com/exsim/exchange-sim/internal/domain"
)

type Cache interface {
	SetDepth(ctx context.Context, snap *domain.DepthSnapshot) error
	GetDepth(ctx context.Context) (*domain.DepthSnapshot, error)
}
