package ports

import (
	"context"

	"github.com/classpoll/api/internal/core/domain"
)

type VotePublisher interface {
	Publish(ctx context.Context, event domain.VoteEvent) error
	Close() error
}
