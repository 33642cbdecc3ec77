package ports

import (
	"context"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/google/uuid"
)

type ResultRepository interface {
	// GetResultsSnapshot returns the poll's options with their authoritative
	// tallies in creation order, the vote records joined with option names
	// ordered by submission time, and the record count. All three come from
	// one snapshot; a vote landing mid-read cannot skew one against another.
	GetResultsSnapshot(ctx context.Context, pollID uuid.UUID) (*domain.ResultSnapshot, error)
}

type ResultService interface {
	GetResults(ctx context.Context, pollID string, requesterID uuid.UUID) (*domain.PollResults, error)
}

// TallyAuditor recomputes vote counts from the records and reports any poll
// whose option tallies diverge.
type TallyAuditor interface {
	AuditAll(ctx context.Context) error
}
