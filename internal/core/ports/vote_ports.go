package ports

import (
	"context"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/google/uuid"
)

type VoteRepository interface {
	// CastVote inserts the record and increments the chosen option's tally
	// in one transaction. Returns domain.ErrAlreadyVoted if a record for
	// (PollID, VoterHash) exists; in that case nothing is written.
	CastVote(ctx context.Context, vote *domain.VoteRecord) error
}

// VoterHasher derives the stored voter identity token from a raw student id.
type VoterHasher interface {
	Token(raw string) string
}

type VoteInput struct {
	PollID    uuid.UUID
	OptionID  uuid.UUID
	StudentID string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) error
}
