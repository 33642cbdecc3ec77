package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoteRecord is immutable once created; there is no update or delete path
// for it through the services.
type VoteRecord struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	VoterHash string    `json:"voter_hash"`
	VotedAt   time.Time `json:"voted_at"`
}

// VoteEvent is the message published for each committed vote.
type VoteEvent struct {
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	VoterHash string    `json:"voter_hash"`
	VotedAt   time.Time `json:"voted_at"`
}
