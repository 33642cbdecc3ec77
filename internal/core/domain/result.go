package domain

import (
	"time"

	"github.com/google/uuid"
)

type OptionResult struct {
	OptionID  uuid.UUID `json:"option_id"`
	Name      string    `json:"name"`
	VoteCount int64     `json:"vote_count"`
}

type VoterActivity struct {
	VoterHash  string    `json:"voter_hash"`
	OptionName string    `json:"option_name"`
	VotedAt    time.Time `json:"voted_at"`
}

// ResultSnapshot holds a poll's option tallies, vote records and record
// count as read in a single transaction, so the three views agree even
// while votes are being cast.
type ResultSnapshot struct {
	Options  []OptionResult
	Voters   []VoterActivity
	Recorded int64
}

type PollResults struct {
	PollID  uuid.UUID       `json:"poll_id"`
	Title   string          `json:"title"`
	Options []OptionResult  `json:"options"`
	Voters  []VoterActivity `json:"voters"`
}
