package domain

import (
	"time"

	"github.com/google/uuid"
)

type PollStatus string

const (
	PollStatusActive PollStatus = "active"
	PollStatusEnded  PollStatus = "ended"
)

type Poll struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Status        PollStatus   `json:"status"`
	EndDate       *time.Time   `json:"end_date,omitempty"`
	CreatedBy     uuid.UUID    `json:"created_by"`
	CreatedByName string       `json:"created_by_name,omitempty"`
	Options       []PollOption `json:"options"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Closed reports whether the poll no longer accepts votes, either because
// its creator ended it or because its end date has passed.
func (p *Poll) Closed(now time.Time) bool {
	if p.Status == PollStatusEnded {
		return true
	}
	return p.EndDate != nil && now.After(*p.EndDate)
}

// HasOption reports whether the option belongs to this poll.
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

type PollOption struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	VoteCount int64     `json:"-"`
}
