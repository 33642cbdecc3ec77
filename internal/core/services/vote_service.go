package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/google/uuid"
)

type voteService struct {
	pollRepo  ports.PollRepository
	voteRepo  ports.VoteRepository
	hasher    ports.VoterHasher
	publisher ports.VotePublisher
}

// NewVoteService builds the trusted vote submission path. publisher may be
// nil; events are best-effort and never affect the submission outcome.
func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, hasher ports.VoterHasher, publisher ports.VotePublisher) ports.VoteService {
	return &voteService{
		pollRepo:  pollRepo,
		voteRepo:  voteRepo,
		hasher:    hasher,
		publisher: publisher,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) error {
	studentID := strings.TrimSpace(input.StudentID)
	if studentID == "" {
		return domain.ErrInvalidInput
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return err
	}

	if poll.Closed(time.Now().UTC()) {
		return domain.ErrPollEnded
	}

	if !poll.HasOption(input.OptionID) {
		return domain.ErrInvalidOption
	}

	vote := &domain.VoteRecord{
		ID:        uuid.New(),
		PollID:    input.PollID,
		OptionID:  input.OptionID,
		VoterHash: s.hasher.Token(studentID),
		VotedAt:   time.Now().UTC(),
	}

	// The repository enforces the one-vote-per-voter invariant: the record
	// insert and the tally increment commit together or not at all.
	if err := s.voteRepo.CastVote(ctx, vote); err != nil {
		return err
	}

	if s.publisher != nil {
		event := domain.VoteEvent{
			PollID:    vote.PollID.String(),
			OptionID:  vote.OptionID.String(),
			VoterHash: vote.VoterHash,
			VotedAt:   vote.VotedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			slog.Warn("failed to publish vote event", "poll_id", event.PollID, "error", err)
		}
	}

	return nil
}
