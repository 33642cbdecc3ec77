package services

import (
	"context"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/google/uuid"
)

type resultService struct {
	pollRepo   ports.PollRepository
	resultRepo ports.ResultRepository
}

func NewResultService(pollRepo ports.PollRepository, resultRepo ports.ResultRepository) ports.ResultService {
	return &resultService{
		pollRepo:   pollRepo,
		resultRepo: resultRepo,
	}
}

func (s *resultService) GetResults(ctx context.Context, id string, requesterID uuid.UUID) (*domain.PollResults, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.CreatedBy != requesterID {
		return nil, domain.ErrPermissionDenied
	}

	snap, err := s.resultRepo.GetResultsSnapshot(ctx, pollID)
	if err != nil {
		return nil, err
	}

	// The tallies are the authoritative counters maintained by the
	// submission path. Tallies and record count come from the same
	// snapshot, so a divergence means vote submission lost atomicity
	// somewhere and must not be papered over.
	if tallied := sumTallies(snap.Options); tallied != snap.Recorded {
		return nil, fmt.Errorf("%w: poll %s has %d tallied but %d recorded", domain.ErrTallyMismatch, pollID, tallied, snap.Recorded)
	}

	return &domain.PollResults{
		PollID:  pollID,
		Title:   poll.Title,
		Options: snap.Options,
		Voters:  snap.Voters,
	}, nil
}

func sumTallies(options []domain.OptionResult) int64 {
	var total int64
	for _, opt := range options {
		total += opt.VoteCount
	}
	return total
}
