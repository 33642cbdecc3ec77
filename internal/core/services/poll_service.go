package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/classpoll/api/internal/core/ports"
	"github.com/google/uuid"
)

type pollService struct {
	repo ports.PollRepository
}

func NewPollService(repo ports.PollRepository) ports.PollService {
	return &pollService{
		repo: repo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	pollID := uuid.New()
	now := time.Now().UTC()

	poll := &domain.Poll{
		ID:            pollID,
		Title:         title,
		Status:        domain.PollStatusActive,
		EndDate:       input.EndDate,
		CreatedBy:     input.CreatedBy,
		CreatedByName: input.CreatedByName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, name := range input.Options {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   pollID,
			Name:     name,
			Position: len(poll.Options),
		})
	}

	if len(poll.Options) == 0 {
		return nil, fmt.Errorf("%w: at least one option is required", domain.ErrInvalidInput)
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	return s.repo.GetByID(ctx, pollID)
}

func (s *pollService) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	return s.repo.ListActive(ctx)
}

func (s *pollService) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Poll, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

// Edit changes title and end date only. Options and tallies are fixed once
// the poll exists. EndDate replaces the stored value wholesale: the edit
// form always submits both fields, and a request with end_date omitted
// clears the deadline.
func (s *pollService) Edit(ctx context.Context, id string, requesterID uuid.UUID, input ports.EditPollInput) (*domain.Poll, error) {
	poll, err := s.ownedPoll(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	poll.Title = title
	poll.EndDate = input.EndDate
	poll.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) ToggleStatus(ctx context.Context, id string, requesterID uuid.UUID) (*domain.Poll, error) {
	poll, err := s.ownedPoll(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if poll.Status == domain.PollStatusActive {
		poll.Status = domain.PollStatusEnded
	} else {
		poll.Status = domain.PollStatusActive
	}
	poll.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

// Delete removes the poll with its options and vote records as one unit.
func (s *pollService) Delete(ctx context.Context, id string, requesterID uuid.UUID) error {
	poll, err := s.ownedPoll(ctx, id, requesterID)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, poll.ID)
}

func (s *pollService) ownedPoll(ctx context.Context, id string, requesterID uuid.UUID) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	if poll.CreatedBy != requesterID {
		return nil, domain.ErrPermissionDenied
	}

	return poll, nil
}
