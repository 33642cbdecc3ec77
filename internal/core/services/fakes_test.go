package services

import (
	"context"
	"fmt"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/google/uuid"
)

type fakePollRepo struct {
	polls   map[uuid.UUID]*domain.Poll
	deleted []uuid.UUID
	err     error
}

func newFakePollRepo(polls ...*domain.Poll) *fakePollRepo {
	repo := &fakePollRepo{polls: make(map[uuid.UUID]*domain.Poll)}
	for _, p := range polls {
		repo.polls[p.ID] = p
	}
	return repo
}

func (r *fakePollRepo) Save(ctx context.Context, poll *domain.Poll) error {
	if r.err != nil {
		return r.err
	}
	r.polls[poll.ID] = poll
	return nil
}

func (r *fakePollRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	if r.err != nil {
		return nil, r.err
	}
	poll, ok := r.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return poll, nil
}

func (r *fakePollRepo) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, p := range r.polls {
		polls = append(polls, p)
	}
	return polls, nil
}

func (r *fakePollRepo) ListActive(ctx context.Context) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, p := range r.polls {
		if p.Status == domain.PollStatusActive {
			polls = append(polls, p)
		}
	}
	return polls, nil
}

func (r *fakePollRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Poll, error) {
	var polls []*domain.Poll
	for _, p := range r.polls {
		if p.CreatedBy == creatorID {
			polls = append(polls, p)
		}
	}
	return polls, nil
}

func (r *fakePollRepo) Update(ctx context.Context, poll *domain.Poll) error {
	if _, ok := r.polls[poll.ID]; !ok {
		return domain.ErrPollNotFound
	}
	r.polls[poll.ID] = poll
	return nil
}

func (r *fakePollRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.polls[id]; !ok {
		return domain.ErrPollNotFound
	}
	delete(r.polls, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeVoteRepo struct {
	votes map[string]*domain.VoteRecord
	err   error
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{votes: make(map[string]*domain.VoteRecord)}
}

func (r *fakeVoteRepo) CastVote(ctx context.Context, vote *domain.VoteRecord) error {
	if r.err != nil {
		return r.err
	}
	key := fmt.Sprintf("%s/%s", vote.PollID, vote.VoterHash)
	if _, ok := r.votes[key]; ok {
		return domain.ErrAlreadyVoted
	}
	r.votes[key] = vote
	return nil
}

type fakeResultRepo struct {
	options   []domain.OptionResult
	voters    []domain.VoterActivity
	count     int64
	err       error
	snapshots int
}

func (r *fakeResultRepo) GetResultsSnapshot(ctx context.Context, pollID uuid.UUID) (*domain.ResultSnapshot, error) {
	r.snapshots++
	if r.err != nil {
		return nil, r.err
	}
	return &domain.ResultSnapshot{
		Options:  r.options,
		Voters:   r.voters,
		Recorded: r.count,
	}, nil
}

type fakePublisher struct {
	events []domain.VoteEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event domain.VoteEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }
