package services

import (
	"context"
	"testing"
	"time"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResults(t *testing.T) {
	poll := activePoll()
	now := time.Now().UTC()
	resultRepo := &fakeResultRepo{
		options: []domain.OptionResult{
			{OptionID: poll.Options[0].ID, Name: "A", VoteCount: 2},
			{OptionID: poll.Options[1].ID, Name: "B", VoteCount: 1},
		},
		voters: []domain.VoterActivity{
			{VoterHash: "h1", OptionName: "A", VotedAt: now.Add(-2 * time.Minute)},
			{VoterHash: "h2", OptionName: "B", VotedAt: now.Add(-time.Minute)},
			{VoterHash: "h3", OptionName: "A", VotedAt: now},
		},
		count: 3,
	}
	svc := NewResultService(newFakePollRepo(poll), resultRepo)

	results, err := svc.GetResults(context.Background(), poll.ID.String(), poll.CreatedBy)
	require.NoError(t, err)

	assert.Equal(t, poll.Title, results.Title)
	require.Len(t, results.Options, 2)
	assert.Equal(t, "A", results.Options[0].Name)
	assert.Equal(t, int64(2), results.Options[0].VoteCount)
	require.Len(t, results.Voters, 3)
	assert.Equal(t, "h1", results.Voters[0].VoterHash)
}

// Tallies, voters and the record count must come from one repository read.
// Separate reads let a vote commit in between and make the consistency
// check fail on a healthy store.
func TestGetResultsReadsOneSnapshot(t *testing.T) {
	poll := activePoll()
	resultRepo := &fakeResultRepo{
		options: []domain.OptionResult{{OptionID: poll.Options[0].ID, Name: "A", VoteCount: 1}},
		count:   1,
	}
	svc := NewResultService(newFakePollRepo(poll), resultRepo)

	_, err := svc.GetResults(context.Background(), poll.ID.String(), poll.CreatedBy)
	require.NoError(t, err)
	assert.Equal(t, 1, resultRepo.snapshots)
}

func TestGetResultsNonCreator(t *testing.T) {
	poll := activePoll()
	svc := NewResultService(newFakePollRepo(poll), &fakeResultRepo{})

	_, err := svc.GetResults(context.Background(), poll.ID.String(), uuid.New())
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestGetResultsMissingPoll(t *testing.T) {
	svc := NewResultService(newFakePollRepo(), &fakeResultRepo{})

	_, err := svc.GetResults(context.Background(), uuid.New().String(), uuid.New())
	require.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestGetResultsInvalidID(t *testing.T) {
	svc := NewResultService(newFakePollRepo(), &fakeResultRepo{})

	_, err := svc.GetResults(context.Background(), "nope", uuid.New())
	require.ErrorIs(t, err, domain.ErrInvalidPollID)
}

func TestGetResultsTallyMismatch(t *testing.T) {
	poll := activePoll()
	resultRepo := &fakeResultRepo{
		options: []domain.OptionResult{{OptionID: poll.Options[0].ID, Name: "A", VoteCount: 2}},
		count:   3,
	}
	svc := NewResultService(newFakePollRepo(poll), resultRepo)

	_, err := svc.GetResults(context.Background(), poll.ID.String(), poll.CreatedBy)
	require.ErrorIs(t, err, domain.ErrTallyMismatch)
}

func TestAuditAll(t *testing.T) {
	poll := activePoll()
	resultRepo := &fakeResultRepo{
		options: []domain.OptionResult{{OptionID: poll.Options[0].ID, Name: "A", VoteCount: 1}},
		count:   1,
	}
	auditor := NewTallyAuditService(newFakePollRepo(poll), resultRepo)

	require.NoError(t, auditor.AuditAll(context.Background()))
}

func TestAuditAllReportsMismatch(t *testing.T) {
	poll := activePoll()
	resultRepo := &fakeResultRepo{
		options: []domain.OptionResult{{OptionID: poll.Options[0].ID, Name: "A", VoteCount: 5}},
		count:   1,
	}
	auditor := NewTallyAuditService(newFakePollRepo(poll), resultRepo)

	err := auditor.AuditAll(context.Background())
	require.ErrorIs(t, err, domain.ErrTallyMismatch)
}
