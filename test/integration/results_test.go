package integration

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoll/api/internal/core/domain"
)

func TestGetResults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Lunch menu", []string{"A", "B"})

	resp := app.vote(t, poll.ID.String(), poll.Options[0].ID.String(), "20240101")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.vote(t, poll.ID.String(), poll.Options[1].ID.String(), "20240102")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var results domain.PollResults
	decodeJSON(t, app.request(t, http.MethodGet, "/api/polls/"+poll.ID.String()+"/results", nil, token), &results)

	assert.Equal(t, "Lunch menu", results.Title)

	// Options come back in creation order with authoritative tallies
	require.Len(t, results.Options, 2)
	assert.Equal(t, "A", results.Options[0].Name)
	assert.Equal(t, int64(1), results.Options[0].VoteCount)
	assert.Equal(t, "B", results.Options[1].Name)
	assert.Equal(t, int64(1), results.Options[1].VoteCount)

	// Voter activity is ordered by submission time and carries hashed
	// identities only
	require.Len(t, results.Voters, 2)
	assert.Equal(t, "A", results.Voters[0].OptionName)
	assert.Equal(t, "B", results.Voters[1].OptionName)
	assert.True(t, !results.Voters[1].VotedAt.Before(results.Voters[0].VotedAt))
	for _, voter := range results.Voters {
		assert.NotContains(t, voter.VoterHash, "2024010")
	}
}

func TestGetResultsNonCreator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Private results", []string{"A"})

	_, otherToken := createUserAndToken(t, app.DB)
	resp := app.request(t, http.MethodGet, "/api/polls/"+poll.ID.String()+"/results", nil, otherToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodGet, "/api/polls/"+poll.ID.String()+"/results", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGetResultsUnknownPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	resp := app.request(t, http.MethodGet, "/api/polls/"+uuid.NewString()+"/results", nil, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// Tallies must always equal the number of vote records; a forced skew is
// reported instead of silently reconciled.
func TestResultsSurfaceTallyMismatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Skewed poll", []string{"A"})

	resp := app.vote(t, poll.ID.String(), poll.Options[0].ID.String(), "20240101")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	_, err := app.DB.Exec("UPDATE poll_options SET vote_count = vote_count + 1 WHERE id=$1", poll.Options[0].ID)
	require.NoError(t, err)

	resp = app.request(t, http.MethodGet, "/api/polls/"+poll.ID.String()+"/results", nil, token)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}
