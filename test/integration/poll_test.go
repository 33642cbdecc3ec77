package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpoll/api/internal/core/domain"
)

func TestCreatePollRequiresAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.request(t, http.MethodPost, "/api/polls", map[string]interface{}{
		"title":   "No auth",
		"options": []string{"A"},
	}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePollValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)

	resp := app.request(t, http.MethodPost, "/api/polls", map[string]interface{}{
		"title":   "  ",
		"options": []string{"A"},
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodPost, "/api/polls", map[string]interface{}{
		"title":   "No options",
		"options": []string{"", "   "},
	}, token)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPollListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	active := app.createPoll(t, token, "Active poll", []string{"A", "B"})
	ended := app.createPoll(t, token, "Ended poll", []string{"A", "B"})

	resp := app.request(t, http.MethodPost, "/api/polls/"+ended.ID.String()+"/status", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Students only see the active poll
	var listed []domain.Poll
	decodeJSON(t, app.request(t, http.MethodGet, "/api/polls", nil, ""), &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, active.ID, listed[0].ID)

	// The creator sees both
	var mine []domain.Poll
	decodeJSON(t, app.request(t, http.MethodGet, "/api/polls/mine", nil, token), &mine)
	assert.Len(t, mine, 2)

	// Another teacher sees none of them
	_, otherToken := createUserAndToken(t, app.DB)
	var others []domain.Poll
	decodeJSON(t, app.request(t, http.MethodGet, "/api/polls/mine", nil, otherToken), &others)
	assert.Empty(t, others)
}

func TestEditPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Original title", []string{"A", "B"})

	end := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	var edited domain.Poll
	decodeJSON(t, app.request(t, http.MethodPatch, "/api/polls/"+poll.ID.String(), map[string]interface{}{
		"title":    "New title",
		"end_date": end,
	}, token), &edited)

	assert.Equal(t, "New title", edited.Title)
	require.NotNil(t, edited.EndDate)
	assert.Len(t, edited.Options, 2)

	// A different teacher cannot edit it
	_, otherToken := createUserAndToken(t, app.DB)
	resp := app.request(t, http.MethodPatch, "/api/polls/"+poll.ID.String(), map[string]interface{}{
		"title": "Hijacked",
	}, otherToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestEditPollLeavesVotesIntact(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Edit with votes", []string{"A", "B"})

	resp := app.vote(t, poll.ID.String(), poll.Options[0].ID.String(), "20240101")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodPatch, "/api/polls/"+poll.ID.String(), map[string]interface{}{
		"title": "Renamed",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var tally int64
	require.NoError(t, app.DB.QueryRow("SELECT vote_count FROM poll_options WHERE id=$1", poll.Options[0].ID).Scan(&tally))
	assert.Equal(t, int64(1), tally)

	var recorded int64
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE poll_id=$1", poll.ID).Scan(&recorded))
	assert.Equal(t, int64(1), recorded)
}

func TestToggleStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Toggle poll", []string{"A"})

	var toggled domain.Poll
	decodeJSON(t, app.request(t, http.MethodPost, "/api/polls/"+poll.ID.String()+"/status", nil, token), &toggled)
	assert.Equal(t, domain.PollStatusEnded, toggled.Status)

	decodeJSON(t, app.request(t, http.MethodPost, "/api/polls/"+poll.ID.String()+"/status", nil, token), &toggled)
	assert.Equal(t, domain.PollStatusActive, toggled.Status)

	_, otherToken := createUserAndToken(t, app.DB)
	resp := app.request(t, http.MethodPost, "/api/polls/"+poll.ID.String()+"/status", nil, otherToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

// TestDeletePollCascade verifies a deleted poll takes its options and vote
// records with it, with nothing left queryable.
func TestDeletePollCascade(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	poll := app.createPoll(t, token, "Doomed poll", []string{"A", "B"})

	resp := app.vote(t, poll.ID.String(), poll.Options[0].ID.String(), "20240101")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// A different teacher cannot delete it
	_, otherToken := createUserAndToken(t, app.DB)
	resp = app.request(t, http.MethodDelete, "/api/polls/"+poll.ID.String(), nil, otherToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = app.request(t, http.MethodDelete, "/api/polls/"+poll.ID.String(), nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var polls, options, votes int64
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM polls WHERE id=$1", poll.ID).Scan(&polls))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM poll_options WHERE poll_id=$1", poll.ID).Scan(&options))
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE poll_id=$1", poll.ID).Scan(&votes))
	assert.Zero(t, polls)
	assert.Zero(t, options)
	assert.Zero(t, votes)

	resp = app.request(t, http.MethodGet, "/api/polls/"+poll.ID.String(), nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetMe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID, token := createUserAndToken(t, app.DB)

	var me domain.User
	decodeJSON(t, app.request(t, http.MethodGet, "/api/users/me", nil, token), &me)
	assert.Equal(t, userID, me.ID)

	resp := app.request(t, http.MethodGet, "/api/users/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
