package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classpoll/api/internal/core/domain"
)

func (app *TestApp) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) createPoll(t *testing.T, token string, title string, options []string) domain.Poll {
	t.Helper()

	resp := app.request(t, http.MethodPost, "/api/polls", map[string]interface{}{
		"title":   title,
		"options": options,
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var poll domain.Poll
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poll))
	return poll
}

func (app *TestApp) vote(t *testing.T, pollID, optionID, studentID string) *http.Response {
	t.Helper()

	return app.request(t, http.MethodPost, "/api/polls/"+pollID+"/votes", map[string]interface{}{
		"option_id":  optionID,
		"student_id": studentID,
	}, "")
}
