package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbpcli/src/gbp"
	"gbpcli/src/logger"
)

type postedQuery struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestClient returns a client against a stub GraphQL server replying
// with the canned bodies in order, and a slice that accumulates every
// posted query.
func newTestClient(t *testing.T, responses ...string) (*gbp.Client, *[]postedQuery) {
	t.Helper()

	var posted []postedQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var q postedQuery
		require.NoError(t, json.Unmarshal(body, &q))
		posted = append(posted, q)

		resp := `{"data": null}`
		if n := len(posted) - 1; n < len(responses) {
			resp = responses[n]
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	t.Cleanup(srv.Close)

	return gbp.New(srv.URL, logger.Nop()), &posted
}

func TestParseTagArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		remove      bool
		wantMachine string
		wantNumber  string
		wantTag     string
		wantErr     string
	}{
		{
			name: "machine number tag", args: []string{"lighthouse", "9400", "prod"},
			wantMachine: "lighthouse", wantNumber: "9400", wantTag: "prod",
		},
		{
			name: "machine tag", args: []string{"lighthouse", "prod"},
			wantMachine: "lighthouse", wantTag: "prod",
		},
		{
			name: "tag symbol stripped", args: []string{"lighthouse", "@prod"}, remove: true,
			wantMachine: "lighthouse", wantTag: "prod",
		},
		{
			name: "remove with number", args: []string{"lighthouse", "9400", "prod"}, remove: true,
			wantErr: "When removing a tag, omit the build number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine, number, tag, err := parseTagArgs(tt.args, tt.remove)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMachine, machine)
			assert.Equal(t, tt.wantNumber, number)
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}

func TestRunLogs(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"build": {"logs": "This is a test!\n"}}}`)

	var out bytes.Buffer
	err := runLogs(context.Background(), client, &out, "lighthouse", "3113")
	require.NoError(t, err)
	assert.Equal(t, "This is a test!\n", out.String())
}

func TestRunLogsNotFound(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"build": null}}`)

	var out bytes.Buffer
	err := runLogs(context.Background(), client, &out, "lighthouse", "9999")
	require.EqualError(t, err, "Not Found")
	assert.Empty(t, out.String())
}

func TestRunLatest(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"latest": {"number": 3113}}}`)

	var out bytes.Buffer
	err := runLatest(context.Background(), client, &out, "lighthouse")
	require.NoError(t, err)
	assert.Equal(t, "3113\n", out.String())
}

func TestRunLatestNoBuilds(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"latest": null}}`)

	var out bytes.Buffer
	err := runLatest(context.Background(), client, &out, "bogus")
	require.EqualError(t, err, "no builds for machine bogus")
}

func TestRunList(t *testing.T) {
	client, _ := newTestClient(t, `{
		"data": {"builds": [
			{"name": "lighthouse", "number": 282, "submitted": "2021-05-22T13:28:48+00:00", "published": true},
			{"name": "lighthouse", "number": 281, "submitted": "2021-05-21T10:00:00+00:00", "published": false}
		]}
	}`)

	var out bytes.Buffer
	err := runList(context.Background(), client, &out, "lighthouse")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "281")
	assert.Contains(t, lines[1], "282")
}

func TestRunTagRemoveSendsUntagMutation(t *testing.T) {
	client, posted := newTestClient(t, `{"data": {"untagBuild": true}}`)

	err := runTag(context.Background(), client, []string{"lighthouse", "@prod"}, true)
	require.NoError(t, err)

	require.Len(t, *posted, 1)
	assert.Equal(t, map[string]any{"name": "lighthouse", "tag": "prod"}, (*posted)[0].Variables)
}

func TestRunTagResolvesLatestWhenNumberOmitted(t *testing.T) {
	client, posted := newTestClient(t,
		`{"data": {"latest": {"number": 9400}}}`,
		`{"data": {"tagBuild": true}}`,
	)

	err := runTag(context.Background(), client, []string{"lighthouse", "prod"}, false)
	require.NoError(t, err)

	require.Len(t, *posted, 2)
	assert.Equal(t, map[string]any{
		"name": "lighthouse", "number": float64(9400), "tag": "prod",
	}, (*posted)[1].Variables)
}

func TestRunStatusNotFound(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"build": null}}`)

	var out bytes.Buffer
	err := runStatus(context.Background(), client, &out, "lighthouse", "9999")
	require.EqualError(t, err, "Not Found")
}

func TestRunDiffInvalidNumber(t *testing.T) {
	client, _ := newTestClient(t)

	var out bytes.Buffer
	err := runDiff(context.Background(), client, &out, "lighthouse", "ten", "11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid build number")
}

func TestRunPackagesAbsent(t *testing.T) {
	client, _ := newTestClient(t, `{"data": {"packages": null}}`)

	var out bytes.Buffer
	err := runPackages(context.Background(), client, &out, "lighthouse", "3113")
	require.EqualError(t, err, "Not Found")
}
