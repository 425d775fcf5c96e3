// Package gbp is a typed client for the build-publisher GraphQL API.
//
// Every remote capability is one method that issues exactly one GraphQL
// request and maps the JSON payload into typed records. Transport failures
// and GraphQL-reported errors surface as distinct, catchable error types;
// nothing is retried or swallowed.
package gbp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"gbpcli/src/logger"
)

// Client owns the GraphQL endpoint URL and a reusable transport session.
// It is safe for sequential use; callers invoking multiple operations must
// serialize them.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// New builds a Client for the publisher at baseURL. The GraphQL endpoint
// is derived by appending the fixed /graphql path segment.
func New(baseURL string, log *logger.Logger) *Client {
	endpoint := strings.TrimRight(baseURL, "/") + "/graphql"
	cli := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Accept-Encoding", "gzip, deflate")

	return &Client{http: cli, log: log}
}

// URL returns the derived GraphQL endpoint.
func (c *Client) URL() string {
	return c.http.BaseURL
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Query executes one GraphQL request and returns the data/errors pair
// exactly as present in the payload. Either may be empty. Transport
// failures (connection errors, non-2xx statuses) are returned without
// interpretation.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, []GraphQLError, error) {
	body := map[string]any{"query": query, "variables": variables}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("")
	if err != nil {
		return nil, nil, fmt.Errorf("graphql request: %w", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var out gqlResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, nil, fmt.Errorf("decode graphql response: %w", err)
	}

	c.log.Debug().
		Str("url", c.http.BaseURL).
		Int("errors", len(out.Errors)).
		Msg("graphql round trip")

	return out.Data, out.Errors, nil
}

// Check runs Query and converts a non-empty errors array into an APIError.
// GraphQL allows partial success, so the APIError carries whatever data
// accompanied the errors. All operation methods go through Check, never
// through Query directly, so error semantics stay centralized.
func (c *Client) Check(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	data, gqlErrs, err := c.Query(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	if len(gqlErrs) > 0 {
		return nil, &APIError{Errors: gqlErrs, Data: data}
	}
	return data, nil
}

// Machines returns the machines tracked by the publisher with their build
// counts, in server order.
func (c *Client) Machines(ctx context.Context) ([]Machine, error) {
	data, err := c.Check(ctx, queryMachines, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Machines []struct {
			Name   string `json:"name"`
			Builds int    `json:"builds"`
		} `json:"machines"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode machines: %w", err)
	}

	machines := make([]Machine, len(out.Machines))
	for i, m := range out.Machines {
		machines[i] = Machine{Name: m.Name, BuildCount: m.Builds}
	}
	return machines, nil
}

// Latest returns the machine's most recent build without info, or nil when
// the machine has no builds.
func (c *Client) Latest(ctx context.Context, machine string) (*Build, error) {
	data, err := c.Check(ctx, queryLatest, map[string]any{"name": machine})
	if err != nil {
		return nil, err
	}

	var out struct {
		Latest *struct {
			Number int `json:"number"`
		} `json:"latest"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode latest: %w", err)
	}
	if out.Latest == nil {
		return nil, nil
	}
	return &Build{Machine: machine, Number: out.Latest.Number}, nil
}

// Builds returns all builds for the machine, oldest first. The server
// sends them newest first; the order is reversed here.
func (c *Client) Builds(ctx context.Context, machine string) ([]Build, error) {
	data, err := c.Check(ctx, queryBuilds, map[string]any{"name": machine})
	if err != nil {
		return nil, err
	}

	var out struct {
		Builds []apiBuild `json:"builds"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode builds: %w", err)
	}

	builds := make([]Build, len(out.Builds))
	for i, api := range out.Builds {
		b, err := buildFromAPI(api)
		if err != nil {
			return nil, err
		}
		builds[len(out.Builds)-1-i] = b
	}
	return builds, nil
}

// Diff returns the two builds and the changed items between them, in the
// order the server reports them.
func (c *Client) Diff(ctx context.Context, machine string, left, right int) (Build, Build, []Change, error) {
	variables := map[string]any{
		"left":  map[string]any{"name": machine, "number": left},
		"right": map[string]any{"name": machine, "number": right},
	}
	data, err := c.Check(ctx, queryDiff, variables)
	if err != nil {
		return Build{}, Build{}, nil, err
	}

	var out struct {
		Diff struct {
			Left  apiBuild `json:"left"`
			Right apiBuild `json:"right"`
			Items []struct {
				Item   string `json:"item"`
				Status string `json:"status"`
			} `json:"items"`
		} `json:"diff"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return Build{}, Build{}, nil, fmt.Errorf("decode diff: %w", err)
	}

	leftBuild, err := buildFromAPI(out.Diff.Left)
	if err != nil {
		return Build{}, Build{}, nil, err
	}
	rightBuild, err := buildFromAPI(out.Diff.Right)
	if err != nil {
		return Build{}, Build{}, nil, err
	}

	changes := make([]Change, len(out.Diff.Items))
	for i, item := range out.Diff.Items {
		status, err := ParseStatus(item.Status)
		if err != nil {
			return Build{}, Build{}, nil, err
		}
		changes[i] = Change{Item: item.Item, Status: status}
	}
	return leftBuild, rightBuild, changes, nil
}

// Logs returns the build's log text. found is false when the server does
// not know the build; that is not an error.
func (c *Client) Logs(ctx context.Context, build Build) (logs string, found bool, err error) {
	data, err := c.Check(ctx, queryLogs, buildVariables(build))
	if err != nil {
		return "", false, err
	}

	var out struct {
		Build *struct {
			Logs *string `json:"logs"`
		} `json:"build"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", false, fmt.Errorf("decode logs: %w", err)
	}
	if out.Build == nil {
		return "", false, nil
	}
	if out.Build.Logs == nil {
		return "", true, nil
	}
	return *out.Build.Logs, true, nil
}

// GetBuildInfo returns the build with its info populated, or nil when the
// server does not know the build.
func (c *Client) GetBuildInfo(ctx context.Context, build Build) (*Build, error) {
	data, err := c.Check(ctx, queryBuild, buildVariables(build))
	if err != nil {
		return nil, err
	}

	var out struct {
		Build *apiBuild `json:"build"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode build: %w", err)
	}
	if out.Build == nil {
		return nil, nil
	}

	b, err := buildFromAPI(*out.Build)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ScheduleBuild asks the publisher to schedule a build for the machine and
// returns the server's acknowledgement token.
func (c *Client) ScheduleBuild(ctx context.Context, machine string) (string, error) {
	data, err := c.Check(ctx, mutationScheduleBuild, map[string]any{"name": machine})
	if err != nil {
		return "", err
	}

	var out struct {
		ScheduleBuild string `json:"scheduleBuild"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode scheduleBuild: %w", err)
	}
	return out.ScheduleBuild, nil
}

// Packages returns the build's package identifiers, or nil when the server
// has no package list for it.
func (c *Client) Packages(ctx context.Context, build Build) ([]string, error) {
	data, err := c.Check(ctx, queryPackages, buildVariables(build))
	if err != nil {
		return nil, err
	}

	var out struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode packages: %w", err)
	}
	return out.Packages, nil
}

// Publish makes the build the machine's published build. Side effect only.
func (c *Client) Publish(ctx context.Context, build Build) error {
	_, err := c.Check(ctx, mutationPublish, buildVariables(build))
	return err
}

// Keep marks the build as kept so the publisher will not garbage-collect
// it. Returns the keep flag reported back by the server.
func (c *Client) Keep(ctx context.Context, build Build) (bool, error) {
	return c.keepMutation(ctx, mutationKeepBuild, "keepBuild", build)
}

// Release clears the build's keep flag. Returns the keep flag reported
// back by the server.
func (c *Client) Release(ctx context.Context, build Build) (bool, error) {
	return c.keepMutation(ctx, mutationReleaseBuild, "releaseBuild", build)
}

func (c *Client) keepMutation(ctx context.Context, query, field string, build Build) (bool, error) {
	data, err := c.Check(ctx, query, buildVariables(build))
	if err != nil {
		return false, err
	}

	var out map[string]*struct {
		Keep bool `json:"keep"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return false, fmt.Errorf("decode %s: %w", field, err)
	}
	ack := out[field]
	if ack == nil {
		return false, fmt.Errorf("%s: no build in response", field)
	}
	return ack.Keep, nil
}

// Tag points the named tag at the build. Side effect only.
func (c *Client) Tag(ctx context.Context, build Build, tag string) error {
	variables := buildVariables(build)
	variables["tag"] = tag
	_, err := c.Check(ctx, mutationTagBuild, variables)
	return err
}

// Untag removes the named tag from the machine. Side effect only.
func (c *Client) Untag(ctx context.Context, machine, tag string) error {
	_, err := c.Check(ctx, mutationUntagBuild, map[string]any{"name": machine, "tag": tag})
	return err
}

// Pull asks the publisher to pull the build from its upstream. Side effect
// only.
func (c *Client) Pull(ctx context.Context, build Build) error {
	_, err := c.Check(ctx, mutationPull, buildVariables(build))
	return err
}

func buildVariables(build Build) map[string]any {
	return map[string]any{"name": build.Machine, "number": build.Number}
}
