package travis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const APIVersionHeader = "Travis-API-Version"
const APIVersion = "3"

// Job states that will not change any more.
const (
	StatePassed   = "passed"
	StateFailed   = "failed"
	StateErrored  = "errored"
	StateCanceled = "canceled"
)

type Job struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	State        string `json:"state"`
	AllowFailure bool   `json:"allow_failure"`
}

func (j Job) Finished() bool {
	switch j.State {
	case StatePassed, StateFailed, StateErrored, StateCanceled:
		return true
	}
	return false
}

type jobsResponse struct {
	Jobs []Job `json:"jobs"`
}

// Client talks to the Travis CI v3 API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient expects client to already send the API version and any
// authorization header.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// BuildJobs lists every job of a build.
func (c *Client) BuildJobs(ctx context.Context, buildID string) ([]Job, error) {
	var resp jobsResponse
	if err := c.get(ctx, "/build/"+url.PathEscape(buildID)+"/jobs", &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) Job(ctx context.Context, id int64) (*Job, error) {
	var job Job
	if err := c.get(ctx, "/job/"+strconv.FormatInt(id, 10), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Bad response from Travis API for %s: %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("Failed to decode Travis API response for %s: %w", path, err)
	}
	return nil
}
