// Package upstream talks to the rental back office REST API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kazz187/techconsole/internal/task"
	"github.com/kazz187/techconsole/pkg/cerr"
)

var _ task.Repository = (*Client)(nil)

// Client reads and updates tasks through the back office. It implements
// task.Repository.
type Client struct {
	baseURL    string
	token      string
	loc        *time.Location
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		loc:     loc,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) List(ctx context.Context, status task.Status) ([]*task.Task, error) {
	path := "/tasks"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	var raw []wireTask
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	tasks := make([]*task.Task, 0, len(raw))
	for _, w := range raw {
		tasks = append(tasks, w.toTask(c.loc))
	}
	return tasks, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*task.Task, error) {
	return c.oneTask(ctx, http.MethodGet, "/tasks/"+strconv.FormatInt(id, 10), nil)
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status task.Status) (*task.Task, error) {
	body := map[string]string{"status": string(status)}
	return c.oneTask(ctx, http.MethodPatch, "/tasks/"+strconv.FormatInt(id, 10)+"/status", body)
}

// oneTask expects a single task in the response. A null payload or a task
// without an id means the back office has no such task.
func (c *Client) oneTask(ctx context.Context, method, path string, body any) (*task.Task, error) {
	var w *wireTask
	if err := c.do(ctx, method, path, body, &w); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("%s not found", strings.TrimPrefix(path, "/")), nil)
	}
	t := w.toTask(c.loc)
	if t.ID == 0 {
		return nil, cerr.NewError(cerr.NotFound, fmt.Sprintf("%s not found", strings.TrimPrefix(path, "/")), nil)
	}
	return t, nil
}

// do sends a JSON request and decodes the response, unwrapping a {"data": ...}
// envelope when the back office sends one.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal request: %w", err))
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return cerr.NewError(cerr.Canceled, "request cancelled", err)
		}
		return cerr.NewError(cerr.Unavailable, "back office unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return cerr.NewError(cerr.Unavailable, "failed to read back office response", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return cerr.NewError(cerr.NotFound, fmt.Sprintf("%s not found", strings.TrimPrefix(path, "/")), nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return cerr.NewError(cerr.Unavailable, fmt.Sprintf("back office returned %d", resp.StatusCode), fmt.Errorf("%s %s: %s", method, path, bytes.TrimSpace(data)))
	}
	if result == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if len(data) > 0 && data[0] == '{' && json.Unmarshal(data, &envelope) == nil && len(envelope.Data) > 0 {
		data = envelope.Data
	}
	if err := json.Unmarshal(data, result); err != nil {
		return cerr.NewError(cerr.Unavailable, "unexpected back office response", err)
	}
	return nil
}
