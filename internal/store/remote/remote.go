// Package remote is the api backend: a store.Store that talks to the
// record storage API over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/recordapi"
	"github.com/apper-canvas/taskflow/internal/store"
)

// Store is the remote client
type Store struct {
	baseURL    string
	projectID  string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Store
type Option func(*Store)

// WithCredentials sets the project id and public key headers
func WithCredentials(projectID, apiKey string) Option {
	return func(s *Store) {
		s.projectID = projectID
		s.apiKey = apiKey
	}
}

// WithHTTPClient replaces the default client (30s timeout)
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.httpClient = c }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) (*Store, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", baseURL)
	}
	s := &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases idle connections
func (s *Store) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func recordPath(table string, id ...string) string {
	p := recordapi.BasePath + "/" + table
	if len(id) > 0 {
		p += "/" + url.PathEscape(id[0])
	}
	return p
}

// do sends one request and returns the decoded envelope of a successful
// response. Failures come back as store errors.
func (s *Store) do(ctx context.Context, op, method, path string, body any) (*recordapi.Envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, store.Wrap(op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, store.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.projectID != "" {
		req.Header.Set(recordapi.HeaderProjectID, s.projectID)
	}
	if s.apiKey != "" {
		req.Header.Set(recordapi.HeaderAPIKey, s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, store.Wrap(op, fmt.Errorf("failed to connect: %w", err))
	}
	defer resp.Body.Close()

	var env recordapi.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, store.Wrap(op, &recordapi.Failure{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)})
		}
		return nil, store.Wrap(op, fmt.Errorf("invalid response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest || (!env.Success && len(env.Results) == 0) {
		return nil, failure(op, resp.StatusCode, env.Message, env.Errors)
	}
	return &env, nil
}

// notFoundError carries the server's message and matches store.ErrNotFound
type notFoundError string

func (e notFoundError) Error() string { return string(e) }

func (e notFoundError) Unwrap() error { return store.ErrNotFound }

func failure(op string, status int, message string, errs []recordapi.FieldError) error {
	switch {
	case status == http.StatusNotFound:
		return store.Wrap(op, notFoundError(message))
	case len(errs) > 0:
		return store.Wrap(op, &model.ValidationError{Field: errs[0].FieldLabel, Message: errs[0].Message})
	default:
		return store.Wrap(op, &recordapi.Failure{Status: status, Message: message, Errors: errs})
	}
}

func get[T any](ctx context.Context, s *Store, op, path string) (T, error) {
	var out T
	env, err := s.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, store.Wrap(op, fmt.Errorf("invalid response data: %w", err))
	}
	return out, nil
}

func patch[T any](ctx context.Context, s *Store, op, path string, body any) (T, error) {
	var out T
	env, err := s.do(ctx, op, http.MethodPatch, path, body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, store.Wrap(op, fmt.Errorf("invalid response data: %w", err))
	}
	return out, nil
}

// create posts a single record and unpacks its result
func create[T any](ctx context.Context, s *Store, op, path string, record any) (T, error) {
	var out T
	raw, err := json.Marshal(record)
	if err != nil {
		return out, store.Wrap(op, err)
	}
	env, err := s.do(ctx, op, http.MethodPost, path, recordapi.CreateRequest{Records: []json.RawMessage{raw}})
	if err != nil {
		return out, err
	}
	if len(env.Results) != 1 {
		return out, store.Wrap(op, fmt.Errorf("expected 1 result, got %d", len(env.Results)))
	}
	res := env.Results[0]
	if !res.Success {
		return out, failure(op, http.StatusBadRequest, res.Message, res.Errors)
	}
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return out, store.Wrap(op, fmt.Errorf("invalid response data: %w", err))
	}
	return out, nil
}

func (s *Store) remove(ctx context.Context, op, path string) (bool, error) {
	if _, err := s.do(ctx, op, http.MethodDelete, path, nil); err != nil {
		return false, err
	}
	return true, nil
}

// ListTasks implements store.TaskStore.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := get[[]model.Task](ctx, s, "list tasks", recordPath(recordapi.TableTasks))
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// GetTask implements store.TaskStore.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	return get[model.Task](ctx, s, "get task", recordPath(recordapi.TableTasks, id))
}

// CreateTask implements store.TaskStore.
func (s *Store) CreateTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		return model.Task{}, store.Wrap("create task", err)
	}
	return create[model.Task](ctx, s, "create task", recordPath(recordapi.TableTasks), draft)
}

// UpdateTask implements store.TaskStore.
func (s *Store) UpdateTask(ctx context.Context, id string, p model.TaskPatch) (model.Task, error) {
	if err := p.Validate(); err != nil {
		return model.Task{}, store.Wrap("update task", err)
	}
	return patch[model.Task](ctx, s, "update task", recordPath(recordapi.TableTasks, id), p)
}

// DeleteTask implements store.TaskStore.
func (s *Store) DeleteTask(ctx context.Context, id string) (bool, error) {
	return s.remove(ctx, "delete task", recordPath(recordapi.TableTasks, id))
}

// ListCategories implements store.CategoryStore.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := get[[]model.Category](ctx, s, "list categories", recordPath(recordapi.TableCategories))
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// GetCategory implements store.CategoryStore.
func (s *Store) GetCategory(ctx context.Context, id string) (model.Category, error) {
	return get[model.Category](ctx, s, "get category", recordPath(recordapi.TableCategories, id))
}

// CreateCategory implements store.CategoryStore.
func (s *Store) CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	if err := draft.Validate(); err != nil {
		return model.Category{}, store.Wrap("create category", err)
	}
	return create[model.Category](ctx, s, "create category", recordPath(recordapi.TableCategories), draft)
}

// UpdateCategory implements store.CategoryStore.
func (s *Store) UpdateCategory(ctx context.Context, id string, p model.CategoryPatch) (model.Category, error) {
	if err := p.Validate(); err != nil {
		return model.Category{}, store.Wrap("update category", err)
	}
	return patch[model.Category](ctx, s, "update category", recordPath(recordapi.TableCategories, id), p)
}

// DeleteCategory implements store.CategoryStore.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.remove(ctx, "delete category", recordPath(recordapi.TableCategories, id))
}
