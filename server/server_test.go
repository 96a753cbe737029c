package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/recordapi"
	"github.com/apper-canvas/taskflow/internal/store/memory"
)

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, recordapi.Envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env recordapi.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	h := New(memory.New(), Options{}).Router()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestTaskLifecycle(t *testing.T) {
	h := New(memory.New(), Options{}).Router()

	rec, env := do(t, h, http.MethodPost, "/api/v1/records/tasks",
		`{"records":[{"title":"Buy milk","category":"Shopping","priority":"High"},{"title":"  "}]}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d", rec.Code)
	}
	if env.Success || len(env.Results) != 2 {
		t.Fatalf("expected partial success with 2 results, got %+v", env)
	}
	if !env.Results[0].Success {
		t.Errorf("first record failed: %+v", env.Results[0])
	}
	second := env.Results[1]
	if second.Success || len(second.Errors) != 1 || second.Errors[0].FieldLabel != "title" {
		t.Errorf("expected title field error, got %+v", second)
	}

	var created model.Task
	if err := json.Unmarshal(env.Results[0].Data, &created); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	rec, env = do(t, h, http.MethodPatch, "/api/v1/records/tasks/"+created.ID, `{"completed":true}`, nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("patch = %d %+v", rec.Code, env)
	}
	var updated model.Task
	json.Unmarshal(env.Data, &updated)
	if !updated.Completed || updated.CompletedAt == nil {
		t.Errorf("expected completed task, got %+v", updated)
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/records/tasks", "", nil)
	var tasks []model.Task
	json.Unmarshal(env.Data, &tasks)
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/records/tasks/"+created.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec, env = do(t, h, http.MethodGet, "/api/v1/records/tasks/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound || env.Success {
		t.Errorf("expected 404 after delete, got %d %+v", rec.Code, env)
	}
}

func TestPatchValidation(t *testing.T) {
	h := New(memory.New(), Options{}).Router()

	_, env := do(t, h, http.MethodPost, "/api/v1/records/tasks", `{"records":[{"title":"x"}]}`, nil)
	var task model.Task
	json.Unmarshal(env.Results[0].Data, &task)

	rec, env := do(t, h, http.MethodPatch, "/api/v1/records/tasks/"+task.ID, `{"priority":"Urgent"}`, nil)
	if rec.Code != http.StatusBadRequest || len(env.Errors) != 1 || env.Errors[0].FieldLabel != "priority" {
		t.Errorf("expected priority validation error, got %d %+v", rec.Code, env)
	}

	rec, _ = do(t, h, http.MethodPatch, "/api/v1/records/tasks/"+task.ID, `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", rec.Code)
	}

	rec, _ = do(t, h, http.MethodPost, "/api/v1/records/tasks", `{"records":[]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty create, got %d", rec.Code)
	}
}

func TestCategoryPatchValidation(t *testing.T) {
	h := New(memory.New(), Options{}).Router()

	_, env := do(t, h, http.MethodPost, "/api/v1/records/categories", `{"records":[{"name":"Errands"},{"name":"Chores"}]}`, nil)
	var errands model.Category
	json.Unmarshal(env.Results[0].Data, &errands)

	for _, body := range []string{`{"name":""}`, `{"name":"Chores"}`} {
		rec, env := do(t, h, http.MethodPatch, "/api/v1/records/categories/"+errands.ID, body, nil)
		if rec.Code != http.StatusBadRequest || len(env.Errors) != 1 || env.Errors[0].FieldLabel != "name" {
			t.Errorf("%s: expected name validation error, got %d %+v", body, rec.Code, env)
		}
	}

	rec, _ := do(t, h, http.MethodPatch, "/api/v1/records/categories/"+errands.ID, `{not json`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", rec.Code)
	}

	rec, env = do(t, h, http.MethodPatch, "/api/v1/records/categories/"+errands.ID, `{"name":"Groceries"}`, nil)
	var renamed model.Category
	json.Unmarshal(env.Data, &renamed)
	if rec.Code != http.StatusOK || renamed.Name != "Groceries" {
		t.Errorf("rename = %d %+v", rec.Code, renamed)
	}
}

func TestAPIKey(t *testing.T) {
	hash, err := HashAPIKey("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h := New(memory.New(), Options{APIKeyHash: hash, ProjectID: "p1"}).Router()

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"missing key", map[string]string{recordapi.HeaderProjectID: "p1"}, http.StatusUnauthorized},
		{"wrong key", map[string]string{recordapi.HeaderProjectID: "p1", recordapi.HeaderAPIKey: "nope"}, http.StatusUnauthorized},
		{"wrong project", map[string]string{recordapi.HeaderProjectID: "p2", recordapi.HeaderAPIKey: "secret"}, http.StatusUnauthorized},
		{"valid", map[string]string{recordapi.HeaderProjectID: "p1", recordapi.HeaderAPIKey: "secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, http.MethodGet, "/api/v1/records/categories", "", tt.headers)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health must stay public, got %d", rec.Code)
	}
}
