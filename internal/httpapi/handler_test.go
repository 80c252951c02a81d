package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

func newTestHandler(t *testing.T, prefix string) http.Handler {
	t.Helper()
	return New(directory.NewInMemoryDirectory(directory.DefaultUsers()), Options{
		Prefix:         prefix,
		Environment:    "Testing",
		AllowedOrigins: []string{"http://localhost:4200"},
		Now:            func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) },
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListUsers(t *testing.T) {
	h := newTestHandler(t, "")
	rec := do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	users := decode[[]directory.User](t, rec)
	assert.Equal(t, directory.DefaultUsers(), users)
}

func TestGetUser(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodGet, "/users/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"Jane Smith","email":"jane.smith@example.com"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User with ID 999 not found."}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid user ID."}`, rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodPost, "/users", `{"id":99,"name":"X","email":"x@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/users/6", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":6,"name":"X","email":"x@x.com"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/6", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X", decode[directory.User](t, rec).Name)

	users := decode[[]directory.User](t, do(t, h, http.MethodGet, "/users", ""))
	assert.Len(t, users, 6)
}

func TestCreateUserRejectsMissingData(t *testing.T) {
	h := newTestHandler(t, "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", `{"error":"User data is required."}`},
		{"null body", "null", `{"error":"User data is required."}`},
		{"missing email", `{"name":"X"}`, `{"error":"Name and email are required."}`},
		{"malformed", `{"name":`, `{"error":"Request body must be a JSON user object."}`},
		{"trailing data", `{"name":"X","email":"x"} {}`, `{"error":"Request body must be a JSON user object."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/users", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	users := decode[[]directory.User](t, do(t, h, http.MethodGet, "/users", ""))
	assert.Len(t, users, 5)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	h := newTestHandler(t, "")
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `","email":"a@a.com"}`

	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/users"},
		{http.MethodPut, "/users/1"},
	} {
		rec := do(t, h, req.method, req.path, body)
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, req.method)
		assert.JSONEq(t, `{"error":"Request body is too large."}`, rec.Body.String())
	}

	got := decode[directory.User](t, do(t, h, http.MethodGet, "/users/1", ""))
	assert.Equal(t, "John Doe", got.Name)
	users := decode[[]directory.User](t, do(t, h, http.MethodGet, "/users", ""))
	assert.Len(t, users, 5)
}

func TestUpdateUser(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodPut, "/users/1", `{"id":50,"name":"Johnny","email":"johnny@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Johnny","email":"johnny@example.com"}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/users/999", `{"name":"N","email":"e"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User with ID 999 not found."}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/users/1", "null")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"User data is required."}`, rec.Body.String())
}

func TestDeleteUser(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodDelete, "/users/3", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/users/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User with ID 3 not found."}`, rec.Body.String())
}

// TestDeleteThenCreateReusesMaxID walks the max-plus-one scenario over
// HTTP.
func TestDeleteThenCreateReusesMaxID(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodPost, "/users", `{"name":"X","email":"x@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int32(6), decode[directory.User](t, rec).ID)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/users/6", "").Code)

	rec = do(t, h, http.MethodPost, "/users", `{"name":"Y","email":"y@y.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, directory.User{ID: 6, Name: "Y", Email: "y@y.com"}, decode[directory.User](t, rec))
}

func TestPrefix(t *testing.T) {
	h := newTestHandler(t, "/api")

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/users", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/users", "").Code)

	rec := do(t, h, http.MethodPost, "/api/users", `{"name":"X","email":"x@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/6", rec.Header().Get("Location"))
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, "")
	rec := do(t, h, http.MethodPatch, "/users/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusEndpoints(t *testing.T) {
	h := newTestHandler(t, "")

	rec := do(t, h, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status": "OK",
		"message": "User directory API is running successfully!",
		"timestamp": "2024-05-06 07:08:09 UTC",
		"version": "1.0.0",
		"environment": "Testing"
	}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/status/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"Healthy","timestamp":"2024-05-06T07:08:09Z"}`, rec.Body.String())
}

// failingDirectory returns err from every operation.
type failingDirectory struct {
	err error
}

func (f failingDirectory) List(context.Context) ([]directory.User, error) { return nil, f.err }
func (f failingDirectory) Get(context.Context, int32) (directory.User, error) {
	return directory.User{}, f.err
}
func (f failingDirectory) Create(context.Context, *directory.User) (directory.User, error) {
	return directory.User{}, f.err
}
func (f failingDirectory) Update(context.Context, int32, directory.User) (directory.User, error) {
	return directory.User{}, f.err
}
func (f failingDirectory) Delete(context.Context, int32) error { return f.err }

func TestBackendFailureIsInternalError(t *testing.T) {
	h := New(failingDirectory{err: errors.New("redis get failed: connection refused")}, Options{})

	rec := do(t, h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
