package cerr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/pkg/storage"
)

func TestErrorStackOnlyForErrorLevel(t *testing.T) {
	assert.Empty(t, NewError(NotFound, "missing", nil).Stack)
	assert.NotEmpty(t, NewError(Internal, "boom", nil).Stack)
}

func TestIsCodeAndCodeOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(NotFound, "task not found", nil))
	assert.True(t, IsCode(err, NotFound))
	assert.Equal(t, NotFound, CodeOf(err))
	assert.Equal(t, Unknown, CodeOf(errors.New("plain")))
	assert.Equal(t, OK, CodeOf(nil))
}

func TestWrapStorageReadError(t *testing.T) {
	err := WrapStorageReadError("task", fmt.Errorf("tasks/1.yaml: %w", storage.ErrNotFound))
	assert.True(t, IsCode(err, NotFound))
	err = WrapStorageReadError("task", errors.New("disk on fire"))
	assert.True(t, IsCode(err, Internal))
	assert.ErrorContains(t, err, "failed to read task")
}

func TestWrapStorageErrorByOperation(t *testing.T) {
	missing := fmt.Errorf("events/2025-03-10.jsonl: %w", storage.ErrNotFound)

	err := WrapStorageDeleteError("push subscription", missing)
	assert.True(t, IsCode(err, NotFound))
	assert.Equal(t, "push subscription not found", err.(*Error).Msg)

	err = WrapStorageWriteError("event journal", missing)
	assert.True(t, IsCode(err, Internal))
	assert.Equal(t, "console data store error", err.(*Error).Msg)

	err = WrapStorageReadError("maintenance schedules", fmt.Errorf("s3: %w", context.Canceled))
	assert.True(t, IsCode(err, Canceled))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCodeFromHTTPStatus(t *testing.T) {
	assert.Equal(t, NotFound, CodeFromHTTPStatus(http.StatusNotFound))
	assert.Equal(t, Unavailable, CodeFromHTTPStatus(http.StatusBadGateway))
	assert.Equal(t, OK, CodeFromHTTPStatus(http.StatusNoContent))
}

func TestChiMiddlewareWritesJSON(t *testing.T) {
	mw := NewConvertErrorChiMiddleware()

	ok := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetJSONResponse(r.Context(), map[string]int{"n": 1})
	}))
	rec := httptest.NewRecorder()
	ok.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())

	bad := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetNewJSONError(r.Context(), NotFound, "task not found", nil)
	}))
	rec = httptest.NewRecorder()
	bad.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body httpError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "task not found", body.Message)
}

func TestChiMiddlewareResponseStatus(t *testing.T) {
	h := NewConvertErrorChiMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetJSONResponseStatus(r.Context(), http.StatusCreated, map[string]string{"id": "01J"})
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"01J"}`, rec.Body.String())

	written := NewConvertErrorChiMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF"))
		MarkWritten(r.Context())
	}))
	rec = httptest.NewRecorder()
	written.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "%PDF", rec.Body.String())
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED"`
}

func TestDecodeJSONBody(t *testing.T) {
	var req statusRequest
	r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"COMPLETED"}`))
	require.NoError(t, DecodeJSONBody(r, &req))
	assert.Equal(t, "COMPLETED", req.Status)

	r = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"status":"DONE"}`))
	err := DecodeJSONBody(r, &req)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, InvalidArgument, e.Code)
	assert.Len(t, e.Details, 1)

	r = httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{`))
	assert.True(t, IsCode(DecodeJSONBody(r, &req), InvalidArgument))
}
