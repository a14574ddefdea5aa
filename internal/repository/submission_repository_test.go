package repository_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/totallook-bridge/internal/config"
	appErrors "github.com/unclebandit/totallook-bridge/internal/errors"
	"github.com/unclebandit/totallook-bridge/internal/repository"
)

type recordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Form        url.Values
}

func newJotform(t *testing.T, status int, body string) (*repository.SubmissionRepository, *[]recordedRequest) {
	t.Helper()

	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(raw))
		seen = append(seen, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			ContentType: r.Header.Get("Content-Type"),
			Form:        form,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	repo := repository.NewSubmissionRepository(config.JotformConfig{
		BaseURL: srv.URL + "/",
		APIKey:  "secret",
		FormID:  "24091",
	})
	return repo, &seen
}

func TestListSubmissions(t *testing.T) {
	repo, seen := newJotform(t, http.StatusOK, `{"responseCode":200,"content":[{"id":"1"},{"id":"2"}]}`)

	page, err := repo.ListSubmissions(context.Background(), 1000, 2000)
	require.NoError(t, err)
	require.Len(t, page.Submissions(), 2)
	assert.JSONEq(t, `{"id":"1"}`, string(page.Submissions()[0]))

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/form/24091/submissions", req.Path)
	assert.Equal(t, "secret", req.Query.Get("apiKey"))
	assert.Equal(t, "1000", req.Query.Get("limit"))
	assert.Equal(t, "2000", req.Query.Get("offset"))
}

func TestListSubmissionsWithoutContent(t *testing.T) {
	repo, _ := newJotform(t, http.StatusOK, `{"responseCode":200}`)

	page, err := repo.ListSubmissions(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Submissions())
	assert.Empty(t, page.Submissions())
}

func TestCreateSubmission(t *testing.T) {
	repo, seen := newJotform(t, http.StatusOK, `{"responseCode":200,"content":{"submissionID":"99"}}`)

	form := url.Values{}
	form.Set("submission[5][first]", "Maria")
	form.Set("submission[5][last]", "Rossi")

	result, err := repo.CreateSubmission(context.Background(), form)
	require.NoError(t, err)
	assert.JSONEq(t, `{"responseCode":200,"content":{"submissionID":"99"}}`, string(result))

	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/form/24091/submissions", req.Path)
	assert.Equal(t, "secret", req.Query.Get("apiKey"))
	assert.Equal(t, "application/x-www-form-urlencoded", req.ContentType)
	assert.Equal(t, "Maria", req.Form.Get("submission[5][first]"))
	assert.Equal(t, "Rossi", req.Form.Get("submission[5][last]"))
}

func TestUpdateSubmissionUsesMethodOverride(t *testing.T) {
	repo, seen := newJotform(t, http.StatusOK, `{"responseCode":200}`)

	form := url.Values{}
	form.Set("submission[6]", "")

	_, err := repo.UpdateSubmission(context.Background(), "5531", form)
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/submission/5531", req.Path)
	assert.Equal(t, "PUT", req.Query.Get("method"))
	assert.Equal(t, "secret", req.Query.Get("apiKey"))
	assert.Contains(t, req.Form, "submission[6]")
}

func TestDeleteSubmission(t *testing.T) {
	repo, seen := newJotform(t, http.StatusOK, `{"responseCode":200,"content":"Submission #5531 deleted successfully."}`)

	_, err := repo.DeleteSubmission(context.Background(), "5531")
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/submission/5531", req.Path)
	assert.Equal(t, "secret", req.Query.Get("apiKey"))
}

func TestNon2xxIsUpstreamError(t *testing.T) {
	repo, _ := newJotform(t, http.StatusUnauthorized, `{"responseCode":401,"message":"You're not authorized to use (/submission-id) "}`)

	_, err := repo.DeleteSubmission(context.Background(), "1")
	require.Error(t, err)

	var upErr *appErrors.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "DELETE", upErr.Op)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Contains(t, string(upErr.Body), "not authorized")
}

func TestTransportFailureIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	repo := repository.NewSubmissionRepository(config.JotformConfig{BaseURL: srv.URL, APIKey: "k", FormID: "f"})

	_, err := repo.ListSubmissions(context.Background(), 1000, 0)
	require.Error(t, err)

	var upErr *appErrors.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "GET", upErr.Op)
	assert.Zero(t, upErr.StatusCode)
}
