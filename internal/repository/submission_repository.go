package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/unclebandit/totallook-bridge/internal/config"
	appErrors "github.com/unclebandit/totallook-bridge/internal/errors"
	"github.com/unclebandit/totallook-bridge/internal/model"
)

// SubmissionRepositoryInterface defines the Jotform calls used by the service
type SubmissionRepositoryInterface interface {
	ListSubmissions(ctx context.Context, limit, offset int) (*model.SubmissionsPage, error)
	CreateSubmission(ctx context.Context, form url.Values) (json.RawMessage, error)
	UpdateSubmission(ctx context.Context, id string, form url.Values) (json.RawMessage, error)
	DeleteSubmission(ctx context.Context, id string) (json.RawMessage, error)
}

// SubmissionRepository talks to the Jotform REST API. All client data lives
// there; this type keeps nothing between calls.
type SubmissionRepository struct {
	BaseURL    string
	APIKey     string
	FormID     string
	HTTPClient *http.Client
}

func NewSubmissionRepository(cfg config.JotformConfig) *SubmissionRepository {
	return &SubmissionRepository{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:     cfg.APIKey,
		FormID:     cfg.FormID,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ListSubmissions fetches one page of the form's submissions
func (r *SubmissionRepository) ListSubmissions(ctx context.Context, limit, offset int) (*model.SubmissionsPage, error) {
	query := url.Values{}
	query.Set("apiKey", r.APIKey)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	endpoint := r.endpoint("form", r.FormID, "submissions") + "?" + query.Encode()
	body, err := r.do(ctx, "GET", http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var page model.SubmissionsPage
	if len(body) > 0 {
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, appErrors.NewUpstreamError("GET", 0, nil, fmt.Errorf("decode submissions: %w", err))
		}
	}
	return &page, nil
}

// CreateSubmission adds a new submission to the configured form
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, form url.Values) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("apiKey", r.APIKey)

	endpoint := r.endpoint("form", r.FormID, "submissions") + "?" + query.Encode()
	return r.do(ctx, "POST", http.MethodPost, endpoint, form)
}

// UpdateSubmission edits a submission. Jotform takes the edit as a POST with
// method=PUT in the query string.
func (r *SubmissionRepository) UpdateSubmission(ctx context.Context, id string, form url.Values) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("apiKey", r.APIKey)
	query.Set("method", "PUT")

	endpoint := r.endpoint("submission", id) + "?" + query.Encode()
	return r.do(ctx, "PUT", http.MethodPost, endpoint, form)
}

func (r *SubmissionRepository) DeleteSubmission(ctx context.Context, id string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("apiKey", r.APIKey)

	endpoint := r.endpoint("submission", id) + "?" + query.Encode()
	return r.do(ctx, "DELETE", http.MethodDelete, endpoint, nil)
}

func (r *SubmissionRepository) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return r.BaseURL + "/" + strings.Join(escaped, "/")
}

// do sends the request and returns the raw body. Any transport failure or
// non-2xx answer becomes an UpstreamError tagged with op.
func (r *SubmissionRepository) do(ctx context.Context, op, method, endpoint string, form url.Values) (json.RawMessage, error) {
	var payload io.Reader
	if form != nil {
		payload = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, appErrors.NewUpstreamError(op, 0, nil, err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamError(op, 0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.NewUpstreamError(op, resp.StatusCode, nil, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, appErrors.NewUpstreamError(op, resp.StatusCode, body, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return json.RawMessage(body), nil
}
