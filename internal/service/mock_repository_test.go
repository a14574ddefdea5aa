package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/unclebandit/totallook-bridge/internal/model"
)

// MockSubmissionRepo serves canned pages and records every call
type MockSubmissionRepo struct {
	mu sync.Mutex

	Pages   []int // sizes of consecutive list pages
	FailAt  int   // 1-based list call that fails, 0 = never
	Err     error
	Result  json.RawMessage
	Offsets []int
	Limits  []int
	Forms   []url.Values
	IDs     []string
	Calls   int
}

func (m *MockSubmissionRepo) ListSubmissions(ctx context.Context, limit, offset int) (*model.SubmissionsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.Offsets = append(m.Offsets, offset)
	m.Limits = append(m.Limits, limit)

	if m.FailAt != 0 && m.Calls == m.FailAt {
		return nil, m.Err
	}

	idx := len(m.Offsets) - 1
	size := 0
	if idx < len(m.Pages) {
		size = m.Pages[idx]
	}

	content := make([]json.RawMessage, size)
	for i := range content {
		content[i] = json.RawMessage(fmt.Sprintf(`{"id":"%d"}`, offset+i))
	}
	return &model.SubmissionsPage{Content: content}, nil
}

func (m *MockSubmissionRepo) CreateSubmission(ctx context.Context, form url.Values) (json.RawMessage, error) {
	return m.write("", form)
}

func (m *MockSubmissionRepo) UpdateSubmission(ctx context.Context, id string, form url.Values) (json.RawMessage, error) {
	return m.write(id, form)
}

func (m *MockSubmissionRepo) DeleteSubmission(ctx context.Context, id string) (json.RawMessage, error) {
	return m.write(id, nil)
}

func (m *MockSubmissionRepo) write(id string, form url.Values) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	m.IDs = append(m.IDs, id)
	m.Forms = append(m.Forms, form)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return json.RawMessage(`{"responseCode":200}`), nil
	}
	return m.Result, nil
}

// MockQueue keeps published payloads in order
type MockQueue struct {
	mu        sync.Mutex
	Published []any
	Topics    []string
	Err       error
}

func (q *MockQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Topics = append(q.Topics, topic)
	q.Published = append(q.Published, payload)
	return q.Err
}

func (q *MockQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}
