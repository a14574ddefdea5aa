// internal/model/submission.go
package model

import "encoding/json"

// SubmissionsPage is the body of GET /form/{id}/submissions. Content is left
// as raw JSON so submissions are returned in their original shape.
type SubmissionsPage struct {
	ResponseCode int               `json:"responseCode"`
	Message      string            `json:"message"`
	Content      []json.RawMessage `json:"content,omitempty"`
}

// Submissions returns the page content, never nil.
func (p *SubmissionsPage) Submissions() []json.RawMessage {
	if p == nil || p.Content == nil {
	    return []json.RawMessage{}
	}
	return p.Content
}
