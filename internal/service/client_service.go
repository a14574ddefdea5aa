package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/unclebandit/totallook-bridge/internal/config"
	appErrors "github.com/unclebandit/totallook-bridge/internal/errors"
	"github.com/unclebandit/totallook-bridge/internal/model"
	"github.com/unclebandit/totallook-bridge/internal/queue"
	"github.com/unclebandit/totallook-bridge/internal/repository"
)

// PageSize is the Jotform limit used when listing submissions
const PageSize = 1000

// Messages returned to callers
const (
	MsgConfigMissing = "Config mancante"
	MsgAPIKeyMissing = "API key mancante"
	MsgNameMissing   = "Nome mancante"
	MsgDataMissing   = "Dati mancanti"
	MsgIDMissing     = "ID mancante"
)

var validate = validator.New()

type createInput struct {
	Name string `validate:"required"`
}

type updateInput struct {
	ID   string `validate:"required"`
	Name string `validate:"required"`
}

type deleteInput struct {
	ID string `validate:"required"`
}

type ClientService struct {
	Jotform        config.JotformConfig
	SubmissionRepo repository.SubmissionRepositoryInterface
	Queue          queue.Queue
	EventsTopic    string
	Logger         *slog.Logger
	Now            func() time.Time
}

// ListClients returns every submission of the form, in upstream order.
// A failure on any page discards what was already fetched.
func (s *ClientService) ListClients(ctx context.Context) ([]json.RawMessage, error) {
	if missing := s.missingConfig(true); len(missing) > 0 {
		return nil, appErrors.NewConfigError(MsgConfigMissing, missing...)
	}

	if s.Jotform.ListMode == config.ListModeSingle {
		page, err := s.SubmissionRepo.ListSubmissions(ctx, PageSize, 0)
		if err != nil {
			return nil, err
		}
		return page.Submissions(), nil
	}

	all := []json.RawMessage{}
	offset := 0
	for {
		page, err := s.SubmissionRepo.ListSubmissions(ctx, PageSize, offset)
		if err != nil {
			return nil, err
		}

		content := page.Submissions()
		all = append(all, content...)

		// a short page is the last one
		if len(content) < PageSize {
			break
		}
		offset += PageSize
	}

	s.logger().Debug("listed clients", "count", len(all), "pages", offset/PageSize+1)
	return all, nil
}

// CreateClient adds a new submission. Empty phone or email are not sent.
func (s *ClientService) CreateClient(ctx context.Context, c model.Client) (json.RawMessage, error) {
	if missing := s.missingConfig(true); len(missing) > 0 {
		return nil, appErrors.NewConfigError(MsgConfigMissing, missing...)
	}
	if err := validate.Struct(createInput{Name: c.Name}); err != nil {
		return nil, validationError(MsgNameMissing, err)
	}

	result, err := s.SubmissionRepo.CreateSubmission(ctx, CreateSubmissionForm(c))
	if err != nil {
		return nil, err
	}

	s.publish(model.ClientCreated, submissionIDFrom(result))
	return result, nil
}

// UpdateClient edits submission c.ID. Phone and email are forwarded whenever
// present, even when empty.
func (s *ClientService) UpdateClient(ctx context.Context, c model.Client) (json.RawMessage, error) {
	if missing := s.missingConfig(false); len(missing) > 0 {
		return nil, appErrors.NewConfigError(MsgAPIKeyMissing, missing...)
	}
	c.ID = strings.TrimSpace(c.ID)
	if err := validate.Struct(updateInput{ID: c.ID, Name: c.Name}); err != nil {
		return nil, validationError(MsgDataMissing, err)
	}

	result, err := s.SubmissionRepo.UpdateSubmission(ctx, c.ID, UpdateSubmissionForm(c))
	if err != nil {
		return nil, err
	}

	s.publish(model.ClientUpdated, c.ID)
	return result, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id string) (json.RawMessage, error) {
	if missing := s.missingConfig(false); len(missing) > 0 {
		return nil, appErrors.NewConfigError(MsgAPIKeyMissing, missing...)
	}
	id = strings.TrimSpace(id)
	if err := validate.Struct(deleteInput{ID: id}); err != nil {
		return nil, validationError(MsgIDMissing, err)
	}

	result, err := s.SubmissionRepo.DeleteSubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(model.ClientDeleted, id)
	return result, nil
}

// missingConfig lists the unset Jotform settings; the form id only matters
// for routes that address the form rather than a single submission.
func (s *ClientService) missingConfig(needForm bool) []string {
	var missing []string
	if s.Jotform.APIKey == "" {
		missing = append(missing, "JOTFORM_API_KEY")
	}
	if needForm && s.Jotform.FormID == "" {
		missing = append(missing, "JOTFORM_FORM_ID")
	}
	return missing
}

func validationError(message string, err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return appErrors.NewValidationError(message, strings.ToLower(ve[0].Field()))
	}
	return appErrors.NewValidationError(message, "")
}

// publish emits a client event; failures are logged, never returned
func (s *ClientService) publish(eventType, clientID string) {
	if s.Queue == nil || s.EventsTopic == "" {
		return
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	ev := model.ClientEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ClientID:   clientID,
		OccurredAt: now().UTC(),
	}
	if err := s.Queue.Publish(s.EventsTopic, ev); err != nil {
		s.logger().Warn("failed to publish client event", "type", eventType, "client_id", clientID, "error", err)
	}
}

func (s *ClientService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// submissionIDFrom reads content.submissionID out of a create response
func submissionIDFrom(result json.RawMessage) string {
	var body struct {
		Content struct {
			SubmissionID json.RawMessage `json:"submissionID"`
		} `json:"content"`
	}
	if err := json.Unmarshal(result, &body); err != nil || len(body.Content.SubmissionID) == 0 {
		return ""
	}

	var id string
	if err := json.Unmarshal(body.Content.SubmissionID, &id); err == nil {
		return id
	}
	return string(body.Content.SubmissionID)
}
