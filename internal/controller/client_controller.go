package controller

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/totallook-bridge/internal/errors"
	"github.com/unclebandit/totallook-bridge/internal/model"
	"github.com/unclebandit/totallook-bridge/internal/service"
)

const msgInvalidBody = "Body non valido"

type ClientController struct {
	ClientService *service.ClientService
	Logger        *slog.Logger
}

// ListClients returns every submission of the form
func (c *ClientController) ListClients(w http.ResponseWriter, r *http.Request) {
	submissions, err := c.ClientService.ListClients(r.Context())
	if err != nil {
		c.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"submissions": submissions,
	})
}

func (c *ClientController) CreateClient(w http.ResponseWriter, r *http.Request) {
	client, ok := c.decodeClient(w, r)
	if !ok {
		return
	}

	result, err := c.ClientService.CreateClient(r.Context(), client)
	if err != nil {
		c.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "result": rawOrText(result)})
}

func (c *ClientController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	client, ok := c.decodeClient(w, r)
	if !ok {
		return
	}
	client.ID = chi.URLParam(r, "id")

	result, err := c.ClientService.UpdateClient(r.Context(), client)
	if err != nil {
		c.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "result": rawOrText(result)})
}

func (c *ClientController) DeleteClient(w http.ResponseWriter, r *http.Request) {
	result, err := c.ClientService.DeleteClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "result": rawOrText(result)})
}

// decodeClient reads the JSON body; an empty body counts as {}
func (c *ClientController) decodeClient(w http.ResponseWriter, r *http.Request) (model.Client, bool) {
	var client model.Client
	if r.Body == nil {
		return client, true
	}

	if err := json.NewDecoder(r.Body).Decode(&client); err != nil && !errors.Is(err, io.EOF) {
		c.logger().Debug("invalid request body", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusBadRequest, msgInvalidBody, nil)
		return model.Client{}, false
	}
	return client, true
}

func (c *ClientController) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		cfgErr *appErrors.ConfigError
		vErr   *appErrors.ValidationError
		upErr  *appErrors.UpstreamError
	)

	switch {
	case errors.As(err, &cfgErr):
		c.logger().Error("configuration missing", "path", r.URL.Path, "missing", cfgErr.Missing)
		respondError(w, http.StatusInternalServerError, cfgErr.Message, nil)

	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, vErr.Message, nil)

	case errors.As(err, &upErr):
		details := rawOrText(upErr.Body)
		if details == nil && upErr.Err != nil {
			details = upErr.Err.Error()
		}
		c.logger().Error("jotform call failed",
			"op", upErr.Op,
			"status", upErr.StatusCode,
			"upstream_body", string(upErr.Body),
			"error", upErr.Err)
		respondError(w, http.StatusInternalServerError, "Errore Jotform "+upErr.Op, details)

	default:
		c.logger().Error("unexpected error", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "Errore interno", nil)
	}
}

func (c *ClientController) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
