package appErrors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/unclebandit/totallook-bridge/internal/errors"
)

func TestConfigErrorWrapsSentinel(t *testing.T) {
	err := appErrors.NewConfigError("Config mancante", "JOTFORM_API_KEY", "JOTFORM_FORM_ID")

	assert.ErrorIs(t, err, appErrors.ErrConfigMissing)
	assert.Equal(t, "Config mancante: [JOTFORM_API_KEY JOTFORM_FORM_ID]", err.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "Nome mancante (name)", appErrors.NewValidationError("Nome mancante", "name").Error())
	assert.Equal(t, "ID mancante", appErrors.NewValidationError("ID mancante", "").Error())
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("connection refused")

	err := appErrors.NewUpstreamError("POST", 0, nil, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "jotform POST: connection refused", err.Error())

	err = appErrors.NewUpstreamError("DELETE", 404, []byte(`{"message":"not found"}`), errors.New("unexpected status 404"))
	assert.Equal(t, `jotform DELETE: status 404: {"message":"not found"}`, err.Error())
}
