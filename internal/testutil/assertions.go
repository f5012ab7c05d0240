package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the uniform response wrapper the API writes. Data is
// kept raw so callers can decode it into the type they expect.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeEnvelope reads and decodes the response wrapper
func DecodeEnvelope(t *testing.T, body io.Reader) Envelope {
	t.Helper()

	raw, err := io.ReadAll(body)
	require.NoError(t, err, "failed to read response body")

	var env Envelope
	err = json.Unmarshal(raw, &env)
	require.NoError(t, err, "failed to unmarshal envelope: %s", string(raw))
	return env
}

// DecodeData decodes the envelope's data payload into v and verifies the
// response reported success
func DecodeData(t *testing.T, body io.Reader, v interface{}) {
	t.Helper()

	env := DecodeEnvelope(t, body)
	require.True(t, env.Success, "expected success envelope, got message %q", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, v), "failed to unmarshal data payload")
}

// AssertErrorEnvelope verifies an error response with expected status and message
func AssertErrorEnvelope(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	env := DecodeEnvelope(t, resp.Body)
	assert.False(t, env.Success, "expected failure envelope")
	assert.Equal(t, expectedStatus, env.StatusCode, "envelope status mismatch")
	if expectedMessage != "" {
		assert.Contains(t, env.Message, expectedMessage, "error message mismatch")
	}
}
