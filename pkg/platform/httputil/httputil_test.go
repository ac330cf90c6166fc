package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "consentd/pkg/domain-errors"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unknown approved site",
			err:         dErrors.New(dErrors.CodeNotFound, "approved site not found"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "not_found",
			wantMessage: "approved site not found",
		},
		{
			name:        "empty whitelist scopes",
			err:         dErrors.New(dErrors.CodeValidation, "allowed_scopes cannot be empty"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "validation_error",
			wantMessage: "allowed_scopes cannot be empty",
		},
		{
			name:        "store unavailable",
			err:         dErrors.Wrap(errors.New("redis down"), dErrors.CodeUnavailable, "failed to load whitelist entry"),
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "unavailable",
			wantMessage: "failed to load whitelist entry",
		},
		{
			name:        "store timeout",
			err:         dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeTimeout, "failed to list approved sites"),
			wantStatus:  http.StatusGatewayTimeout,
			wantCode:    "timeout",
			wantMessage: "failed to list approved sites",
		},
		{
			name:        "wrapped domain error keeps its code",
			err:         fmt.Errorf("handler: %w", dErrors.New(dErrors.CodeNotFound, "client not found")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "not_found",
			wantMessage: "client not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body["error"])
			assert.Equal(t, tt.wantMessage, body["error_description"])
		})
	}
}

func TestWriteError_InternalHidesDetails(t *testing.T) {
	for name, err := range map[string]error{
		"coded internal": dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to create approved site"),
		"plain error":    errors.New("pq: connection refused"),
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, err)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, "internal_error", body["error"])
			assert.NotContains(t, body, "error_description")
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]bool{"approved": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"approved":true}`, w.Body.String())
}
