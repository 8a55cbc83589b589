package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("portfolio x: %w", interfaces.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"invalid", fmt.Errorf("date: %w", interfaces.ErrInvalidInput), http.StatusBadRequest, CodeInvalidInput},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, common.NewSilentLogger(), tt.err)

			assert.Equal(t, tt.status, rr.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Error, "disk full")
			}
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/portfolios", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()

	var v map[string]any
	assert.False(t, DecodeJSON(rr, req, &v))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid JSON")
}
