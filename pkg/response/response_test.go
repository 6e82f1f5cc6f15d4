package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wager-settlement/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if requestID != "" {
		c.Set("request_id", requestID)
	}
	return c, w
}

func TestSuccessEnvelopes(t *testing.T) {
	tests := []struct {
		name   string
		send   func(*gin.Context, interface{})
		status int
	}{
		{"ok", OK, http.StatusOK},
		{"created", Created, http.StatusCreated},
		{"accepted", Accepted, http.StatusAccepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("req-" + tt.name)
			tt.send(c, map[string]string{"wager_id": "w-1"})

			assert.Equal(t, tt.status, w.Code)
			var resp SuccessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "req-"+tt.name, resp.RequestID)
			assert.NotEmpty(t, resp.Timestamp)
			assert.Equal(t, map[string]interface{}{"wager_id": "w-1"}, resp.Data)
		})
	}
}

func TestError_MapsSettlementErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient funds", apperror.ErrInsufficientFunds(), http.StatusPaymentRequired, "WAGER_001"},
		{"session busy", apperror.ErrSessionBusy(), http.StatusConflict, "WAGER_003"},
		{"demo mode wrapped", fmt.Errorf("place: %w", apperror.ErrDemoMode()), http.StatusForbidden, "LEDGER_003"},
		{"ledger unavailable", apperror.ErrLedgerUnavailable(errors.New("dial")), http.StatusServiceUnavailable, "LEDGER_004"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "SYS_000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("req-err")
			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.ErrorCode)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, "req-err", resp.RequestID)
			assert.Nil(t, resp.Details)
		})
	}
}

func TestError_HidesInternalMessage(t *testing.T) {
	c, w := newContext("")
	Error(c, errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
}

func TestErrorWithDetails_CarriesWager(t *testing.T) {
	c, w := newContext("")
	ErrorWithDetails(c, apperror.ErrCreditUnconfirmed(errors.New("timeout")), map[string]string{
		"wager_id": "w-1",
		"status":   "NEEDS_RECONCILIATION",
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LEDGER_002", resp["error_code"])
	assert.NotEmpty(t, resp["request_id"], "a request id is generated when none was set")
	details, ok := resp["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "w-1", details["wager_id"])
	assert.Equal(t, "NEEDS_RECONCILIATION", details["status"])
}
