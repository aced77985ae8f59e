package hrest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"custody-service/internal/xerrors"
	"custody-service/pkg/response"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	h := &CustodyRestHandler{logger: zap.NewNop()}

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"vault lookup", xerrors.ErrVaultNotFound, http.StatusNotFound, xerrors.ErrVaultNotFound.Error()},
		{"uncovered debit", xerrors.ErrInsufficientBalance, http.StatusConflict, xerrors.ErrInsufficientBalance.Error()},
		{"market down", xerrors.ErrQuoteUnavailable, http.StatusBadGateway, xerrors.ErrQuoteUnavailable.Error()},
		{"validation", xerrors.ErrInvalidAmount, http.StatusBadRequest, xerrors.ErrInvalidAmount.Error()},
		{"unclassified", errors.New("repo exploded"), http.StatusInternalServerError, xerrors.ErrInternalServer.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var env response.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tc.wantMsg, env.Message)
		})
	}
}
