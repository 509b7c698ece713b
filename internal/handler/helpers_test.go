package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdestra28/kasirtta-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errEnvelope struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func respondErrResult(t *testing.T, err error) (int, errEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondErr(c, err)

	var body errEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondErr_KindStatusAndCode(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.Validation("price must be positive"), http.StatusBadRequest, "validation"},
		{"not found", apperr.NotFound("product not found"), http.StatusNotFound, "not_found"},
		{"conflict", apperr.Conflict("code already taken"), http.StatusConflict, "conflict"},
		{"invalid state", apperr.InvalidState("book already closed"), http.StatusUnprocessableEntity, "invalid_state"},
		{"insufficient", apperr.Insufficient("insufficient stock"), http.StatusUnprocessableEntity, "insufficient"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondErrResult(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestRespondErr_UnexpectedHidesInternals(t *testing.T) {
	status, body := respondErrResult(t, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "unexpected", body.Code)
	// The raw error text never reaches the client.
	assert.NotContains(t, body.Detail, assert.AnError.Error())
}
