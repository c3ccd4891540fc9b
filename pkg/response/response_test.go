package response_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrPageOutOfRange, http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrTokenMalformed, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrAlreadyDeleted, http.StatusBadRequest},
		{apperrors.ErrBusinessRule, http.StatusBadRequest},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, response.StatusOf(tc.err), tc.err.Error())
	}
}

func TestStatusOfWrappedAppError(t *testing.T) {
	err := apperrors.NewAppError(apperrors.ErrDuplicate, "phone number in use", errors.New("pg: 23505"))
	assert.Equal(t, http.StatusConflict, response.StatusOf(err))
}

func TestOKEnvelopeShape(t *testing.T) {
	c, rec := testContext(t)
	response.OK(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OK", body["status_text"])
	assert.Equal(t, "OK", body["message"])
	assert.NotZero(t, body["timestamp"])
	assert.NotNil(t, body["data"])
	assert.Contains(t, body, "metadata")
	assert.NotContains(t, body, "errors")
}

func TestErrorUsesAppErrorMessage(t *testing.T) {
	c, rec := testContext(t)
	response.Error(c, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "user not found", body["message"])
}

func TestErrorHidesInternalDetail(t *testing.T) {
	c, rec := testContext(t)
	response.Error(c, errors.New("pq: connection refused at 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.NotContains(t, body, "errors")
}

func TestErrorLogsServerFault(t *testing.T) {
	c, rec := testContext(t)
	var logged bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logged, nil))
	body := []byte(`{"phone_number":"0901234567","password":"hunter2"}`)
	response.SetFaultContext(c, logger, body)

	response.Error(c, fmt.Errorf("find user by phone: %w", errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	out := logged.String()
	assert.Contains(t, out, "server fault")
	assert.Contains(t, out, "find user by phone: connection refused")
	assert.Contains(t, out, "pkg/response.Error")
	assert.Contains(t, out, `0901234567`)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "hunter2")
}

func TestErrorDoesNotLogClientFaults(t *testing.T) {
	c, rec := testContext(t)
	var logged bytes.Buffer
	response.SetFaultContext(c, slog.New(slog.NewJSONHandler(&logged, nil)), nil)

	response.Error(c, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, logged.Len())
}

func TestRedactSecrets(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			`{"phone_number":"0901234567","password":"hunter2"}`,
			`{"phone_number":"0901234567","password":"[REDACTED]"}`,
		},
		{
			`{"access_token":"eyJ.abc","refresh_token":"eyJ.def"}`,
			`{"access_token":"[REDACTED]","refresh_token":"[REDACTED]"}`,
		},
		{
			`{"name":"Pharmacy One","status":"active"}`,
			`{"name":"Pharmacy One","status":"active"}`,
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, response.RedactSecrets(tc.in))
	}
}

func TestErrorDebugModeCarriesDetail(t *testing.T) {
	c, rec := testContext(t)
	c.Set("response.debug", true)
	response.Error(c, errors.New("pq: connection refused"))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal Server Error", body["message"])
	assert.Equal(t, "pq: connection refused", body["errors"])
}

func TestValidationError(t *testing.T) {
	c, rec := testContext(t)
	c.Set("response.debug", true)
	response.ValidationError(c, map[string]string{"phone_number": "field PhoneNumber failed validation on required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "field PhoneNumber failed validation on required", body["message"])
	assert.Contains(t, body, "errors")
}

func TestDeletedEnvelopeMatchesHeader(t *testing.T) {
	c, rec := testContext(t)
	response.Deleted(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "deleted", body["message"])
}
