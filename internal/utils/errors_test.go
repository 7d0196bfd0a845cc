package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleAppErrorWritesCodeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, ConflictError("Duplicate transaction reference", ErrDuplicateKey))

	require.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrCodeConflict, body.Code)
	require.Equal(t, "Duplicate transaction reference", body.Message)
}

func TestHandleAppErrorFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrCodeInternal, body.Code)
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	err := ConflictError("dup", ErrDuplicateKey)
	require.True(t, errors.Is(err, ErrDuplicateKey))
	require.Equal(t, ErrCodeConflict, ErrorCode(err))
	require.Equal(t, "", ErrorCode(errors.New("plain")))
}
