package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusServiceUnavailable, GeneralError(errors.New("db down"))))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, Response{Status: StatusError, Error: "db down"}, body)
}

func TestOKOmitsError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusOK, OK()))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestValidationMessages(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Phone string `validate:"max=3"`
		Mail  string `validate:"email"`
		Code  string `validate:"len=2"`
	}

	err := validator.New().Struct(form{Phone: "12345", Mail: "nope", Code: "x"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	assert.Equal(t, []string{
		"field Name is required",
		"field Phone must be at most 3 characters",
		"field Mail must be a valid email address",
		"field Code is invalid",
	}, ValidationMessages(verrs))
}
