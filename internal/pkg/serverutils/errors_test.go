package serverutils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamFailure("ai engine unreachable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Equal(t, "ai engine unreachable", err.Error())
}

func TestAppErrorCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{NewNotFound("missing"), http.StatusNotFound},
		{NewValidation("bad input"), http.StatusBadRequest},
		{NewUnauthorized("who are you"), http.StatusUnauthorized},
		{NewForbidden("not yours"), http.StatusForbidden},
		{NewConflict("already exists"), http.StatusConflict},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code)
	}
}

func TestValidateRequest(t *testing.T) {
	type sample struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := ValidateRequest(sample{Email: "not-an-email"})
	assert.Error(t, err)

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, fmt.Sprint(appErr), "Email")

	assert.NoError(t, ValidateRequest(sample{Email: "a@b.co", Name: "ok"}))
}
