package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessCode_Unwraps(t *testing.T) {
	err := fmt.Errorf("validate pin: %w", ErrBusiness("incorrect_pin"))

	code, ok := BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "incorrect_pin", code)
	assert.True(t, IsBusiness(err, "incorrect_pin"))
	assert.False(t, IsBusiness(err, "wrong_state"))

	_, ok = BusinessCode(errors.New("boom"))
	assert.False(t, ok)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"not found", ErrBusiness("request_not_found"), http.StatusNotFound, "request_not_found"},
		{"state conflict", ErrBusiness("wrong_state"), http.StatusConflict, "wrong_state"},
		{"incorrect pin", ErrBusiness("incorrect_pin"), http.StatusUnprocessableEntity, "incorrect_pin"},
		{"unknown business code", ErrBusiness("something_else"), http.StatusBadRequest, "something_else"},
		{"transport failure", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)

			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
