package respond_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemk/artosphere/internal/lib/respond"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	respond.Error(rr, http.StatusUnauthorized, "invalid token")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp respond.ErrorResponse
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "invalid token", resp.Message)
}
