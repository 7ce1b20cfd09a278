package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	OK(c, 0, map[string]int{"n": 1}, "done", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, map[string]any{"n": float64(1)}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, http.StatusUnprocessableEntity, "validation failed", "invalid_input", map[string]string{"email": "is required"})

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Status  int    `json:"status"`
		Message string `json:"message"`
		Error   ErrorBody
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, 422, body.Status)
	assert.Equal(t, "invalid_input", body.Error.Code)
	assert.Equal(t, "is required", body.Error.Details["email"])
}
