package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidverse/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fn func(c *gin.Context)) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestEnvelope(t *testing.T) {
	code, body := run(t, func(c *gin.Context) { Created(c, "done", gin.H{"id": 1}) })
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, code, body.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "done", body.Message)

	notFound := apperr.New(apperr.KindNotFound, "Video not found")
	code, body = run(t, func(c *gin.Context) { Error(c, errors.Wrap(notFound, "get")) })
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, code, body.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "Video not found", body.Message)
	assert.Nil(t, body.Data)

	code, body = run(t, func(c *gin.Context) { Error(c, errors.New("pq: connection refused")) })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, apperr.Internal.Message, body.Message)
}
