package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/media/projects/1-a.png", PublicURL("media", "projects/1-a.png"))
}

func TestIsPreconditionFailed(t *testing.T) {
	wrapped := fmt.Errorf("close: %w", &googleapi.Error{Code: http.StatusPreconditionFailed})
	assert.True(t, IsPreconditionFailed(wrapped))
	assert.False(t, IsPreconditionFailed(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, IsPreconditionFailed(errors.New("boom")))
}
