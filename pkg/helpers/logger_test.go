package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, logrus.DebugLevel, newLogger(&buf, "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger(&buf, "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, newLogger(&buf, "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger(&buf, "production", "loud").GetLevel())
}

func TestLogError_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "")
	LogError(logger, "upload failed", errors.New("denied"), logrus.Fields{"folder": "projects"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "upload failed", line["msg"])
	assert.Equal(t, "denied", line["error"])
	assert.Equal(t, "projects", line["folder"])
	assert.Equal(t, "error", line["level"])
}
