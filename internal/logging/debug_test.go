package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"unset or empty", "", false},
		{"one", "1", true},
		{"true", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnvVar, tt.value)
			assert.Equal(t, tt.expected, DebugEnabled())
		})
	}
}

func TestDebugf(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv(DebugEnvVar, "")
	Debugf("hidden %s\n", "message")
	assert.Empty(t, buf.String())

	t.Setenv(DebugEnvVar, "1")
	Debugf("GET %s -> %d\n", "/api/v1/tasks/", 200)
	assert.Equal(t, "GET /api/v1/tasks/ -> 200\n", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureOutput(t)

	t.Setenv(DebugEnvVar, "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv(DebugEnvVar, "yes")
	Debugln("applied migration", 1)
	assert.Equal(t, "applied migration 1\n", buf.String())
}
