package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestWrappersWriteLeveledLines(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Debugf("debug %d", 1)
	Info("info")
	Infof("info %d", 2)
	Warningf("warn %d", 3)
	Error("error")
	Errorf("error %d", 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"DEBU", "INFO", "INFO", "WARN", "ERRO", "ERRO"}
	if assert.Len(t, lines, len(want)) {
		for i, level := range want {
			assert.Contains(t, lines[i], " "+level+" ")
			// call sites are reported, not this package's wrappers
			assert.Contains(t, lines[i], "logger_test.go")
		}
	}
	assert.Contains(t, lines[3], "warn 3")
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger = newLogger(&buf, logging.INFO)
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}) })

	Debugf("hidden")
	Infof("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWriterTrimsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	n, err := Writer().Write([]byte("200 GET /health 1ms\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("200 GET /health 1ms\n"), n)
	assert.True(t, strings.HasSuffix(buf.String(), "200 GET /health 1ms\n"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
