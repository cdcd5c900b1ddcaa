package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetQuiet(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := capture(t)

	Debug("hidden %s", "line")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("matched %d conditions", 2)
	assert.Equal(t, "[DEBUG] matched 2 conditions\n", buf.String())
}

func TestInfo(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Info("loaded %s", "kb")

	assert.Equal(t, "[INFO] loaded kb\n", buf.String())
}

func TestWarn_PrintsWithoutVerbose(t *testing.T) {
	buf := capture(t)

	Warn("cache unavailable")

	assert.Equal(t, "[WARN] cache unavailable\n", buf.String())
}

func TestWarn_SuppressedWhenQuiet(t *testing.T) {
	buf := capture(t)
	SetQuiet(true)

	Warn("cache unavailable")
	Error("store closed")

	assert.Equal(t, "[ERROR] store closed\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t)
	SetVerbose(true)

	Section("evaluate")

	assert.Equal(t, "\n=== evaluate ===\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", n)
			Warn("concurrent %d", n)
			IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
}
